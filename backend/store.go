package backend

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/deathrjj/nda-dashboard-tui/models"
	"github.com/google/uuid"
)

var (
	ErrUnknownParty   = errors.New("unknown party")
	ErrUnknownRequest = errors.New("unknown NDA request")
	ErrSelfAddressed  = errors.New("requestor and recipient are the same party")
)

// StateRef points at the transaction output that produced a state.
type StateRef struct {
	TxHash string `json:"txhash"`
	Index  int    `json:"index"`
}

// State is one unconsumed NDA state, shaped like a vault StateAndRef.
type State struct {
	State struct {
		Data     models.NdaRequest `json:"data"`
		Contract string            `json:"contract"`
	} `json:"state"`
	Ref StateRef `json:"ref"`
}

// Store is an in-memory vault of NDA states, in insertion order.
type Store struct {
	mu     sync.Mutex
	me     models.Identity
	peers  []models.Identity
	states []State
	tx     int
}

// NewStore creates a store for node me that knows the given peers.
func NewStore(me models.Identity, peers []models.Identity) *Store {
	return &Store{me: me, peers: peers}
}

// Me returns the identity of the node the store belongs to.
func (s *Store) Me() models.Identity { return s.me }

// Peers returns the parties the node can address requests to.
func (s *Store) Peers() []models.Identity {
	return append([]models.Identity(nil), s.peers...)
}

func (s *Store) knows(party models.Identity) bool {
	for _, p := range s.peers {
		if p == party {
			return true
		}
	}
	return false
}

// States returns the unconsumed states, oldest first.
func (s *Store) States() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]State, len(s.states))
	for i, st := range s.states {
		out[i] = st
		out[i].State.Data = st.State.Data.Clone()
	}
	return out
}

// Create records a new NDA request from this node to party.
func (s *Store) Create(text string, party models.Identity) (string, error) {
	if party == s.me {
		return "", fmt.Errorf("%w: %s", ErrSelfAddressed, party)
	}
	if !s.knows(party) {
		return "", fmt.Errorf("%w: %s", ErrUnknownParty, party)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data := models.NdaRequest{
		LinearID:            models.LinearID{ID: uuid.NewString()},
		NdaRequestText:      text,
		NdaRequestEmitter:   string(s.me),
		NdaRequestRecipient: string(party),
		Participants:        []string{string(s.me), string(party)},
	}
	st := s.newState(data)
	s.states = append(s.states, st)
	return st.Ref.TxHash, nil
}

// Review consumes the state with the given linear id and records its edited
// successor, which keeps the linear id.
func (s *Store) Review(linearID uuid.UUID, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := linearID.String()
	for i, st := range s.states {
		if st.State.Data.LinearID.ID != id {
			continue
		}
		data := st.State.Data.Clone()
		data.NdaRequestText = text
		data.Fields = nil
		next := s.newState(data)
		s.states = append(append(s.states[:i:i], s.states[i+1:]...), next)
		return next.Ref.TxHash, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownRequest, id)
}

func (s *Store) newState(data models.NdaRequest) State {
	s.tx++
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s", s.tx, data.LinearID.ID, data.NdaRequestText)))

	var st State
	st.State.Data = data
	st.State.Contract = "com.example.contract.NDAContract"
	st.Ref = StateRef{TxHash: strings.ToUpper(hex.EncodeToString(sum[:])), Index: 0}
	return st
}

// Seed adds a few requests so an empty demo node has something to show.
func (s *Store) Seed() error {
	texts := []string{
		"Mutual NDA covering the joint settlement pilot, two year term.",
		"One-way NDA for sharing the vendor onboarding questionnaire.",
		"NDA for the due diligence data room, renewable every six months.",
	}
	if len(s.peers) == 0 {
		return nil
	}
	for i, text := range texts {
		if _, err := s.Create(text, s.peers[i%len(s.peers)]); err != nil {
			return err
		}
	}
	return nil
}
