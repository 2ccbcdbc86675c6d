package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/deathrjj/nda-dashboard-tui/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// minTextLength is the number of characters an NDA text must exceed.
// Characters are runes, not bytes.
const minTextLength = 20

// NewRouter serves the NDA API from store under basePath.
func NewRouter(store *Store, basePath string) *mux.Router {
	r := mux.NewRouter()
	api := r
	if prefix := strings.TrimRight(basePath, "/"); prefix != "" {
		api = r.PathPrefix(prefix).Subrouter()
	}
	h := &handlers{store: store}

	api.HandleFunc("/me", h.me).Methods(http.MethodGet)
	api.HandleFunc("/peers", h.peers).Methods(http.MethodGet)
	api.HandleFunc("/getNdaRequests", h.ndaRequests).Methods(http.MethodGet)
	api.HandleFunc("/create-ndarequest", h.createNdaRequest).Methods(http.MethodPut)
	api.HandleFunc("/review-nda", h.reviewNda).Methods(http.MethodPut)
	return r
}

type handlers struct {
	store *Store
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("backend: encode response: %v", err)
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, msg)
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]models.Identity{"me": h.store.Me()})
}

func (h *handlers) peers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]models.Identity{"peers": h.store.Peers()})
}

func (h *handlers) ndaRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.store.States())
}

func (h *handlers) createNdaRequest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("ndaRequestText")
	party := q.Get("partyName")

	if utf8.RuneCountInString(text) <= minTextLength {
		writeText(w, http.StatusBadRequest, "Query parameter 'ndaRequestText' - Put some text in this NDA ! More than 20 chars.\n")
		return
	}
	if party == "" {
		writeText(w, http.StatusBadRequest, "Query parameter 'partyName' missing or has wrong format.\n")
		return
	}

	tx, err := h.store.Create(text, models.Identity(party))
	if errors.Is(err, ErrSelfAddressed) {
		writeText(w, http.StatusBadRequest, "The requestor and the recipient of an NDA request cannot be the same party.\n")
		return
	}
	if errors.Is(err, ErrUnknownParty) {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("Party named %s cannot be found.\n", party))
		return
	}
	if err != nil {
		log.Printf("backend: create NDA request: %v", err)
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("backend: NDA request for %s committed in %s", party, tx)
	writeText(w, http.StatusCreated, fmt.Sprintf("NDA request with id %s committed to ledger.\n", tx))
}

func (h *handlers) reviewNda(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("ndaRequestText")
	previous := q.Get("ndaPreviousStateId")

	if utf8.RuneCountInString(text) <= minTextLength {
		writeText(w, http.StatusBadRequest, "Query parameter 'ndaRequestText' - Put some text in this NDA ! More than 20 chars.\n")
		return
	}
	if previous == "" {
		writeText(w, http.StatusBadRequest, "Query parameter 'ndaPreviousStateId' missing.\n")
		return
	}
	linearID, err := uuid.Parse(previous)
	if err != nil {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("Query parameter 'ndaPreviousStateId' is not a valid id: %v\n", err))
		return
	}

	tx, err := h.store.Review(linearID, text)
	if err != nil {
		log.Printf("backend: review NDA %s: %v", linearID, err)
		writeText(w, http.StatusBadRequest, err.Error()+"\n")
		return
	}
	log.Printf("backend: review of %s committed in %s", linearID, tx)
	writeText(w, http.StatusCreated, fmt.Sprintf("NDA request with id %s committed to ledger.\n", tx))
}
