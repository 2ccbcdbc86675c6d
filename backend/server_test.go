package backend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deathrjj/nda-dashboard-tui/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longText = "This NDA covers the shared roadmap in full."

func newTestRouter(t *testing.T) (*Store, http.Handler) {
	t.Helper()
	store := NewStore("O=PartyA,L=London,C=GB", []models.Identity{"O=PartyB,L=New York,C=US"})
	return store, NewRouter(store, "/api/example/")
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestMeAndPeers(t *testing.T) {
	_, h := newTestRouter(t)

	rec := do(h, http.MethodGet, "/api/example/me")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"me":"O=PartyA,L=London,C=GB"}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/api/example/peers")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"peers":["O=PartyB,L=New York,C=US"]}`, rec.Body.String())
}

func TestCreateAndList(t *testing.T) {
	_, h := newTestRouter(t)

	q := url.Values{"ndaRequestText": {longText}, "partyName": {"O=PartyB,L=New York,C=US"}}
	rec := do(h, http.MethodPut, "/api/example/create-ndarequest?"+q.Encode())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "NDA request with id "))

	rec = do(h, http.MethodGet, "/api/example/getNdaRequests")
	require.Equal(t, http.StatusOK, rec.Code)
	var states []State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &states))
	require.Len(t, states, 1)
	assert.Equal(t, longText, states[0].State.Data.NdaRequestText)
	assert.Equal(t, "O=PartyA,L=London,C=GB", states[0].State.Data.NdaRequestEmitter)
	assert.NotEmpty(t, states[0].State.Data.LinearID.ID)
}

func TestCreateValidation(t *testing.T) {
	_, h := newTestRouter(t)

	short := url.Values{"ndaRequestText": {"too short"}, "partyName": {"O=PartyB,L=New York,C=US"}}
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/api/example/create-ndarequest?"+short.Encode()).Code)

	noParty := url.Values{"ndaRequestText": {longText}}
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/api/example/create-ndarequest?"+noParty.Encode()).Code)

	unknown := url.Values{"ndaRequestText": {longText}, "partyName": {"O=Nobody,L=Nowhere,C=ZZ"}}
	rec := do(h, http.MethodPut, "/api/example/create-ndarequest?"+unknown.Encode())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot be found")
}

func TestCreateRejectsSelfAddressed(t *testing.T) {
	me := models.Identity("O=PartyA,L=London,C=GB")
	store := NewStore(me, []models.Identity{me, "O=PartyB,L=New York,C=US"})
	h := NewRouter(store, "/api/example/")

	q := url.Values{"ndaRequestText": {longText}, "partyName": {string(me)}}
	rec := do(h, http.MethodPut, "/api/example/create-ndarequest?"+q.Encode())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot be the same party")
	assert.Empty(t, store.States())

	_, err := store.Create(longText, me)
	assert.ErrorIs(t, err, ErrSelfAddressed)
}

func TestTextLengthCountsCharacters(t *testing.T) {
	store, h := newTestRouter(t)

	// 11 two-byte characters: 22 bytes but only 11 characters.
	accented := strings.Repeat("é", 11)
	q := url.Values{"ndaRequestText": {accented}, "partyName": {"O=PartyB,L=New York,C=US"}}
	rec := do(h, http.MethodPut, "/api/example/create-ndarequest?"+q.Encode())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.States())

	// 21 characters pass.
	q.Set("ndaRequestText", strings.Repeat("é", 21))
	rec = do(h, http.MethodPut, "/api/example/create-ndarequest?"+q.Encode())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	states := store.States()
	require.Len(t, states, 1)

	q = url.Values{"ndaPreviousStateId": {states[0].State.Data.LinearID.ID}, "ndaRequestText": {accented}}
	rec = do(h, http.MethodPut, "/api/example/review-nda?"+q.Encode())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewReplacesState(t *testing.T) {
	store, h := newTestRouter(t)
	require.NoError(t, store.Seed())
	before := store.States()
	require.Len(t, before, 3)
	target := before[0].State.Data.LinearID.ID

	edited := "Reviewed: please shorten the term to one year."
	q := url.Values{"ndaPreviousStateId": {target}, "ndaRequestText": {edited}}
	rec := do(h, http.MethodPut, "/api/example/review-nda?"+q.Encode())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	after := store.States()
	require.Len(t, after, 3)
	last := after[len(after)-1].State.Data
	assert.Equal(t, target, last.LinearID.ID)
	assert.Equal(t, edited, last.NdaRequestText)
	assert.NotEqual(t, before[0].Ref.TxHash, after[len(after)-1].Ref.TxHash)
}

func TestReviewValidation(t *testing.T) {
	_, h := newTestRouter(t)

	cases := map[string]url.Values{
		"short text":   {"ndaPreviousStateId": {"7d2a1e4c-3c1b-4b8e-9a51-0f7b6b1f2c3d"}, "ndaRequestText": {"short"}},
		"missing id":   {"ndaRequestText": {longText}},
		"malformed id": {"ndaPreviousStateId": {"not-a-uuid"}, "ndaRequestText": {longText}},
		"unknown id":   {"ndaPreviousStateId": {"7d2a1e4c-3c1b-4b8e-9a51-0f7b6b1f2c3d"}, "ndaRequestText": {longText}},
	}
	for name, q := range cases {
		rec := do(h, http.MethodPut, "/api/example/review-nda?"+q.Encode())
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestWrongMethod(t *testing.T) {
	_, h := newTestRouter(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodGet, "/api/example/review-nda").Code)
}
