package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(t *testing.T, body string) []string {
	t.Helper()
	requests, err := DecodeNdaRequests([]byte(body))
	require.NoError(t, err)
	out := make([]string, len(requests))
	for i, r := range requests {
		out[i] = r.LinearID.ID
	}
	return out
}

func TestDecodeNdaRequestsObjectReversed(t *testing.T) {
	body := `{"a": {"state":{"data":{"linearId":{"id":"1"}}}}, "b": {"state":{"data":{"linearId":{"id":"2"}}}}}`
	assert.Equal(t, []string{"2", "1"}, ids(t, body))
}

func TestDecodeNdaRequestsObjectKeepsDocumentOrder(t *testing.T) {
	body := `{"z": {"state":{"data":{"linearId":{"id":"1"}}}}, "a": {"state":{"data":{"linearId":{"id":"2"}}}}, "m": {"state":{"data":{"linearId":{"id":"3"}}}}}`
	assert.Equal(t, []string{"3", "2", "1"}, ids(t, body))
}

func TestDecodeNdaRequestsArrayReversed(t *testing.T) {
	body := `[
		{"state":{"data":{"linearId":{"id":"1"},"ndaRequestText":"first"}},"ref":{"txhash":"A","index":0}},
		{"state":{"data":{"linearId":{"id":"2"},"ndaRequestText":"second"}},"ref":{"txhash":"B","index":0}},
		{"state":{"data":{"linearId":{"id":"3"},"ndaRequestText":"third"}},"ref":{"txhash":"C","index":0}}
	]`
	assert.Equal(t, []string{"3", "2", "1"}, ids(t, body))

	requests, err := DecodeNdaRequests([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "third", requests[0].NdaRequestText)
	assert.Equal(t, "third", requests[0].Fields["ndaRequestText"])
}

func TestDecodeNdaRequestsEmpty(t *testing.T) {
	assert.Empty(t, ids(t, `[]`))
	assert.Empty(t, ids(t, `{}`))
	assert.Empty(t, ids(t, `null`))
}

func TestDecodeNdaRequestsInvalid(t *testing.T) {
	for _, body := range []string{``, `"text"`, `[1,2]`, `{"a": `} {
		_, err := DecodeNdaRequests([]byte(body))
		assert.Error(t, err, body)
	}
}
