package ui

import (
	"strings"
	"testing"

	"github.com/deathrjj/nda-dashboard-tui/models"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCensorName(t *testing.T) {
	assert.Equal(t, "O=PartyA", CensorName("O=PartyA", false))
	assert.Equal(t, "O=******", CensorName("O=PartyA", true))
	assert.Equal(t, "ab", CensorName("ab", true))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "7d2a1e4c", ShortID("7d2a1e4c-3c1b-4b8e-9a51-0f7b6b1f2c3d"))
	assert.Equal(t, "42", ShortID("42"))
}

func TestFilterRequests(t *testing.T) {
	requests := []models.NdaRequest{
		{LinearID: models.LinearID{ID: "1"}, NdaRequestEmitter: "O=PartyA", NdaRequestText: "Roadmap NDA"},
		{LinearID: models.LinearID{ID: "2"}, NdaRequestRecipient: "O=PartyB", NdaRequestText: "Data room"},
	}

	assert.Len(t, FilterRequests(requests, ""), 2)
	got := FilterRequests(requests, "partyb")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].LinearID.ID)
	assert.Len(t, FilterRequests(requests, "ROADMAP"), 1)
	assert.Empty(t, FilterRequests(requests, "nothing"))
}

func TestUpdateRequestTable(t *testing.T) {
	table := tview.NewTable()
	requests := []models.NdaRequest{
		{LinearID: models.LinearID{ID: "2-b"}, NdaRequestEmitter: "O=PartyA", NdaRequestText: "second"},
		{LinearID: models.LinearID{ID: "1-a"}, NdaRequestEmitter: "O=PartyA", NdaRequestText: "first"},
	}

	UpdateRequestTable(table, requests, "O=PartyB", true)

	assert.Equal(t, 3, table.GetRowCount())
	assert.Equal(t, "ID", table.GetCell(0, 0).Text)
	assert.Equal(t, "2", table.GetCell(1, 0).Text)
	assert.Equal(t, "O=******", table.GetCell(1, 1).Text)
	assert.Equal(t, "first", table.GetCell(2, 3).Text)
}

func TestFormatRequest(t *testing.T) {
	r := models.NdaRequest{
		Fields: map[string]any{
			"ndaRequestText":    "Roadmap NDA",
			"ndaRequestEmitter": "O=PartyA",
			"linearId":          map[string]any{"id": "1", "externalId": nil},
		},
	}

	text := FormatRequest(r, true)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "linearId")
	assert.Contains(t, lines[0], "{externalId=-, id=1}")
	assert.Contains(t, lines[1], "O=******")
	assert.Contains(t, lines[2], "Roadmap NDA")
}
