package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deathrjj/nda-dashboard-tui/models"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// CensorName keeps the first two characters of name in demo mode.
func CensorName(name string, demoMode bool) string {
	if !demoMode {
		return name
	}
	runes := []rune(name)
	if len(runes) <= 2 {
		return name
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-2)
}

// ShortID trims a linear id to its first block for the table.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// FilterRequests returns the requests whose id, parties or text contain query.
func FilterRequests(requests []models.NdaRequest, query string) []models.NdaRequest {
	if strings.TrimSpace(query) == "" {
		return requests
	}
	var out []models.NdaRequest
	for _, r := range requests {
		if ContainsCaseInsensitive(r.LinearID.ID, query) ||
			ContainsCaseInsensitive(r.NdaRequestEmitter, query) ||
			ContainsCaseInsensitive(r.NdaRequestRecipient, query) ||
			ContainsCaseInsensitive(r.NdaRequestText, query) {
			out = append(out, r)
		}
	}
	return out
}

// UpdateRequestTable refreshes the table with requests, keeping a header row.
func UpdateRequestTable(table *tview.Table, requests []models.NdaRequest, me models.Identity, demoMode bool) {
	table.Clear()
	for col, title := range []string{"ID", "Emitter", "Recipient", "Text"} {
		table.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	for i, r := range requests {
		row := i + 1
		color := tcell.ColorWhite
		if me != "" && r.NdaRequestRecipient == string(me) {
			// Requests addressed to this node are the ones awaiting its review.
			color = tcell.ColorGreen
		}
		table.SetCell(row, 0, tview.NewTableCell(ShortID(r.LinearID.ID)).SetTextColor(color))
		table.SetCell(row, 1, tview.NewTableCell(CensorName(r.NdaRequestEmitter, demoMode)).SetTextColor(color))
		table.SetCell(row, 2, tview.NewTableCell(CensorName(r.NdaRequestRecipient, demoMode)).SetTextColor(color))
		table.SetCell(row, 3, tview.NewTableCell(r.NdaRequestText).SetTextColor(color).SetExpansion(1))
	}
}

// FormatRequest renders every payload field of r, sorted by name.
func FormatRequest(r models.NdaRequest, demoMode bool) string {
	fields := r.Fields
	if fields == nil {
		fields = map[string]any{
			"linearId":            map[string]any{"id": r.LinearID.ID},
			"ndaRequestText":      r.NdaRequestText,
			"ndaRequestEmitter":   r.NdaRequestEmitter,
			"ndaRequestRecipient": r.NdaRequestRecipient,
		}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		value := formatValue(fields[k])
		switch k {
		case "ndaRequestEmitter", "ndaRequestRecipient":
			value = CensorName(value, demoMode)
		}
		fmt.Fprintf(&b, "[yellow]%s[white]: %s\n", k, tview.Escape(value))
	}
	return b.String()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+formatValue(t[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, formatValue(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(t)
	}
}

// UpdateBottomBar updates the bottom bar text based on current focus.
func UpdateBottomBar(app *tview.Application, bottomBar *tview.TextView, searchInput *tview.InputField,
	table *tview.Table, detail *tview.TextView) {

	focused := app.GetFocus()
	var text string

	switch focused {
	case table:
		text = "↑/↓: Move Highlight | ⏎ : Review | n: New Request | r: Refresh | ⇥ : Details | q: Quit"
	case searchInput:
		text = "Type to filter | ↑/↓/⏎ : Back to Requests | ⇥ : Requests"
	case detail:
		text = "↑/↓: Scroll | ⇥ : Filter"
	}

	bottomBar.SetText(text)
}

// ContainsCaseInsensitive returns true if s contains substr (case-insensitive).
func ContainsCaseInsensitive(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Center places p in the middle of the screen with the given size.
func Center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// CreateErrorModal creates a modal to display error messages
func CreateErrorModal(message string, done func()) *tview.Modal {
	return tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			done()
		})
}

// SetupKeyboardNavigation sets up Tab to cycle focus through components
func SetupKeyboardNavigation(app *tview.Application, onFocus func(), components ...tview.Primitive) {
	for i, component := range components {
		index := i

		next := func(event *tcell.EventKey) bool {
			if event.Key() != tcell.KeyTab {
				return false
			}
			app.SetFocus(components[(index+1)%len(components)])
			if onFocus != nil {
				onFocus()
			}
			return true
		}

		switch c := component.(type) {
		case *tview.InputField:
			originalHandler := c.GetInputCapture()
			c.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
				if next(event) {
					return nil
				}
				if originalHandler != nil {
					return originalHandler(event)
				}
				return event
			})
		case *tview.Table:
			originalHandler := c.GetInputCapture()
			c.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
				if next(event) {
					return nil
				}
				if originalHandler != nil {
					return originalHandler(event)
				}
				return event
			})
		case *tview.TextView:
			originalHandler := c.GetInputCapture()
			c.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
				if next(event) {
					return nil
				}
				if originalHandler != nil {
					return originalHandler(event)
				}
				return event
			})
		}
	}
}
