package ui

import (
	"context"
	"fmt"
	"log"

	"github.com/deathrjj/nda-dashboard-tui/config"
	"github.com/deathrjj/nda-dashboard-tui/dashboard"
	"github.com/deathrjj/nda-dashboard-tui/models"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const mainPage = "main"

// DashboardUI handles the NDA dashboard screens
type DashboardUI struct {
	App      *tview.Application
	Pages    *tview.Pages
	Config   config.Dashboard
	List     *dashboard.ListController
	Filtered []models.NdaRequest

	header      *tview.TextView
	searchInput *tview.InputField
	table       *tview.Table
	detail      *tview.TextView
	bottomBar   *tview.TextView

	overlays int
}

// NewDashboardUI creates a dashboard bound to list.
func NewDashboardUI(app *tview.Application, cfg config.Dashboard, list *dashboard.ListController) *DashboardUI {
	ui := &DashboardUI{
		App:    app,
		Pages:  tview.NewPages(),
		Config: cfg,
		List:   list,
	}
	list.OnChange = func() {
		ui.App.QueueUpdateDraw(ui.render)
	}
	return ui
}

// Start shows a loading screen, then the dashboard once the first load is done.
func (ui *DashboardUI) Start() {
	loadingText := tview.NewTextView().
		SetText("Loading NDA requests...").
		SetTextAlign(tview.AlignCenter)
	ui.App.SetRoot(loadingText, true)

	ui.build()

	go func() {
		err := ui.List.Load(context.Background())
		ui.App.QueueUpdateDraw(func() {
			ui.App.SetRoot(ui.Pages, true).SetFocus(ui.table)
			ui.render()
			ui.updateBottomBar()
			if err != nil {
				ui.ShowError(fmt.Sprintf("Error loading dashboard: %v", err))
			}
		})
	}()
}

func (ui *DashboardUI) build() {
	ui.header = tview.NewTextView().
		SetDynamicColors(true)

	ui.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	ui.table.SetSelectedFunc(func(row, column int) {
		ui.openReview(row - 1)
	})
	ui.table.SetSelectionChangedFunc(func(row, column int) {
		ui.showDetail(row - 1)
	})
	ui.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyRune {
			return event
		}
		switch event.Rune() {
		case 'q':
			ui.App.Stop()
			return nil
		case 'r':
			ui.refresh()
			return nil
		case 'n':
			ui.openCreate()
			return nil
		case '/':
			ui.App.SetFocus(ui.searchInput)
			ui.updateBottomBar()
			return nil
		}
		return event
	})

	ui.searchInput = tview.NewInputField().SetLabel("Filter: ")
	ui.searchInput.SetChangedFunc(func(text string) {
		ui.render()
	})
	ui.searchInput.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown, tcell.KeyEnter:
			ui.App.SetFocus(ui.table)
			ui.updateBottomBar()
			return nil
		}
		return event
	})

	ui.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	ui.detail.SetBorder(true).SetTitle("Details")

	ui.bottomBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	requestsPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.searchInput, 1, 0, false).
		AddItem(ui.table, 0, 1, true)
	requestsPanel.SetBorder(true).SetTitle("Pending NDA Requests")

	mainFlex := tview.NewFlex().
		AddItem(requestsPanel, 0, 2, true).
		AddItem(ui.detail, 0, 1, false)
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.header, 1, 0, false).
		AddItem(mainFlex, 0, 1, true).
		AddItem(ui.bottomBar, 1, 0, false)

	SetupKeyboardNavigation(ui.App, ui.updateBottomBar, ui.table, ui.detail, ui.searchInput)
	ui.Pages.AddPage(mainPage, layout, true, true)
}

// render redraws the header, table and details from the list controller.
// It must run on the UI goroutine.
func (ui *DashboardUI) render() {
	if ui.table == nil {
		return
	}
	me := ui.List.Identity()
	node := string(me)
	if node == "" {
		node = "unknown"
	}
	ui.header.SetText(fmt.Sprintf(" [yellow]Node:[white] %s  [yellow]API:[white] %s%s",
		tview.Escape(CensorName(node, ui.Config.DemoMode)), ui.Config.APIURL, ui.Config.BasePath))

	row, _ := ui.table.GetSelection()
	ui.Filtered = FilterRequests(ui.List.Requests(), ui.searchInput.GetText())
	UpdateRequestTable(ui.table, ui.Filtered, me, ui.Config.DemoMode)

	if row < 1 {
		row = 1
	}
	if row > len(ui.Filtered) {
		row = len(ui.Filtered)
	}
	if row >= 1 {
		ui.table.Select(row, 0)
	}
	ui.showDetail(row - 1)
}

func (ui *DashboardUI) showDetail(index int) {
	if index < 0 || index >= len(ui.Filtered) {
		ui.detail.SetText("No request selected.")
		return
	}
	ui.detail.SetText(FormatRequest(ui.Filtered[index], ui.Config.DemoMode)).ScrollToBeginning()
}

func (ui *DashboardUI) updateBottomBar() {
	UpdateBottomBar(ui.App, ui.bottomBar, ui.searchInput, ui.table, ui.detail)
}

func (ui *DashboardUI) refresh() {
	go func() {
		if err := ui.List.LoadRequests(context.Background()); err != nil {
			ui.App.QueueUpdateDraw(func() {
				ui.ShowError(fmt.Sprintf("Error refreshing requests: %v", err))
			})
		}
	}()
}

// overlayName returns a page name no other overlay uses.
func (ui *DashboardUI) overlayName(kind string) string {
	ui.overlays++
	return fmt.Sprintf("%s-%d", kind, ui.overlays)
}

// closeOverlay removes page and hands focus to whatever is now on top: the
// table, or the overlay underneath.
func (ui *DashboardUI) closeOverlay(page string) {
	ui.Pages.RemovePage(page)
	front, item := ui.Pages.GetFrontPage()
	if front == mainPage || item == nil {
		ui.App.SetFocus(ui.table)
		ui.updateBottomBar()
		return
	}
	ui.App.SetFocus(item)
}

// ShowError opens an error modal over the current page.
func (ui *DashboardUI) ShowError(message string) {
	log.Printf("ui: %s", message)
	page := ui.overlayName("error")
	ui.Pages.AddPage(page, CreateErrorModal(message, func() {
		ui.closeOverlay(page)
	}), true, true)
}
