package ui

import (
	"context"
	"fmt"
	"log"

	"github.com/atotto/clipboard"
	"github.com/deathrjj/nda-dashboard-tui/dashboard"
	"github.com/deathrjj/nda-dashboard-tui/models"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// reviewModal is the on-screen side of a dashboard.ReviewController.
type reviewModal struct {
	ui     *DashboardUI
	page   string
	form   *tview.Form
	review *dashboard.ReviewController
}

var _ dashboard.ReviewView = (*reviewModal)(nil)

// Close is called from the submitting goroutine.
func (m *reviewModal) Close() {
	m.ui.App.QueueUpdateDraw(func() {
		m.ui.closeOverlay(m.page)
	})
}

// Dismiss runs on the UI goroutine, from the Cancel button or Esc.
func (m *reviewModal) Dismiss() {
	m.ui.closeOverlay(m.page)
}

func (m *reviewModal) DisplayMessage(result models.ReviewResult) {
	m.ui.App.QueueUpdateDraw(func() {
		m.ui.ShowMessage("Review", result)
	})
}

// markSubmitting shows that a submission is in flight and stops the buttons
// from being pressed again while the form is still on screen.
func (m *reviewModal) markSubmitting() {
	m.form.SetTitle(" Submitting… ")
	for i := 0; i < m.form.GetButtonCount(); i++ {
		m.form.GetButton(i).SetDisabled(true)
	}
	m.ui.bottomBar.SetText("Waiting for the node to answer…")
}

func (m *reviewModal) submit() {
	m.markSubmitting()
	go func() {
		if _, err := m.review.Submit(context.Background()); err != nil {
			log.Printf("ui: submit review: %v", err)
		}
	}()
}

func (m *reviewModal) cancel() {
	if err := m.review.Cancel(); err != nil {
		log.Printf("ui: cancel review: %v", err)
	}
}

// openReview shows the review form for the request on row index of the
// filtered table.
func (ui *DashboardUI) openReview(index int) *reviewModal {
	if index < 0 || index >= len(ui.Filtered) {
		return nil
	}
	modal := &reviewModal{ui: ui, page: ui.overlayName("review"), form: tview.NewForm()}
	modal.review = ui.List.OpenReview(ui.Filtered[index], modal)
	review := modal.review

	form := modal.form
	form.AddTextView("Request", FormatRequest(review.Request, ui.Config.DemoMode), 0, 6, true, true)
	form.AddTextArea("Review", "", 0, 6, 0, review.SetText)
	form.AddButton("Submit", modal.submit)
	form.AddButton("Cancel", modal.cancel)
	form.SetCancelFunc(modal.cancel)
	form.SetBorder(true).
		SetTitle(fmt.Sprintf(" Review NDA %s ", ShortID(review.Request.LinearID.ID))).
		SetTitleAlign(tview.AlignCenter)

	ui.Pages.AddPage(modal.page, Center(form, 80, 20), true, true)
	ui.App.SetFocus(form)
	ui.bottomBar.SetText("⇥ : Next Field | Esc: Cancel")
	return modal
}

// ShowMessage opens the message modal showing result verbatim. Closing it
// has no other effect.
func (ui *DashboardUI) ShowMessage(action string, result models.ReviewResult) {
	page := ui.overlayName("message")

	status := "succeeded"
	if result.Outcome == models.OutcomeFailure {
		status = "failed"
	}
	text := fmt.Sprintf("%s %s", action, status)
	if result.StatusCode != 0 {
		text += fmt.Sprintf(" (%d)", result.StatusCode)
	}
	text += "\n\n" + result.Message()

	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK", "Copy"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "Copy" {
				if err := clipboard.WriteAll(result.Message()); err != nil {
					log.Printf("ui: copy message: %v", err)
				}
			}
			ui.closeOverlay(page)
		})
	if result.Outcome == models.OutcomeFailure {
		modal.SetBackgroundColor(tcell.ColorDarkRed)
	}
	ui.Pages.AddPage(page, modal, true, true)
	ui.App.SetFocus(modal)
}

// openCreate asks for a counterparty and text and starts a new NDA request.
func (ui *DashboardUI) openCreate() {
	go func() {
		peers, err := ui.List.Peers(context.Background())
		ui.App.QueueUpdateDraw(func() {
			if err != nil {
				ui.ShowError(fmt.Sprintf("Error loading counterparties: %v", err))
				return
			}
			if len(peers) == 0 {
				ui.ShowError("No counterparties are known to this node.")
				return
			}
			ui.showCreateForm(peers)
		})
	}()
}

func (ui *DashboardUI) showCreateForm(peers []models.Identity) {
	page := ui.overlayName("create")
	options := make([]string, len(peers))
	for i, p := range peers {
		options[i] = CensorName(string(p), ui.Config.DemoMode)
	}

	var (
		party models.Identity = peers[0]
		text  string
	)
	form := tview.NewForm()
	form.AddDropDown("Counterparty", options, 0, func(option string, optionIndex int) {
		if optionIndex >= 0 && optionIndex < len(peers) {
			party = peers[optionIndex]
		}
	})
	form.AddTextArea("NDA text", "", 0, 6, 0, func(t string) {
		text = t
	})
	form.AddButton("Create", func() {
		ui.closeOverlay(page)
		go func() {
			result := ui.List.CreateRequest(context.Background(), text, party)
			ui.App.QueueUpdateDraw(func() {
				ui.ShowMessage("New NDA request", result)
			})
		}()
	})
	form.AddButton("Cancel", func() {
		ui.closeOverlay(page)
	})
	form.SetCancelFunc(func() {
		ui.closeOverlay(page)
	})
	form.SetBorder(true).SetTitle(" New NDA Request ").SetTitleAlign(tview.AlignCenter)

	ui.Pages.AddPage(page, Center(form, 80, 16), true, true)
	ui.App.SetFocus(form)
	ui.bottomBar.SetText("⇥ : Next Field | Esc: Cancel")
}
