package ui

import (
	"os"

	"github.com/deathrjj/nda-dashboard-tui/api"
	"github.com/deathrjj/nda-dashboard-tui/config"
	"github.com/deathrjj/nda-dashboard-tui/dashboard"
	"github.com/rivo/tview"
)

// Run starts the dashboard, first asking for the API URL when the
// configured one is unusable.
func Run(app *tview.Application, cfg config.Dashboard) {
	if err := config.ValidateAPIURL(cfg.APIURL); err != nil {
		PromptForAPIURL(app, cfg, err.Error())
		return
	}
	startDashboard(app, cfg)
}

func startDashboard(app *tview.Application, cfg config.Dashboard) {
	client := api.NewClient(cfg.APIURL, cfg.BasePath, cfg.HTTPTimeout)
	list := dashboard.NewListController(client, cfg.ClosePolicy)
	NewDashboardUI(app, cfg, list).Start()
}

// PromptForAPIURL shows a form to enter the backend URL
func PromptForAPIURL(app *tview.Application, cfg config.Dashboard, problem string) {
	form := tview.NewForm()

	apiURL := cfg.APIURL

	form.AddTextView("", problem, 0, 1, false, false)
	form.AddInputField("API URL:", apiURL, 50, nil, func(text string) {
		apiURL = text
	})

	form.AddButton("Continue", func() {
		if err := config.ValidateAPIURL(apiURL); err != nil {
			errorModal := CreateErrorModal(err.Error(), func() {
				app.SetRoot(form, true).SetFocus(form)
			})
			app.SetRoot(errorModal, true)
			return
		}

		os.Setenv("NDA_API_URL", apiURL)
		cfg.APIURL = apiURL
		startDashboard(app, cfg)
	})

	form.AddButton("Cancel", func() {
		app.Stop()
	})

	form.SetBorder(true).SetTitle("NDA API URL").SetTitleAlign(tview.AlignCenter)
	app.SetRoot(form, true)
	app.SetFocus(form)
}
