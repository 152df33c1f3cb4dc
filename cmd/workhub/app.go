package main

import (
	"bitbucket.org/sotavant/workhub-chat/internal/api"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"bitbucket.org/sotavant/workhub-chat/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"time"
)

type app struct {
	client *api.Client
	user   models.User
}

func newApp(client *api.Client, user models.User) *app {
	return &app{client: client, user: user}
}

func (a *app) runTUI(interval time.Duration) error {
	program := tea.NewProgram(
		tui.NewModel(a.client, a.user, interval),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}
