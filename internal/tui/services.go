package tui

import (
	"bitbucket.org/sotavant/workhub-chat/internal/api"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"strings"
)

type servicesLoadedMsg struct {
	services []models.Service
	err      error
}

// servicesView lists approved listings. It is the entry point both for
// the one-shot compose affordance and for the message inbox.
type servicesView struct {
	backend Backend

	services []models.Service
	selected int
	loading  bool
	errText  string
}

func newServicesView(backend Backend) *servicesView {
	return &servicesView{backend: backend, loading: true}
}

func (v *servicesView) load() tea.Cmd {
	backend := v.backend
	return func() tea.Msg {
		services, err := backend.ApprovedServices(context.Background())
		return servicesLoadedMsg{services: services, err: err}
	}
}

func (v *servicesView) update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case servicesLoadedMsg:
		v.loading = false
		if typed.err != nil {
			v.errText = api.UserMessage(typed.err)
			return nil
		}
		v.errText = ""
		v.services = typed.services
		if v.selected >= len(v.services) {
			v.selected = 0
		}

	case tea.KeyMsg:
		switch typed.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.services)-1 {
				v.selected++
			}
		case "enter":
			if v.selected < len(v.services) {
				service := v.services[v.selected]
				return func() tea.Msg { return openComposeMsg{service: service} }
			}
		case "m":
			return func() tea.Msg { return openInboxMsg{} }
		case "r":
			v.loading = true
			return v.load()
		case "q", "esc":
			return tea.Quit
		}
	}
	return nil
}

func (v *servicesView) view(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Services"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(dimStyle.Render("Loading services..."))
	case len(v.services) == 0:
		b.WriteString(dimStyle.Render("No approved services yet"))
	default:
		visible := height - 6
		if visible < 1 {
			visible = 1
		}
		start := 0
		if v.selected >= visible {
			start = v.selected - visible + 1
		}
		for i := start; i < len(v.services) && i < start+visible; i++ {
			s := v.services[i]
			row := fmt.Sprintf("%s  %s  %.0f  %s  %s",
				s.Title, s.Category, s.Price, s.ProviderName, s.Location)
			row = truncate(row, width-2)
			if i == v.selected {
				row = selectedStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if v.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(v.errText))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: message provider • m: messages • r: refresh • q: quit"))
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
