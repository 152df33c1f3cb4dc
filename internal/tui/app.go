package tui

import (
	"bitbucket.org/sotavant/workhub-chat/internal/messaging"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	tea "github.com/charmbracelet/bubbletea"
	"time"
)

// Backend is everything the terminal client needs from the API client.
type Backend interface {
	messaging.Store
	ApprovedServices(ctx context.Context) ([]models.Service, error)
}

type screen int

const (
	screenServices screen = iota
	screenInbox
	screenChat
	screenCompose
)

// navigation messages emitted by the sub-views
type openInboxMsg struct{}

type openChatMsg struct {
	target chatTarget
}

type openComposeMsg struct {
	service models.Service
}

type backMsg struct{}

// Model is the root program model. It owns the active screen, performs
// the transitions between them and routes every other message to the
// view that produced it.
type Model struct {
	backend  Backend
	user     models.User
	interval time.Duration

	screen   screen
	services *servicesView
	inbox    *inboxView
	chat     *chatView
	compose  *composeView

	width  int
	height int
}

func NewModel(backend Backend, user models.User, interval time.Duration) *Model {
	return &Model{
		backend:  backend,
		user:     user,
		interval: interval,
		screen:   screenServices,
		services: newServicesView(backend),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.services.load()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		return m, nil

	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			if m.chat != nil {
				m.chat.close()
			}
			return m, tea.Quit
		}

	case openInboxMsg:
		// the inbox always starts from a fresh fetch
		m.inbox = newInboxView(m.backend, m.user)
		m.screen = screenInbox
		return m, m.inbox.load()

	case openChatMsg:
		m.inbox = nil
		m.chat = newChatView(m.backend, m.user, typed.target, m.interval)
		m.screen = screenChat
		return m, m.chat.open()

	case openComposeMsg:
		m.compose = newComposeView(m.backend, m.user, typed.service)
		m.screen = screenCompose
		return m, nil

	case backMsg:
		switch m.screen {
		case screenChat:
			m.chat.close()
			m.chat = nil
			m.inbox = newInboxView(m.backend, m.user)
			m.screen = screenInbox
			return m, m.inbox.load()
		case screenInbox:
			m.inbox = nil
			m.screen = screenServices
			return m, nil
		case screenCompose:
			m.compose = nil
			m.screen = screenServices
			return m, nil
		}
		return m, nil
	}

	// everything else belongs to the active view; stragglers from a
	// closed chat fall through the type switches and are dropped
	switch m.screen {
	case screenServices:
		return m, m.services.update(msg)
	case screenInbox:
		if m.inbox != nil {
			return m, m.inbox.update(msg)
		}
	case screenChat:
		if m.chat != nil {
			return m, m.chat.update(msg)
		}
	case screenCompose:
		if m.compose != nil {
			return m, m.compose.update(msg)
		}
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	switch m.screen {
	case screenInbox:
		if m.inbox != nil {
			return m.inbox.view(m.width, m.height)
		}
	case screenChat:
		if m.chat != nil {
			return m.chat.view(m.width, m.height)
		}
	case screenCompose:
		if m.compose != nil {
			return m.compose.view(m.width, m.height)
		}
	}
	return m.services.view(m.width, m.height)
}
