package tui

import (
	"bitbucket.org/sotavant/workhub-chat/internal/api"
	"bitbucket.org/sotavant/workhub-chat/internal/messaging"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"strings"
)

type inboxLoadedMsg struct {
	convs  []models.Conversation
	unread int
	err    error
}

// inboxView shows one row per conversation, newest first, plus the
// global unread badge. Selecting a row opens the chat for that
// counterparty and closes the inbox.
type inboxView struct {
	store messaging.Store
	user  models.User

	convs    []models.Conversation
	unread   int
	selected int
	loading  bool
	errText  string
}

func newInboxView(store messaging.Store, user models.User) *inboxView {
	return &inboxView{store: store, user: user, loading: true}
}

func (v *inboxView) load() tea.Cmd {
	store := v.store
	user := v.user
	return func() tea.Msg {
		ctx := context.Background()
		msgs, err := store.ListMessages(ctx, user)
		if err != nil {
			return inboxLoadedMsg{err: err}
		}
		unread, err := store.UnreadCount(ctx, user.ID)
		if err != nil {
			return inboxLoadedMsg{err: err}
		}
		return inboxLoadedMsg{convs: messaging.Aggregate(user.ID, msgs), unread: unread}
	}
}

func (v *inboxView) update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case inboxLoadedMsg:
		v.loading = false
		if typed.err != nil {
			v.errText = api.UserMessage(typed.err)
			return nil
		}
		v.errText = ""
		v.convs = typed.convs
		v.unread = typed.unread
		if v.selected >= len(v.convs) {
			v.selected = 0
		}

	case tea.KeyMsg:
		switch typed.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.convs)-1 {
				v.selected++
			}
		case "enter":
			if v.selected < len(v.convs) {
				conv := v.convs[v.selected]
				target := chatTarget{
					OtherPartyID:   conv.OtherPartyID,
					OtherPartyName: conv.OtherPartyName,
					ServiceID:      conv.ServiceID,
				}
				return func() tea.Msg { return openChatMsg{target: target} }
			}
		case "r":
			v.loading = true
			return v.load()
		case "esc", "q":
			return func() tea.Msg { return backMsg{} }
		}
	}
	return nil
}

func (v *inboxView) view(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Messages"))
	if v.unread > 0 {
		b.WriteString("  ")
		b.WriteString(unreadStyle.Render(fmt.Sprintf("● %d unread", v.unread)))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(dimStyle.Render("Loading messages..."))
	case len(v.convs) == 0:
		b.WriteString(dimStyle.Render("No messages yet"))
	default:
		visible := (height - 5) / 3
		if visible < 1 {
			visible = 1
		}
		start := 0
		if v.selected >= visible {
			start = v.selected - visible + 1
		}
		for i := start; i < len(v.convs) && i < start+visible; i++ {
			conv := v.convs[i]
			name := conv.OtherPartyName
			if !conv.Latest.Read && conv.Latest.ReceiverID == v.user.ID {
				name = unreadStyle.Render(name + " ●")
			}
			header := fmt.Sprintf("%s  %s", name,
				dimStyle.Render(conv.Latest.CreatedAt.Format("02 Jan 15:04")))
			snippet := truncate(conv.Latest.Content, width-4)
			row := header + "\n  " + snippet
			if i == v.selected {
				row = selectedStyle.Render(header) + "\n  " + snippet
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
	b.WriteString(helpStyle.Render("enter: open chat • r: refresh • esc: back"))
	return b.String()
}
