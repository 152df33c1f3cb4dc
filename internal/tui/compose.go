package tui

import (
	"bitbucket.org/sotavant/workhub-chat/internal/api"
	"bitbucket.org/sotavant/workhub-chat/internal/messaging"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	tea "github.com/charmbracelet/bubbletea"
	"strings"
)

type composeSentMsg struct {
	err error
}

// composeView is the one-shot sender attached to a service card: no
// history, no polling, just a single message to the listing's provider.
type composeView struct {
	store   messaging.Store
	user    models.User
	service models.Service

	input   string
	sending bool
	errText string
	sentOK  bool
}

func newComposeView(store messaging.Store, user models.User, service models.Service) *composeView {
	return &composeView{store: store, user: user, service: service}
}

func (v *composeView) update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case composeSentMsg:
		v.sending = false
		if typed.err != nil {
			// the draft stays so the user can retry
			v.errText = api.UserMessage(typed.err)
			return nil
		}
		v.errText = ""
		v.input = ""
		v.sentOK = true
		return nil

	case tea.KeyMsg:
		if v.sending {
			return nil
		}
		switch typed.Type {
		case tea.KeyEsc:
			return func() tea.Msg { return backMsg{} }
		case tea.KeyEnter:
			return v.sendCmd()
		case tea.KeyBackspace:
			if len(v.input) > 0 {
				runes := []rune(v.input)
				v.input = string(runes[:len(runes)-1])
			}
		case tea.KeySpace:
			v.input += " "
		case tea.KeyRunes:
			v.input += string(typed.Runes)
		}
		v.sentOK = false
	}
	return nil
}

func (v *composeView) sendCmd() tea.Cmd {
	content := strings.TrimSpace(v.input)
	if content == "" {
		v.errText = "Please enter a message"
		return nil
	}

	v.sending = true
	v.errText = ""
	store := v.store
	req := models.CreateMessage{
		SenderID:   v.user.ID,
		ReceiverID: v.service.WorkerID,
		Content:    content,
		ServiceID:  v.service.ID,
	}
	return func() tea.Msg {
		_, err := store.CreateMessage(context.Background(), req)
		return composeSentMsg{err: err}
	}
}

func (v *composeView) view(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Send Message to " + v.service.ProviderName))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Regarding service: " + v.service.Title))
	b.WriteString("\n")

	if v.service.ProviderPhone != "" || v.service.ProviderEmail != "" {
		var contact []string
		if v.service.ProviderPhone != "" {
			contact = append(contact, "tel: "+v.service.ProviderPhone)
		}
		if v.service.ProviderEmail != "" {
			contact = append(contact, "email: "+v.service.ProviderEmail)
		}
		b.WriteString(dimStyle.Render(strings.Join(contact, "  ")))
		b.WriteString("\n")
	}

	b.WriteString("\n> ")
	b.WriteString(truncate(v.input, width-4))
	b.WriteString("█\n")

	switch {
	case v.sending:
		b.WriteString(dimStyle.Render("Sending..."))
		b.WriteString("\n")
	case v.errText != "":
		b.WriteString(errorStyle.Render(v.errText))
		b.WriteString("\n")
	case v.sentOK:
		b.WriteString(okStyle.Render("Message sent successfully!"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: send • esc: back"))
	return b.String()
}
