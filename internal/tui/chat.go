package tui

import (
	"bitbucket.org/sotavant/workhub-chat/internal/api"
	"bitbucket.org/sotavant/workhub-chat/internal/messaging"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"strings"
	"time"
)

// chatTarget identifies the counterparty of an open chat, plus the
// optional listing context and contact hints shown in the header.
type chatTarget struct {
	OtherPartyID   string
	OtherPartyName string
	ServiceID      string
	ServiceTitle   string
	ProviderPhone  string
	ProviderEmail  string
}

type chatUpdateMsg struct {
	update messaging.Update
	ok     bool
}

type chatSentMsg struct {
	err error
}

// chatView renders one two-party conversation and owns its poller. The
// poller goroutine lives from open() to close(); updates reach the view
// as chatUpdateMsg values, one waitForUpdate command per delivery.
type chatView struct {
	store    messaging.Store
	user     models.User
	target   chatTarget
	interval time.Duration

	poller  *messaging.Poller
	updates <-chan messaging.Update
	cancel  context.CancelFunc

	messages []models.Message
	loading  bool
	input    string
	errText  string
	scroll   int
	follow   bool
}

func newChatView(store messaging.Store, user models.User, target chatTarget, interval time.Duration) *chatView {
	return &chatView{
		store:    store,
		user:     user,
		target:   target,
		interval: interval,
		loading:  true,
		follow:   true,
	}
}

// open starts the poller and begins listening for its updates.
func (v *chatView) open() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.poller = messaging.NewPoller(v.store, v.user, v.target.OtherPartyID, v.interval)
	v.updates = v.poller.Updates()
	go v.poller.Run(ctx)
	return v.waitForUpdate()
}

// close cancels the poller. The updates reference is dropped so that a
// result already in flight can never be applied to a closed view.
func (v *chatView) close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.updates = nil
}

func (v *chatView) waitForUpdate() tea.Cmd {
	ch := v.updates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		return chatUpdateMsg{update: u, ok: ok}
	}
}

func (v *chatView) update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case chatUpdateMsg:
		if v.updates == nil || !typed.ok {
			// poller already stopped; discard
			return nil
		}
		if typed.update.Err != nil {
			v.loading = false
			v.errText = api.UserMessage(typed.update.Err)
			return v.waitForUpdate()
		}
		v.errText = ""
		v.loading = false
		v.messages = typed.update.Messages
		if typed.update.Grew {
			v.follow = true
		}
		return v.waitForUpdate()

	case chatSentMsg:
		if typed.err != nil {
			// keep the input so the user can retry
			v.errText = api.UserMessage(typed.err)
			return nil
		}
		v.errText = ""
		v.input = ""
		if v.poller != nil {
			v.poller.Refresh()
		}
		return nil

	case tea.KeyMsg:
		switch typed.Type {
		case tea.KeyEsc:
			v.close()
			return func() tea.Msg { return backMsg{} }
		case tea.KeyEnter:
			return v.sendCmd()
		case tea.KeyBackspace:
			if len(v.input) > 0 {
				runes := []rune(v.input)
				v.input = string(runes[:len(runes)-1])
			}
		case tea.KeyPgUp:
			v.follow = false
			v.scroll++
		case tea.KeyPgDown:
			if v.scroll > 0 {
				v.scroll--
			}
			if v.scroll == 0 {
				v.follow = true
			}
		case tea.KeySpace:
			v.input += " "
		case tea.KeyRunes:
			v.input += string(typed.Runes)
		}
	}
	return nil
}

// sendCmd submits the composed message. Empty-after-trim input is a
// no-op; the input is cleared only when the send succeeds.
func (v *chatView) sendCmd() tea.Cmd {
	content := strings.TrimSpace(v.input)
	if content == "" {
		return nil
	}

	store := v.store
	req := models.CreateMessage{
		SenderID:   v.user.ID,
		ReceiverID: v.target.OtherPartyID,
		Content:    content,
		ServiceID:  v.target.ServiceID,
	}
	return func() tea.Msg {
		_, err := store.CreateMessage(context.Background(), req)
		return chatSentMsg{err: err}
	}
}

func (v *chatView) view(width, height int) string {
	header := titleStyle.Render("Chat with " + v.target.OtherPartyName)
	if v.target.ServiceTitle != "" {
		header += dimStyle.Render("  Re: " + v.target.ServiceTitle)
	}

	var contact []string
	if v.target.ProviderPhone != "" {
		contact = append(contact, dimStyle.Render("tel: "+v.target.ProviderPhone))
	}
	if v.target.ProviderEmail != "" {
		contact = append(contact, dimStyle.Render("email: "+v.target.ProviderEmail))
	}

	top := header
	if len(contact) > 0 {
		top += "\n" + strings.Join(contact, "  ")
	}

	inputLine := "> " + v.input + "█"
	status := ""
	if v.errText != "" {
		status = errorStyle.Render(v.errText)
	}
	help := helpStyle.Render("enter: send • pgup/pgdn: scroll • esc: back")

	reserved := lipgloss.Height(top) + lipgloss.Height(inputLine) + lipgloss.Height(help) + 2
	if status != "" {
		reserved++
	}
	bodyHeight := height - reserved
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	body := v.renderMessages(width, bodyHeight)

	parts := []string{top, body, inputLine}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, help)
	return strings.Join(parts, "\n")
}

func (v *chatView) renderMessages(width, height int) string {
	if v.loading {
		return dimStyle.Render("Loading messages...")
	}
	if len(v.messages) == 0 {
		return dimStyle.Render("No messages yet. Start the conversation!")
	}

	bubbleWidth := width * 3 / 4
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var lines []string
	for _, m := range v.messages {
		style := theirBubbleStyle
		align := lipgloss.Left
		if m.SenderID == v.user.ID {
			style = ownBubbleStyle
			align = lipgloss.Right
		}
		bubble := style.MaxWidth(bubbleWidth).Render(m.Content)
		stamp := dimStyle.Render(m.CreatedAt.Format("02 Jan 15:04"))
		block := lipgloss.JoinVertical(align, bubble, stamp)
		block = lipgloss.PlaceHorizontal(width, align, block)
		lines = append(lines, strings.Split(block, "\n")...)
		lines = append(lines, "")
	}

	// window the rendered lines; follow mode pins the newest message
	offset := v.scroll
	if v.follow {
		offset = 0
	}
	end := len(lines) - offset
	if end > len(lines) {
		end = len(lines)
	}
	start := end - height
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	return strings.Join(lines[start:end], "\n")
}
