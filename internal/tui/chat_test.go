package tui

import (
	"bitbucket.org/sotavant/workhub-chat/internal/messaging"
	"bitbucket.org/sotavant/workhub-chat/internal/messaging/mock"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	"errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func testChatView(t *testing.T) (*chatView, *mock.MockStore) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockStore(ctrl)
	user := models.User{ID: "u1", Name: "Ann", Role: models.RoleUser}
	target := chatTarget{OtherPartyID: "u2", OtherPartyName: "Bob", ServiceID: "s1"}
	return newChatView(s, user, target, time.Hour), s
}

func TestChatView_EmptySendIsNoop(t *testing.T) {
	// the store mock has no expectations, so any network call fails the test
	v, _ := testChatView(t)
	v.input = "   "

	cmd := v.update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestChatView_SendFailureKeepsInput(t *testing.T) {
	v, _ := testChatView(t)
	v.input = "hello there"

	cmd := v.update(chatSentMsg{err: errors.New("backend down")})

	assert.Nil(t, cmd)
	assert.Equal(t, "hello there", v.input)
	assert.NotEmpty(t, v.errText)
}

func TestChatView_SendSuccessClearsInput(t *testing.T) {
	v, s := testChatView(t)
	v.poller = messaging.NewPoller(s, v.user, "u2", time.Hour)
	v.input = "hello there"

	cmd := v.update(chatSentMsg{})

	assert.Nil(t, cmd)
	assert.Empty(t, v.input)
	assert.Empty(t, v.errText)
}

func TestChatView_AppliesUpdate(t *testing.T) {
	v, _ := testChatView(t)
	v.updates = make(chan messaging.Update)

	update := messaging.Update{
		Messages: []models.Message{{ID: "m1", SenderID: "u2", ReceiverID: "u1", Content: "hi"}},
		Grew:     true,
	}
	cmd := v.update(chatUpdateMsg{update: update, ok: true})

	require.NotNil(t, cmd, "the view must keep listening for updates")
	assert.False(t, v.loading)
	assert.Len(t, v.messages, 1)
	assert.True(t, v.follow)
}

func TestChatView_DiscardsUpdateAfterClose(t *testing.T) {
	v, _ := testChatView(t)
	_, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.updates = make(chan messaging.Update)

	v.close()

	update := messaging.Update{
		Messages: []models.Message{{ID: "m1", SenderID: "u2", ReceiverID: "u1", Content: "late"}},
	}
	cmd := v.update(chatUpdateMsg{update: update, ok: true})

	assert.Nil(t, cmd)
	assert.Empty(t, v.messages)
}

func TestChatView_FetchErrorShownButKeepsListening(t *testing.T) {
	v, _ := testChatView(t)
	v.updates = make(chan messaging.Update)

	cmd := v.update(chatUpdateMsg{update: messaging.Update{Err: errors.New("tick failed")}, ok: true})

	require.NotNil(t, cmd)
	assert.NotEmpty(t, v.errText)
}
