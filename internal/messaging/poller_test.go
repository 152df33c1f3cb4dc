package messaging

import (
	"bitbucket.org/sotavant/workhub-chat/internal/messaging/mock"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	"errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func drain(p *Poller) {
	for range p.Updates() {
	}
}

func TestPoller_FirstFetchAndMarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockStore(ctrl)

	user := models.User{ID: "u1", Role: models.RoleUser}
	msgs := []models.Message{
		msg("m1", "u2", "u1", 0),
		msg("m2", "u2", "u1", time.Minute),
		msg("m3", "u1", "u2", 2*time.Minute),
	}
	// m3 is outbound, so only the two inbound unread ones get receipts

	s.EXPECT().ListMessages(gomock.Any(), user).Return(msgs, nil)

	marked := make(chan string, 2)
	markRead := func(_ context.Context, id string) error {
		marked <- id
		return nil
	}
	s.EXPECT().MarkRead(gomock.Any(), "m1").DoAndReturn(markRead)
	s.EXPECT().MarkRead(gomock.Any(), "m2").DoAndReturn(markRead)

	p := NewPoller(s, user, "u2", time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	u := <-p.Updates()
	require.NoError(t, u.Err)
	require.Len(t, u.Messages, 3)
	assert.True(t, u.Grew)
	// chronological, oldest first
	assert.Equal(t, "m1", u.Messages[0].ID)
	assert.Equal(t, "m3", u.Messages[2].ID)

	got := map[string]bool{}
	got[<-marked] = true
	got[<-marked] = true
	assert.True(t, got["m1"])
	assert.True(t, got["m2"])

	cancel()
	drain(p)
}

func TestPoller_DiscardsInFlightAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockStore(ctrl)

	user := models.User{ID: "u1", Role: models.RoleUser}
	started := make(chan struct{})
	release := make(chan struct{})

	// no MarkRead expectation: a receipt after close would fail the test
	s.EXPECT().ListMessages(gomock.Any(), user).DoAndReturn(
		func(context.Context, models.User) ([]models.Message, error) {
			close(started)
			<-release
			return []models.Message{msg("m1", "u2", "u1", 0)}, nil
		})

	p := NewPoller(s, user, "u2", time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	<-started
	cancel()
	close(release)

	// the in-flight result is dropped and the channel just closes
	u, ok := <-p.Updates()
	assert.False(t, ok)
	assert.Empty(t, u.Messages)
}

func TestPoller_KeepsPollingAfterFetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockStore(ctrl)

	user := models.User{ID: "u1", Role: models.RoleUser}
	outbound := []models.Message{msg("m1", "u1", "u2", 0)}

	gomock.InOrder(
		s.EXPECT().ListMessages(gomock.Any(), user).Return(nil, errors.New("backend down")),
		s.EXPECT().ListMessages(gomock.Any(), user).Return(outbound, nil).MinTimes(1),
	)

	p := NewPoller(s, user, "u2", 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	first := <-p.Updates()
	require.Error(t, first.Err)

	second := <-p.Updates()
	require.NoError(t, second.Err)
	assert.Len(t, second.Messages, 1)

	cancel()
	drain(p)
}

func TestPoller_RefreshFetchesOutOfBand(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockStore(ctrl)

	user := models.User{ID: "u1", Role: models.RoleUser}
	one := []models.Message{msg("m1", "u1", "u2", 0)}
	two := []models.Message{msg("m1", "u1", "u2", 0), msg("m2", "u1", "u2", time.Minute)}

	gomock.InOrder(
		s.EXPECT().ListMessages(gomock.Any(), user).Return(one, nil),
		s.EXPECT().ListMessages(gomock.Any(), user).Return(two, nil),
	)

	// hour-long interval: the second fetch can only come from Refresh
	p := NewPoller(s, user, "u2", time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	first := <-p.Updates()
	require.NoError(t, first.Err)
	require.Len(t, first.Messages, 1)

	p.Refresh()

	second := <-p.Updates()
	require.NoError(t, second.Err)
	assert.Len(t, second.Messages, 2)
	assert.True(t, second.Grew)

	cancel()
	drain(p)
}

func TestPoller_MarkReadFailureDoesNotStopLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockStore(ctrl)

	user := models.User{ID: "u1", Role: models.RoleUser}
	inbound := []models.Message{msg("m1", "u2", "u1", 0)}

	s.EXPECT().ListMessages(gomock.Any(), user).Return(inbound, nil).MinTimes(2)

	marked := make(chan struct{}, 10)
	s.EXPECT().MarkRead(gomock.Any(), "m1").DoAndReturn(
		func(context.Context, string) error {
			marked <- struct{}{}
			return errors.New("receipt lost")
		}).MinTimes(2)

	p := NewPoller(s, user, "u2", 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	// the failed receipt is retried on the next tick because the backend
	// still reports the message unread
	first := <-p.Updates()
	require.NoError(t, first.Err)
	<-marked

	second := <-p.Updates()
	require.NoError(t, second.Err)
	<-marked

	cancel()
	drain(p)
}
