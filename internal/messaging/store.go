package messaging

import (
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
)

//go:generate mockgen -source=store.go -destination=mock/store.go -package=mock

// Store is the backend capability the messaging views depend on.
// *api.Client implements it; tests substitute the gomock double.
type Store interface {
	CreateMessage(ctx context.Context, req models.CreateMessage) (models.Message, error)
	ListMessages(ctx context.Context, user models.User) ([]models.Message, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, messageID string) error
}
