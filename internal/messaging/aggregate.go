package messaging

import (
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"sort"
)

// Aggregate folds the user's flat message list into one conversation per
// counterparty, newest conversation first. The counterparty of a message
// is whichever side of it is not the given user; direction does not
// matter for grouping. The result is a pure projection of the input:
// same slice in, same slice out, every time.
func Aggregate(userID string, msgs []models.Message) []models.Conversation {
	grouped := make(map[string]*models.Conversation)
	var order []string

	for _, msg := range msgs {
		otherID := msg.SenderID
		if msg.SenderID == userID {
			otherID = msg.ReceiverID
		}

		conv, ok := grouped[otherID]
		if !ok {
			name := msg.OtherPartyName
			if name == "" {
				name = "Unknown"
			}
			conv = &models.Conversation{
				OtherPartyID:   otherID,
				OtherPartyName: name,
				ServiceID:      msg.ServiceID,
				Latest:         msg,
			}
			grouped[otherID] = conv
			order = append(order, otherID)
		}

		conv.Messages = append(conv.Messages, msg)
		if msg.CreatedAt.After(conv.Latest.CreatedAt) {
			conv.Latest = msg
		}
	}

	// emit in first-seen order, then stable-sort, so equal timestamps
	// cannot reshuffle between identical calls
	convs := make([]models.Conversation, 0, len(order))
	for _, id := range order {
		convs = append(convs, *grouped[id])
	}

	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].Latest.CreatedAt.After(convs[j].Latest.CreatedAt)
	})

	return convs
}

// FilterPair keeps only the messages exchanged between the two given
// users, whichever direction each one went.
func FilterPair(userID, otherID string, msgs []models.Message) []models.Message {
	out := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		if (m.SenderID == userID && m.ReceiverID == otherID) ||
			(m.ReceiverID == userID && m.SenderID == otherID) {
			out = append(out, m)
		}
	}
	return out
}

// SortChronological orders messages oldest first for rendering. Stable,
// so messages sharing a timestamp keep their fetched order.
func SortChronological(msgs []models.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}
