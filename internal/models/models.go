package models

import (
	"time"
)

const (
	RoleUser   = "user"
	RoleWorker = "worker"
	RoleAdmin  = "admin"
)

// Message is a single point-to-point message as the backend returns it.
type Message struct {
	ID             string    `json:"_id"`
	SenderID       string    `json:"senderId"`
	ReceiverID     string    `json:"receiverId"`
	Content        string    `json:"content"`
	ServiceID      string    `json:"serviceId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Read           bool      `json:"read"`
	OtherPartyName string    `json:"otherPartyName,omitempty"`
}

// CreateMessage is the request body for POST /messages.
type CreateMessage struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	ServiceID  string `json:"serviceId,omitempty"`
}

// Conversation groups the messages exchanged with one counterparty.
// It is recomputed from the flat message list on every refresh and
// never stored anywhere.
type Conversation struct {
	OtherPartyID   string
	OtherPartyName string
	ServiceID      string
	Messages       []Message
	Latest         Message
}

// User is the identity the backend hands back on login.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Service is a marketplace listing. Provider contacts are denormalized
// by the backend so the chat header can show them without extra lookups.
type Service struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	Location      string    `json:"location"`
	WorkerID      string    `json:"workerId"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	ProviderName  string    `json:"providerName,omitempty"`
	ProviderEmail string    `json:"providerEmail,omitempty"`
	ProviderPhone string    `json:"providerPhone,omitempty"`
}
