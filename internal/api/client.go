package api

import (
	"bitbucket.org/sotavant/workhub-chat/internal/logger"
	"bitbucket.org/sotavant/workhub-chat/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

// Client talks to the workhub backend. It keeps no state besides the
// configured base URL; every view owns its own copy of whatever it fetches.
type Client struct {
	rc *resty.Client
}

func NewClient(baseURL string) *Client {
	rc := resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader("X-Request-Id", uuid.NewString())
		return nil
	})

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Log.Debug("backend response",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.String("requestId", resp.Request.Header.Get("X-Request-Id")),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("elapsed", resp.Time()))
		return nil
	})

	return &Client{rc: rc}
}

type errorBody struct {
	Error string `json:"error"`
}

// fail maps a non-2xx response to an *Error, preferring the backend's
// own error text over the fallback.
func fail(resp *resty.Response, fallback string) error {
	msg := fallback
	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		msg = body.Error
	}

	code := CodeValidation
	switch resp.StatusCode() {
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		code = CodeUnauthorized
	}

	return &Error{Code: code, Message: msg}
}

func netErr(action string, err error) error {
	return &Error{Code: CodeNetwork, Message: action, Err: err}
}

// CreateMessage sends one message. Empty-after-trim content is rejected
// here, before anything goes on the wire.
func (c *Client) CreateMessage(ctx context.Context, req models.CreateMessage) (models.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return models.Message{}, &Error{Code: CodeValidation, Message: "message content is empty"}
	}

	var msg models.Message
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&msg).
		Post("/messages")
	if err != nil {
		return models.Message{}, netErr("failed to send message", err)
	}
	if resp.IsError() {
		return models.Message{}, fail(resp, "failed to send message")
	}

	return msg, nil
}

// UserMessages returns every message where the user is sender or
// receiver. The backend's ordering is not part of the contract; callers
// sort for themselves.
func (c *Client) UserMessages(ctx context.Context, userID string) ([]models.Message, error) {
	return c.listMessages(ctx, "/messages/user/"+userID)
}

// WorkerMessages is UserMessages for the provider role.
func (c *Client) WorkerMessages(ctx context.Context, workerID string) ([]models.Message, error) {
	return c.listMessages(ctx, "/messages/worker/"+workerID)
}

// ListMessages picks the endpoint matching the user's role.
func (c *Client) ListMessages(ctx context.Context, user models.User) ([]models.Message, error) {
	if user.Role == models.RoleWorker {
		return c.WorkerMessages(ctx, user.ID)
	}
	return c.UserMessages(ctx, user.ID)
}

func (c *Client) listMessages(ctx context.Context, path string) ([]models.Message, error) {
	var msgs []models.Message
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&msgs).
		Get(path)
	if err != nil {
		return nil, netErr("failed to fetch messages", err)
	}
	if resp.IsError() {
		return nil, fail(resp, "failed to fetch messages")
	}

	return msgs, nil
}

// UnreadCount returns how many messages addressed to the user are still
// unread.
func (c *Client) UnreadCount(ctx context.Context, userID string) (int, error) {
	var result struct {
		UnreadCount int `json:"unreadCount"`
	}
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/messages/unread/" + userID)
	if err != nil {
		return 0, netErr("failed to fetch unread count", err)
	}
	if resp.IsError() {
		return 0, fail(resp, "failed to fetch unread count")
	}

	return result.UnreadCount, nil
}

// MarkRead flips the read flag on one message. The backend treats it as
// idempotent, so marking an already-read message succeeds.
func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		Put("/messages/" + messageID + "/read")
	if err != nil {
		return netErr("failed to mark message as read", err)
	}
	if resp.IsError() {
		return fail(resp, "failed to mark message as read")
	}

	return nil
}

// Login exchanges credentials for the user's identity.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Email: email, Password: password}).
		SetResult(&user).
		Post("/login")
	if err != nil {
		return models.User{}, netErr("login failed", err)
	}
	if resp.IsError() {
		return models.User{}, fail(resp, "login failed")
	}

	return user, nil
}

func (c *Client) RegisterUser(ctx context.Context, req models.RegisterRequest) error {
	return c.register(ctx, "/register/user", req)
}

func (c *Client) RegisterWorker(ctx context.Context, req models.RegisterRequest) error {
	return c.register(ctx, "/register/worker", req)
}

func (c *Client) register(ctx context.Context, path string, req models.RegisterRequest) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(req).
		Post(path)
	if err != nil {
		return netErr("registration failed", err)
	}
	if resp.IsError() {
		return fail(resp, "registration failed")
	}

	return nil
}

// ApprovedServices lists every listing the moderators have approved.
func (c *Client) ApprovedServices(ctx context.Context) ([]models.Service, error) {
	return c.listServices(ctx, "/services/approved")
}

func (c *Client) ServicesByCategory(ctx context.Context, category string) ([]models.Service, error) {
	return c.listServices(ctx, "/services/category/"+category)
}

func (c *Client) WorkerServices(ctx context.Context, workerID string) ([]models.Service, error) {
	return c.listServices(ctx, fmt.Sprintf("/worker/%s/services", workerID))
}

func (c *Client) listServices(ctx context.Context, path string) ([]models.Service, error) {
	var services []models.Service
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&services).
		Get(path)
	if err != nil {
		return nil, netErr("failed to fetch services", err)
	}
	if resp.IsError() {
		return nil, fail(resp, "failed to fetch services")
	}

	return services, nil
}
