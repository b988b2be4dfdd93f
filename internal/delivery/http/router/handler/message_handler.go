package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageHandler serves buyer/seller messaging and the derived
// conversation views.
type MessageHandler struct {
	store  store.MarketplaceStore
	logger *slog.Logger
}

// NewMessageHandler is the constructor for MessageHandler, injected by Fx.
func NewMessageHandler(marketStore store.MarketplaceStore, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{store: marketStore, logger: logger}
}

type sendMessageRequest struct {
	SenderUserID *int64 `json:"senderUserId"`
	SenderRole   string `json:"senderRole" validate:"required"`
	SenderName   string `json:"senderName" validate:"required"`
	SenderEmail  string `json:"senderEmail" validate:"required,email"`
	ProductID    *int64 `json:"productId"`
	Subject      string `json:"subject" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

type markReadRequest struct {
	ProductID   int64  `json:"productId" validate:"required"`
	SenderEmail string `json:"senderEmail" validate:"required,email"`
}

// Send appends a new message.
func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	messageID, err := h.store.SendMessage(c.Request().Context(), store.MessageInput{
		SenderUserID: req.SenderUserID,
		SenderRole:   req.SenderRole,
		SenderName:   req.SenderName,
		SenderEmail:  req.SenderEmail,
		ProductID:    req.ProductID,
		Subject:      req.Subject,
		Content:      req.Content,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidSenderRole) {
			return response.BadRequest(c, "INVALID_SENDER_ROLE", err.Error())
		}
		if errors.Is(err, store.ErrUnavailable) {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.InternalServerError(c, "MESSAGE_SEND_FAILED", "Write failed")
	}

	return response.Success(c, http.StatusCreated, map[string]int64{"id": messageID}, "Message sent")
}

// UnreadCount reports unread messages, excluding the caller's own when
// an email is supplied.
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	count := h.store.GetUnreadMessageCount(c.Request().Context(), c.QueryParam("email"))

	return response.Success(c, http.StatusOK, map[string]int64{"unread": count}, "")
}

// Conversations returns the derived conversation list, most recent
// activity first.
func (h *MessageHandler) Conversations(c echo.Context) error {
	conversations := h.store.GetConversations(c.Request().Context(),
		c.QueryParam("email"), c.QueryParam("role"))

	return response.Success(c, http.StatusOK, conversations, "")
}

// MarkRead flips the read flag on one whole conversation.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if !h.store.MarkConversationAsRead(c.Request().Context(), req.ProductID, req.SenderEmail) {
		return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
	}

	return response.Success(c, http.StatusOK, nil, "Conversation marked as read")
}

// Thread returns the messages of one product conversation, oldest-first.
func (h *MessageHandler) Thread(c echo.Context) error {
	productID, err := strconv.ParseInt(c.QueryParam("productId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_PRODUCT_ID", "productId must be an integer")
	}

	var emails []string
	for _, email := range strings.Split(c.QueryParam("participants"), ",") {
		if trimmed := strings.TrimSpace(email); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	if len(emails) == 0 {
		return response.BadRequest(c, "MISSING_PARTICIPANTS", "participants must list at least one email")
	}

	thread := h.store.GetMessageThread(c.Request().Context(), productID, emails)

	return response.Success(c, http.StatusOK, thread, "")
}
