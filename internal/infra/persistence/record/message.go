package record

import (
	"context"
	"sort"
	"strings"
	"time"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// SendMessage validates the sender role before touching storage and
// returns the new identifier. Messages are append-only.
func (s *Store) SendMessage(ctx context.Context, input store.MessageInput) (int64, error) {
	if !entity.ValidSenderRole(input.SenderRole) {
		return 0, store.ErrInvalidSenderRole
	}

	var messageID int64

	err := s.withSessionErr(ctx, "send message", func(tx *gorm.DB) error {
		messageM := &model.MessageModel{
			SenderUserID:   input.SenderUserID,
			SenderType:     input.SenderRole,
			SenderName:     input.SenderName,
			SenderEmail:    input.SenderEmail,
			ProductID:      input.ProductID,
			Subject:        input.Subject,
			MessageContent: input.Content,
		}
		if err := tx.Create(messageM).Error; err != nil {
			return err
		}
		messageID = messageM.ID

		return nil
	})

	return messageID, err
}

// GetUnreadMessageCount counts unread messages. With an email filter it
// counts messages addressed to that user, i.e. unread messages the user
// did not author themselves.
func (s *Store) GetUnreadMessageCount(ctx context.Context, email string) int64 {
	var count int64

	s.withSession(ctx, "get unread message count", func(tx *gorm.DB) error {
		query := tx.Model(&model.MessageModel{}).Where("is_read = ?", false)
		if email != "" {
			query = query.Where("sender_email <> ?", email)
		}

		return query.Count(&count).Error
	})

	return count
}

// conversationMessageRow is one message joined with its product name.
type conversationMessageRow struct {
	ProductID   int64
	ProductName string
	SenderEmail string
	SenderName  string
	SenderType  string
	Subject     string
	IsRead      bool
	Timestamp   time.Time
}

// conversationKey identifies one (product, sender email) conversation.
type conversationKey struct {
	productID int64
	email     string
}

// GetConversations derives the conversation list: messages grouped by
// (product, sender email), joined to the product name, most recent
// activity first. Aggregation happens in Go over plain message rows:
// the two backends disagree on string-aggregation functions, and an
// aggregated timestamp column does not scan back as a time on the
// embedded driver.
func (s *Store) GetConversations(ctx context.Context, email, senderRole string) []entity.Conversation {
	conversations := []entity.Conversation{}

	s.withSession(ctx, "get conversations", func(tx *gorm.DB) error {
		var rows []conversationMessageRow
		query := tx.Table("messages").
			Select("messages.product_id, products.name AS product_name, messages.sender_email, " +
				"messages.sender_name, messages.sender_type, messages.subject, " +
				"messages.is_read, messages.timestamp").
			Joins("JOIN products ON messages.product_id = products.id")
		if email != "" {
			query = query.Where("messages.sender_email = ?", email)
		}
		if senderRole != "" {
			query = query.Where("messages.sender_type = ?", senderRole)
		}
		if err := query.Order("messages.timestamp ASC").Scan(&rows).Error; err != nil {
			return err
		}

		index := map[conversationKey]int{}
		subjects := map[conversationKey][]string{}
		seenSubjects := map[conversationKey]map[string]struct{}{}
		for _, row := range rows {
			key := conversationKey{productID: row.ProductID, email: row.SenderEmail}
			i, exists := index[key]
			if !exists {
				conversations = append(conversations, entity.Conversation{
					ProductID:   row.ProductID,
					ProductName: row.ProductName,
					SenderEmail: row.SenderEmail,
				})
				i = len(conversations) - 1
				index[key] = i
				seenSubjects[key] = map[string]struct{}{}
			}

			conv := &conversations[i]
			conv.MessageCount++
			if !row.IsRead {
				conv.UnreadCount++
			}
			// Rows arrive oldest-first, so the newest message settles the
			// display name, role and last-activity time.
			if !row.Timestamp.Before(conv.LastMessageTime) {
				conv.LastMessageTime = row.Timestamp
				conv.SenderName = row.SenderName
				conv.SenderRole = row.SenderType
			}
			if _, dup := seenSubjects[key][row.Subject]; !dup {
				seenSubjects[key][row.Subject] = struct{}{}
				subjects[key] = append(subjects[key], row.Subject)
			}
		}

		for i := range conversations {
			key := conversationKey{productID: conversations[i].ProductID, email: conversations[i].SenderEmail}
			conversations[i].Subjects = strings.Join(subjects[key], "; ")
		}

		sort.Slice(conversations, func(i, j int) bool {
			return conversations[i].LastMessageTime.After(conversations[j].LastMessageTime)
		})

		return nil
	})

	return conversations
}

// MarkConversationAsRead flips the read flag on every message of one
// (product, sender email) conversation in a single unit of work.
func (s *Store) MarkConversationAsRead(ctx context.Context, productID int64, senderEmail string) bool {
	return s.withSession(ctx, "mark conversation as read", func(tx *gorm.DB) error {
		return tx.Model(&model.MessageModel{}).
			Where("product_id = ? AND sender_email = ?", productID, senderEmail).
			Updates(map[string]any{"is_read": true, "updated_at": time.Now()}).Error
	})
}

// GetMessageThread returns all messages for a product authored by any of
// the given participants, oldest-first (thread reading order).
func (s *Store) GetMessageThread(ctx context.Context, productID int64, participantEmails []string) []entity.ThreadMessage {
	thread := []entity.ThreadMessage{}

	if len(participantEmails) == 0 {
		return thread
	}

	s.withSession(ctx, "get message thread", func(tx *gorm.DB) error {
		var rows []model.MessageModel
		err := tx.Model(&model.MessageModel{}).
			Where("product_id = ? AND sender_email IN ?", productID, participantEmails).
			Order("timestamp ASC").
			Find(&rows).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		var productName string
		err = tx.Model(&model.ProductModel{}).
			Select("name").
			Where("id = ?", productID).
			Scan(&productName).Error
		if err != nil {
			return err
		}

		for i := range rows {
			thread = append(thread, entity.ThreadMessage{
				Message:     toMessageDomain(&rows[i]),
				ProductName: productName,
			})
		}

		return nil
	})

	return thread
}

func toMessageDomain(data *model.MessageModel) entity.Message {
	return entity.Message{
		ID:          data.ID,
		SenderUser:  data.SenderUserID,
		SenderRole:  data.SenderType,
		SenderName:  data.SenderName,
		SenderEmail: data.SenderEmail,
		ProductID:   data.ProductID,
		Subject:     data.Subject,
		Content:     data.MessageContent,
		IsRead:      data.IsRead,
		Timestamp:   data.Timestamp,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
