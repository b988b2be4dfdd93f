package record

import (
	"context"
	"testing"
	"time"

	"truecraft/internal/domain/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendTestMessage(t *testing.T, s *Store, productID *int64, role, name, email, subject string) int64 {
	t.Helper()

	id, err := s.SendMessage(context.Background(), store.MessageInput{
		SenderRole: role, SenderName: name, SenderEmail: email,
		ProductID: productID, Subject: subject, Content: "body",
	})
	require.NoError(t, err)

	return id
}

func TestStore_SendMessage_RejectsUnknownSenderRole(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SendMessage(ctx, store.MessageInput{
		SenderRole: "admin", SenderName: "Eve", SenderEmail: "eve@example.com",
		Subject: "hi", Content: "hi",
	})
	assert.ErrorIs(t, err, store.ErrInvalidSenderRole)
	assert.Zero(t, s.GetUnreadMessageCount(ctx, ""))
}

func TestStore_GetUnreadMessageCount_ExcludesOwnMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Q1")
	sendTestMessage(t, s, &productID, "buyer", "Cam", "cam@example.com", "Q2")
	sendTestMessage(t, s, &productID, "seller", "Ana", "ana@example.com", "Re: Q1")

	assert.Equal(t, int64(3), s.GetUnreadMessageCount(ctx, ""))
	assert.Equal(t, int64(2), s.GetUnreadMessageCount(ctx, "ana@example.com"))
}

func TestStore_GetConversations_GroupsByProductAndSender(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Shipping")
	time.Sleep(5 * time.Millisecond)
	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Shipping")
	time.Sleep(5 * time.Millisecond)
	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Gift wrap")

	conversations := s.GetConversations(ctx, "bo@example.com", "buyer")
	require.Len(t, conversations, 1)

	conv := conversations[0]
	assert.Equal(t, productID, conv.ProductID)
	assert.Equal(t, "Bowl", conv.ProductName)
	assert.Equal(t, "bo@example.com", conv.SenderEmail)
	assert.Equal(t, "buyer", conv.SenderRole)
	assert.Equal(t, int64(3), conv.MessageCount)
	assert.Equal(t, int64(3), conv.UnreadCount)
	assert.Contains(t, conv.Subjects, "Shipping")
	assert.Contains(t, conv.Subjects, "Gift wrap")
}

func TestStore_GetConversations_SeparatesSenders(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Q1")
	sendTestMessage(t, s, &productID, "buyer", "Cam", "cam@example.com", "Q2")

	conversations := s.GetConversations(ctx, "", "buyer")
	assert.Len(t, conversations, 2)
}

func TestStore_GetConversations_RecentActivityFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	sendTestMessage(t, s, &productID, "seller", "Ana", "ana@example.com", "Order update")
	time.Sleep(5 * time.Millisecond)
	sendTestMessage(t, s, &productID, "seller", "Ana", "ana@example.com", "Order update")
	time.Sleep(5 * time.Millisecond)
	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Question")

	conversations := s.GetConversations(ctx, "", "")
	require.Len(t, conversations, 2)

	// Bo wrote last, so that conversation leads with a real timestamp.
	assert.Equal(t, "bo@example.com", conversations[0].SenderEmail)
	assert.False(t, conversations[0].LastMessageTime.IsZero())
	assert.True(t, conversations[0].LastMessageTime.After(conversations[1].LastMessageTime))
	assert.Equal(t, int64(2), conversations[1].MessageCount)
}

func TestStore_MarkConversationAsRead_FlipsEveryMessage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Q1")
	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Q2")
	sendTestMessage(t, s, &productID, "buyer", "Cam", "cam@example.com", "Q3")

	require.True(t, s.MarkConversationAsRead(ctx, productID, "bo@example.com"))

	// Only Cam's message stays unread.
	assert.Equal(t, int64(1), s.GetUnreadMessageCount(ctx, ""))

	conversations := s.GetConversations(ctx, "bo@example.com", "")
	require.Len(t, conversations, 1)
	assert.Zero(t, conversations[0].UnreadCount)
}

func TestStore_GetMessageThread_OldestFirstForParticipants(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Q1")
	time.Sleep(5 * time.Millisecond)
	sendTestMessage(t, s, &productID, "seller", "Ana", "ana@example.com", "Re: Q1")
	time.Sleep(5 * time.Millisecond)
	sendTestMessage(t, s, &productID, "buyer", "Cam", "cam@example.com", "Q2")

	thread := s.GetMessageThread(ctx, productID, []string{"bo@example.com", "ana@example.com"})
	require.Len(t, thread, 2)
	assert.Equal(t, "Q1", thread[0].Subject)
	assert.Equal(t, "Re: Q1", thread[1].Subject)
	assert.Equal(t, "Bowl", thread[0].ProductName)
	assert.False(t, thread[0].Timestamp.After(thread[1].Timestamp))
}

func TestStore_GetMessageThread_NoParticipantsYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	sendTestMessage(t, s, &productID, "buyer", "Bo", "bo@example.com", "Q1")

	assert.Empty(t, s.GetMessageThread(ctx, productID, nil))
}
