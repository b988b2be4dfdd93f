package entity

import "time"

// Sender roles accepted on a message. Anything else is rejected before
// the write reaches storage.
const (
	SenderBuyer  = "buyer"
	SenderSeller = "seller"
)

// ValidSenderRole reports whether role is one of the accepted values.
func ValidSenderRole(role string) bool {
	return role == SenderBuyer || role == SenderSeller
}

// Message is one buyer/seller message. Messages are append-only: the
// only mutation is flipping the read flag.
type Message struct {
	ID          int64
	SenderUser  *int64 // Optional owning user.
	SenderRole  string // "buyer" or "seller".
	SenderName  string
	SenderEmail string
	ProductID   *int64 // nil means a general/support message.
	Subject     string
	Content     string
	IsRead      bool
	Timestamp   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Conversation is a derived view, not a stored entity: all messages for
// one (product, sender email) pair collapsed into a single row.
type Conversation struct {
	ProductID       int64
	ProductName     string
	SenderEmail     string
	SenderName      string
	SenderRole      string
	MessageCount    int64
	LastMessageTime time.Time
	UnreadCount     int64
	Subjects        string // Distinct subjects joined with "; ".
}

// ThreadMessage is one message in thread reading order, carrying the
// joined product name for display.
type ThreadMessage struct {
	Message
	ProductName string
}
