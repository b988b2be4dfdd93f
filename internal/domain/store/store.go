// Package store defines the uniform data-access contract of the
// marketplace. Three implementations exist behind one interface: the
// dual-backend record store, the legacy Postgres-only store, and the
// in-memory demo store. Callers never know which tier answered.
package store

import (
	"context"

	"truecraft/internal/domain/entity"
)

// Validation failures reported by write operations. These are result
// values of the contract, detected before anything touches storage.
var (
	ErrInvalidRating     = errInvalidRating{}
	ErrInvalidSenderRole = errInvalidSenderRole{}
	ErrUnavailable       = errUnavailable{}
)

type errInvalidRating struct{}

func (errInvalidRating) Error() string { return "rating must be between 1 and 5" }

type errInvalidSenderRole struct{}

func (errInvalidSenderRole) Error() string { return `sender role must be "buyer" or "seller"` }

type errUnavailable struct{}

func (errUnavailable) Error() string { return "database unavailable" }

// MarketplaceStore is the contract every caller depends on.
//
// Every method is total: when the backing database is unreachable the
// method returns its documented empty/false result and never panics.
// Each call is one bounded unit of work; no transaction spans calls.
type MarketplaceStore interface {
	// Available reports whether the implementation reached its backend
	// during construction. The demo store always reports false.
	Available() bool

	// Backend names the implementation tier for status surfaces.
	Backend() string

	// Products. Updates with no set fields return false on every tier.
	ListProducts(ctx context.Context, userID *int64) []entity.Product
	AddProduct(ctx context.Context, input ProductInput, userID *int64) bool
	UpdateProduct(ctx context.Context, id int64, update ProductUpdate) bool
	DeleteProduct(ctx context.Context, id int64) bool
	IncrementViews(ctx context.Context, id int64) bool
	IncrementFavorites(ctx context.Context, id int64) bool

	// Profiles. No delete in the public contract.
	ListProfiles(ctx context.Context) []entity.Profile
	AddProfile(ctx context.Context, input ProfileInput, userID *int64) bool
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) bool

	// Users. CreateUser is an atomic upsert keyed on (provider, oauth id);
	// it returns (0, false) when the write could not happen.
	CreateUser(ctx context.Context, input OAuthUserInput) (int64, bool)
	GetUserByID(ctx context.Context, id int64) (*entity.User, bool)

	// Reviews. AddReview rejects ratings outside 1-5 with
	// ErrInvalidRating before any write.
	AddReview(ctx context.Context, input ReviewInput) (int64, error)
	GetReviews(ctx context.Context, productID int64, includeUnapproved bool) []entity.Review
	GetAverageRating(ctx context.Context, productID int64) entity.RatingSummary

	// Messages. SendMessage rejects unknown sender roles with
	// ErrInvalidSenderRole. Messages are append-only.
	SendMessage(ctx context.Context, input MessageInput) (int64, error)
	GetUnreadMessageCount(ctx context.Context, email string) int64
	GetConversations(ctx context.Context, email, senderRole string) []entity.Conversation
	MarkConversationAsRead(ctx context.Context, productID int64, senderEmail string) bool
	GetMessageThread(ctx context.Context, productID int64, participantEmails []string) []entity.ThreadMessage

	// Orders.
	CreateOrder(ctx context.Context, input OrderInput) (int64, bool)
	ListOrders(ctx context.Context) []entity.OrderSummary

	// Analytics. LogEvent is best-effort and swallows failures.
	LogEvent(ctx context.Context, event EventInput) bool
	GetAnalyticsSummary(ctx context.Context) entity.AnalyticsSummary
}
