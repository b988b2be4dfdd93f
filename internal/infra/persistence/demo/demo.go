// Package demo is the last tier of the fallback chain: a store that is
// always constructible and never touches a database. Writes land in
// memory owned by the instance and vanish with the process; reads
// reflect only what the same instance wrote. It reports itself
// unavailable so status surfaces can tell users nothing persists.
package demo

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"
)

// Store is the in-memory implementation of store.MarketplaceStore.
// All state lives on the instance behind one mutex.
type Store struct {
	mu     sync.Mutex
	logger *slog.Logger

	nextID   int64
	products []entity.Product
	profiles []entity.Profile
	users    []entity.User
	reviews  []entity.Review
	messages []entity.Message
	orders   []entity.OrderSummary
	events   []entity.AnalyticsEvent
}

var _ store.MarketplaceStore = (*Store)(nil)

// New builds an empty demo store.
func New(logger *slog.Logger) *Store {
	logger.Warn("demo store active: data will not persist")

	return &Store{logger: logger, nextID: 1}
}

// Available always reports false: this tier has no backend.
func (s *Store) Available() bool {
	return false
}

// Backend names the tier for status surfaces.
func (s *Store) Backend() string {
	return "demo"
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++

	return id
}

func (s *Store) ListProducts(_ context.Context, userID *int64) []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := []entity.Product{}
	for i := len(s.products) - 1; i >= 0; i-- {
		p := s.products[i]
		if userID != nil && (p.UserID == nil || *p.UserID != *userID) {
			continue
		}
		products = append(products, p)
	}

	return products
}

func (s *Store) AddProduct(_ context.Context, input store.ProductInput, userID *int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.products = append(s.products, entity.Product{
		ID:             s.allocID(),
		UserID:         userID,
		Name:           input.Name,
		Category:       input.Category,
		Price:          input.Price,
		Description:    input.Description,
		Materials:      input.Materials,
		Dimensions:     input.Dimensions,
		Weight:         input.Weight,
		StockQuantity:  input.StockQuantity,
		ShippingCost:   input.ShippingCost,
		ProcessingTime: input.ProcessingTime,
		Tags:           input.Tags,
		ImageData:      input.ImageData,
		CreatedAt:      now,
		UpdatedAt:      now,
	})

	return true
}

func (s *Store) UpdateProduct(_ context.Context, id int64, update store.ProductUpdate) bool {
	if len(update.Changes()) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		setIf(&p.Name, update.Name)
		setIf(&p.Category, update.Category)
		setIf(&p.Price, update.Price)
		setIf(&p.Description, update.Description)
		setIf(&p.Materials, update.Materials)
		setIf(&p.Dimensions, update.Dimensions)
		setIf(&p.Weight, update.Weight)
		setIf(&p.StockQuantity, update.StockQuantity)
		setIf(&p.ShippingCost, update.ShippingCost)
		setIf(&p.ProcessingTime, update.ProcessingTime)
		setIf(&p.Tags, update.Tags)
		setIf(&p.ImageData, update.ImageData)
		p.UpdatedAt = time.Now()

		return true
	}

	return false
}

func (s *Store) DeleteProduct(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		s.products = append(s.products[:i], s.products[i+1:]...)

		// Mirror the schema-level cascade.
		kept := s.reviews[:0]
		for _, r := range s.reviews {
			if r.ProductID != id {
				kept = append(kept, r)
			}
		}
		s.reviews = kept

		keptMsgs := s.messages[:0]
		for _, m := range s.messages {
			if m.ProductID == nil || *m.ProductID != id {
				keptMsgs = append(keptMsgs, m)
			}
		}
		s.messages = keptMsgs

		return true
	}

	return false
}

func (s *Store) IncrementViews(_ context.Context, id int64) bool {
	return s.bumpCounter(id, func(p *entity.Product) { p.Views++ })
}

func (s *Store) IncrementFavorites(_ context.Context, id int64) bool {
	return s.bumpCounter(id, func(p *entity.Product) { p.Favorites++ })
}

func (s *Store) bumpCounter(id int64, bump func(*entity.Product)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			bump(&s.products[i])
			s.products[i].UpdatedAt = time.Now()

			return true
		}
	}

	return false
}

func (s *Store) ListProfiles(_ context.Context) []entity.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := []entity.Profile{}
	for i := len(s.profiles) - 1; i >= 0; i-- {
		profiles = append(profiles, s.profiles[i])
	}

	return profiles
}

func (s *Store) AddProfile(_ context.Context, input store.ProfileInput, userID *int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.profiles = append(s.profiles, entity.Profile{
		ID:              s.allocID(),
		UserID:          userID,
		Name:            input.Name,
		Location:        input.Location,
		Specialties:     input.Specialties,
		YearsExperience: input.YearsExperience,
		Bio:             input.Bio,
		Email:           input.Email,
		Phone:           input.Phone,
		Website:         input.Website,
		Instagram:       input.Instagram,
		Facebook:        input.Facebook,
		Etsy:            input.Etsy,
		Education:       input.Education,
		Awards:          input.Awards,
		Inspiration:     input.Inspiration,
		ProfileImage:    input.ProfileImage,
		CreatedAt:       now,
		UpdatedAt:       now,
	})

	return true
}

func (s *Store) UpdateProfile(_ context.Context, id int64, update store.ProfileUpdate) bool {
	if len(update.Changes()) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if s.profiles[i].ID != id {
			continue
		}
		p := &s.profiles[i]
		setIf(&p.Name, update.Name)
		setIf(&p.Location, update.Location)
		setIf(&p.Specialties, update.Specialties)
		setIf(&p.YearsExperience, update.YearsExperience)
		setIf(&p.Bio, update.Bio)
		setIf(&p.Email, update.Email)
		setIf(&p.Phone, update.Phone)
		setIf(&p.Website, update.Website)
		setIf(&p.Instagram, update.Instagram)
		setIf(&p.Facebook, update.Facebook)
		setIf(&p.Etsy, update.Etsy)
		setIf(&p.Education, update.Education)
		setIf(&p.Awards, update.Awards)
		setIf(&p.Inspiration, update.Inspiration)
		setIf(&p.ProfileImage, update.ProfileImage)
		p.UpdatedAt = time.Now()

		return true
	}

	return false
}

func (s *Store) CreateUser(_ context.Context, input store.OAuthUserInput) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for i := range s.users {
		u := &s.users[i]
		if u.OAuthProvider != input.OAuthProvider || u.OAuthID != input.OAuthID {
			continue
		}
		u.Name = input.Name
		u.AvatarURL = input.AvatarURL
		if input.Email != "" {
			u.Email = input.Email
		}
		if input.ProfileData != nil {
			u.ProfileData = input.ProfileData
		}
		u.LastLogin = now
		u.UpdatedAt = now

		return u.ID, true
	}

	user := entity.User{
		ID:            s.allocID(),
		OAuthProvider: input.OAuthProvider,
		OAuthID:       input.OAuthID,
		Email:         input.Email,
		Name:          input.Name,
		AvatarURL:     input.AvatarURL,
		ProfileData:   input.ProfileData,
		LastLogin:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.users = append(s.users, user)

	return user.ID, true
}

func (s *Store) GetUserByID(_ context.Context, id int64) (*entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]

			return &user, true
		}
	}

	return nil, false
}

func (s *Store) AddReview(_ context.Context, input store.ReviewInput) (int64, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return 0, store.ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	review := entity.Review{
		ID:            s.allocID(),
		ProductID:     input.ProductID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Rating:        input.Rating,
		Comment:       input.Comment,
		Approved:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.reviews = append(s.reviews, review)

	return review.ID, nil
}

func (s *Store) GetReviews(_ context.Context, productID int64, includeUnapproved bool) []entity.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := []entity.Review{}
	for i := len(s.reviews) - 1; i >= 0; i-- {
		r := s.reviews[i]
		if r.ProductID != productID {
			continue
		}
		if !includeUnapproved && !r.Approved {
			continue
		}
		reviews = append(reviews, r)
	}

	return reviews
}

func (s *Store) GetAverageRating(_ context.Context, productID int64) entity.RatingSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := entity.RatingSummary{Histogram: entity.NewRatingHistogram()}
	var sum int64
	for _, r := range s.reviews {
		if r.ProductID != productID || !r.Approved {
			continue
		}
		summary.Histogram[r.Rating]++
		summary.Total++
		sum += int64(r.Rating)
	}
	if summary.Total > 0 {
		summary.Average = math.Round(float64(sum)/float64(summary.Total)*100) / 100
	}

	return summary
}

func (s *Store) SendMessage(_ context.Context, input store.MessageInput) (int64, error) {
	if !entity.ValidSenderRole(input.SenderRole) {
		return 0, store.ErrInvalidSenderRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	message := entity.Message{
		ID:          s.allocID(),
		SenderUser:  input.SenderUserID,
		SenderRole:  input.SenderRole,
		SenderName:  input.SenderName,
		SenderEmail: input.SenderEmail,
		ProductID:   input.ProductID,
		Subject:     input.Subject,
		Content:     input.Content,
		Timestamp:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.messages = append(s.messages, message)

	return message.ID, nil
}

func (s *Store) GetUnreadMessageCount(_ context.Context, email string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, m := range s.messages {
		if m.IsRead {
			continue
		}
		if email != "" && m.SenderEmail == email {
			continue
		}
		count++
	}

	return count
}

func (s *Store) GetConversations(_ context.Context, email, senderRole string) []entity.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct {
		productID int64
		email     string
	}

	grouped := map[key]*entity.Conversation{}
	subjects := map[key][]string{}
	for _, m := range s.messages {
		if m.ProductID == nil {
			continue
		}
		if email != "" && m.SenderEmail != email {
			continue
		}
		if senderRole != "" && m.SenderRole != senderRole {
			continue
		}

		k := key{productID: *m.ProductID, email: m.SenderEmail}
		conv, ok := grouped[k]
		if !ok {
			conv = &entity.Conversation{
				ProductID:   *m.ProductID,
				ProductName: s.productNameLocked(*m.ProductID),
				SenderEmail: m.SenderEmail,
				SenderName:  m.SenderName,
				SenderRole:  m.SenderRole,
			}
			grouped[k] = conv
		}
		conv.MessageCount++
		if m.Timestamp.After(conv.LastMessageTime) {
			conv.LastMessageTime = m.Timestamp
		}
		if !m.IsRead {
			conv.UnreadCount++
		}
		if !slices.Contains(subjects[k], m.Subject) {
			subjects[k] = append(subjects[k], m.Subject)
		}
	}

	conversations := []entity.Conversation{}
	for k, conv := range grouped {
		conv.Subjects = strings.Join(subjects[k], "; ")
		conversations = append(conversations, *conv)
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageTime.After(conversations[j].LastMessageTime)
	})

	return conversations
}

func (s *Store) MarkConversationAsRead(_ context.Context, productID int64, senderEmail string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		m := &s.messages[i]
		if m.ProductID != nil && *m.ProductID == productID && m.SenderEmail == senderEmail {
			m.IsRead = true
			m.UpdatedAt = time.Now()
		}
	}

	return true
}

func (s *Store) GetMessageThread(_ context.Context, productID int64, participantEmails []string) []entity.ThreadMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread := []entity.ThreadMessage{}
	if len(participantEmails) == 0 {
		return thread
	}

	productName := s.productNameLocked(productID)
	for _, m := range s.messages {
		if m.ProductID == nil || *m.ProductID != productID {
			continue
		}
		if !slices.Contains(participantEmails, m.SenderEmail) {
			continue
		}
		thread = append(thread, entity.ThreadMessage{Message: m, ProductName: productName})
	}
	sort.Slice(thread, func(i, j int) bool {
		return thread[i].Timestamp.Before(thread[j].Timestamp)
	})

	return thread
}

func (s *Store) CreateOrder(_ context.Context, input store.OrderInput) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	names := []string{}
	for _, item := range input.Items {
		if item.ProductID != nil {
			if name := s.productNameLocked(*item.ProductID); name != "" {
				names = append(names, name)
			}
		}
	}

	order := entity.OrderSummary{
		Order: entity.Order{
			ID:              s.allocID(),
			CustomerName:    input.CustomerName,
			CustomerEmail:   input.CustomerEmail,
			CustomerPhone:   input.CustomerPhone,
			ShippingAddress: input.ShippingAddress,
			TotalAmount:     input.TotalAmount,
			Status:          "pending",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		ItemCount:    int64(len(input.Items)),
		ProductNames: names,
	}
	s.orders = append(s.orders, order)

	return order.ID, true
}

func (s *Store) ListOrders(_ context.Context) []entity.OrderSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := []entity.OrderSummary{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		orders = append(orders, s.orders[i])
	}

	return orders
}

func (s *Store) LogEvent(_ context.Context, event store.EventInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := event.UserSession
	if session == "" {
		session = "anonymous"
	}
	s.events = append(s.events, entity.AnalyticsEvent{
		ID:          s.allocID(),
		EventType:   event.EventType,
		ProductID:   event.ProductID,
		UserSession: session,
		Payload:     event.Payload,
		Timestamp:   time.Now(),
	})

	return true
}

func (s *Store) GetAnalyticsSummary(_ context.Context) entity.AnalyticsSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := entity.EmptyAnalyticsSummary()
	sessions := map[string]struct{}{}
	for _, e := range s.events {
		summary.TotalEvents++
		summary.EventsByType[e.EventType]++
		sessions[e.UserSession] = struct{}{}
	}
	summary.UniqueSessions = int64(len(sessions))

	return summary
}

// productNameLocked resolves a product name; the caller holds the mutex.
func (s *Store) productNameLocked(id int64) string {
	for i := range s.products {
		if s.products[i].ID == id {
			return s.products[i].Name
		}
	}

	return ""
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
