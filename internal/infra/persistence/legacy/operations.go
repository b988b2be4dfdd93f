package legacy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type productRow struct {
	ID             int64     `db:"id"`
	UserID         *int64    `db:"user_id"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	Price          float64   `db:"price"`
	Description    string    `db:"description"`
	Materials      string    `db:"materials"`
	Dimensions     string    `db:"dimensions"`
	Weight         float64   `db:"weight"`
	StockQuantity  int       `db:"stock_quantity"`
	ShippingCost   float64   `db:"shipping_cost"`
	ProcessingTime string    `db:"processing_time"`
	Tags           string    `db:"tags"`
	ImageData      string    `db:"image_data"`
	Views          int       `db:"views"`
	Favorites      int       `db:"favorites"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (s *Store) ListProducts(ctx context.Context, userID *int64) []entity.Product {
	products := []entity.Product{}

	s.withTx(ctx, "list products", func(tx *sqlx.Tx) error {
		query := `SELECT id, user_id, name, category, price, description, materials,
			dimensions, weight, stock_quantity, shipping_cost, processing_time, tags,
			image_data, views, favorites, created_at, updated_at
			FROM products`
		args := []any{}
		if userID != nil {
			query += " WHERE user_id = $1"
			args = append(args, *userID)
		}
		query += " ORDER BY created_at DESC"

		var rows []productRow
		if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
			return err
		}

		for i := range rows {
			row := &rows[i]
			products = append(products, entity.Product{
				ID: row.ID, UserID: row.UserID, Name: row.Name, Category: row.Category,
				Price: row.Price, Description: row.Description, Materials: row.Materials,
				Dimensions: row.Dimensions, Weight: row.Weight,
				StockQuantity: row.StockQuantity, ShippingCost: row.ShippingCost,
				ProcessingTime: row.ProcessingTime, Tags: row.Tags, ImageData: row.ImageData,
				Views: row.Views, Favorites: row.Favorites,
				CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
			})
		}

		return nil
	})

	return products
}

func (s *Store) AddProduct(ctx context.Context, input store.ProductInput, userID *int64) bool {
	return s.withTx(ctx, "add product", func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (user_id, name, category, price, description, materials,
				dimensions, weight, stock_quantity, shipping_cost, processing_time, tags, image_data)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			userID, input.Name, input.Category, input.Price, input.Description,
			input.Materials, input.Dimensions, input.Weight, input.StockQuantity,
			input.ShippingCost, input.ProcessingTime, input.Tags, input.ImageData)

		return err
	})
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, update store.ProductUpdate) bool {
	return s.applyUpdate(ctx, "update product", "products", id, update.Changes())
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) bool {
	found := false

	ok := s.withTx(ctx, "delete product", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		found = affected > 0

		return nil
	})

	return ok && found
}

func (s *Store) IncrementViews(ctx context.Context, id int64) bool {
	return s.bumpCounter(ctx, "increment views", "views", id)
}

func (s *Store) IncrementFavorites(ctx context.Context, id int64) bool {
	return s.bumpCounter(ctx, "increment favorites", "favorites", id)
}

func (s *Store) bumpCounter(ctx context.Context, op, column string, id int64) bool {
	found := false

	ok := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		query := fmt.Sprintf(
			"UPDATE products SET %s = %s + 1, updated_at = NOW() WHERE id = $1", column, column)
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		found = affected > 0

		return nil
	})

	return ok && found
}

type profileRow struct {
	ID              int64     `db:"id"`
	UserID          *int64    `db:"user_id"`
	Name            string    `db:"name"`
	Location        string    `db:"location"`
	Specialties     string    `db:"specialties"`
	YearsExperience int       `db:"years_experience"`
	Bio             string    `db:"bio"`
	Email           string    `db:"email"`
	Phone           string    `db:"phone"`
	Website         string    `db:"website"`
	Instagram       string    `db:"instagram"`
	Facebook        string    `db:"facebook"`
	Etsy            string    `db:"etsy"`
	Education       string    `db:"education"`
	Awards          string    `db:"awards"`
	Inspiration     string    `db:"inspiration"`
	ProfileImage    string    `db:"profile_image"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (s *Store) ListProfiles(ctx context.Context) []entity.Profile {
	profiles := []entity.Profile{}

	s.withTx(ctx, "list profiles", func(tx *sqlx.Tx) error {
		var rows []profileRow
		err := tx.SelectContext(ctx, &rows,
			`SELECT id, user_id, name, location, specialties, years_experience, bio, email,
				phone, website, instagram, facebook, etsy, education, awards, inspiration,
				profile_image, created_at, updated_at
			 FROM profiles ORDER BY created_at DESC`)
		if err != nil {
			return err
		}

		for i := range rows {
			row := &rows[i]
			profiles = append(profiles, entity.Profile{
				ID: row.ID, UserID: row.UserID, Name: row.Name, Location: row.Location,
				Specialties: row.Specialties, YearsExperience: row.YearsExperience,
				Bio: row.Bio, Email: row.Email, Phone: row.Phone, Website: row.Website,
				Instagram: row.Instagram, Facebook: row.Facebook, Etsy: row.Etsy,
				Education: row.Education, Awards: row.Awards, Inspiration: row.Inspiration,
				ProfileImage: row.ProfileImage,
				CreatedAt:    row.CreatedAt, UpdatedAt: row.UpdatedAt,
			})
		}

		return nil
	})

	return profiles
}

func (s *Store) AddProfile(ctx context.Context, input store.ProfileInput, userID *int64) bool {
	return s.withTx(ctx, "add profile", func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO profiles (user_id, name, location, specialties, years_experience,
				bio, email, phone, website, instagram, facebook, etsy, education, awards,
				inspiration, profile_image)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			userID, input.Name, input.Location, input.Specialties, input.YearsExperience,
			input.Bio, input.Email, input.Phone, input.Website, input.Instagram,
			input.Facebook, input.Etsy, input.Education, input.Awards, input.Inspiration,
			input.ProfileImage)

		return err
	})
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, update store.ProfileUpdate) bool {
	return s.applyUpdate(ctx, "update profile", "profiles", id, update.Changes())
}

// applyUpdate renders a typed partial update into one UPDATE statement.
// Columns come from the entity's allow-list, never from the caller.
func (s *Store) applyUpdate(ctx context.Context, op, table string, id int64, changes map[string]any) bool {
	if len(changes) == 0 {
		return false
	}

	found := false

	ok := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		assignments := make([]string, 0, len(changes)+1)
		args := make([]any, 0, len(changes)+1)
		for _, column := range sortedColumns(changes) {
			args = append(args, changes[column])
			assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
		}
		assignments = append(assignments, "updated_at = NOW()")
		args = append(args, id)

		query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
			table, strings.Join(assignments, ", "), len(args))
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		found = affected > 0

		return nil
	})

	return ok && found
}

func (s *Store) CreateUser(ctx context.Context, input store.OAuthUserInput) (int64, bool) {
	var userID int64

	ok := s.withTx(ctx, "create user", func(tx *sqlx.Tx) error {
		var payload []byte
		if input.ProfileData != nil {
			encoded, err := json.Marshal(input.ProfileData)
			if err != nil {
				return errors.Wrap(err, "failed to encode profile payload")
			}
			payload = encoded
		}

		var existingID int64
		err := tx.GetContext(ctx, &existingID,
			"SELECT id FROM users WHERE oauth_provider = $1 AND oauth_id = $2",
			input.OAuthProvider, input.OAuthID)
		switch {
		case err == nil:
			_, err := tx.ExecContext(ctx,
				`UPDATE users SET name = $1, avatar_url = $2,
					email = COALESCE(NULLIF($3, ''), email),
					profile_data = COALESCE($4, profile_data),
					last_login = NOW(), updated_at = NOW()
				 WHERE id = $5`,
				input.Name, input.AvatarURL, input.Email, payload, existingID)
			if err != nil {
				return err
			}
			userID = existingID

			return nil
		case errors.Is(err, sql.ErrNoRows):
			return tx.GetContext(ctx, &userID,
				`INSERT INTO users (oauth_provider, oauth_id, email, name, avatar_url, profile_data)
				 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6) RETURNING id`,
				input.OAuthProvider, input.OAuthID, input.Email, input.Name,
				input.AvatarURL, payload)
		default:
			return err
		}
	})

	return userID, ok
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*entity.User, bool) {
	var user *entity.User

	s.withTx(ctx, "get user by id", func(tx *sqlx.Tx) error {
		var row struct {
			ID            int64     `db:"id"`
			OAuthProvider string    `db:"oauth_provider"`
			OAuthID       string    `db:"oauth_id"`
			Email         *string   `db:"email"`
			Name          string    `db:"name"`
			AvatarURL     string    `db:"avatar_url"`
			ProfileData   []byte    `db:"profile_data"`
			LastLogin     time.Time `db:"last_login"`
			CreatedAt     time.Time `db:"created_at"`
			UpdatedAt     time.Time `db:"updated_at"`
		}
		err := tx.GetContext(ctx, &row,
			`SELECT id, oauth_provider, oauth_id, email, name, avatar_url, profile_data,
				last_login, created_at, updated_at
			 FROM users WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		email := ""
		if row.Email != nil {
			email = *row.Email
		}
		var profileData map[string]any
		if len(row.ProfileData) > 0 {
			_ = json.Unmarshal(row.ProfileData, &profileData)
		}

		user = &entity.User{
			ID: row.ID, OAuthProvider: row.OAuthProvider, OAuthID: row.OAuthID,
			Email: email, Name: row.Name, AvatarURL: row.AvatarURL,
			ProfileData: profileData, LastLogin: row.LastLogin,
			CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
		}

		return nil
	})

	return user, user != nil
}

func (s *Store) AddReview(ctx context.Context, input store.ReviewInput) (int64, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return 0, store.ErrInvalidRating
	}

	var reviewID int64

	err := s.withTxErr(ctx, "add review", func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &reviewID,
			`INSERT INTO reviews (product_id, customer_name, customer_email, rating, comment)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			input.ProductID, input.CustomerName, input.CustomerEmail,
			input.Rating, input.Comment)
	})

	return reviewID, err
}

func (s *Store) GetReviews(ctx context.Context, productID int64, includeUnapproved bool) []entity.Review {
	reviews := []entity.Review{}

	s.withTx(ctx, "get reviews", func(tx *sqlx.Tx) error {
		query := `SELECT id, product_id, customer_name, customer_email, rating, comment,
			approved, created_at, updated_at
			FROM reviews WHERE product_id = $1`
		if !includeUnapproved {
			query += " AND approved = TRUE"
		}
		query += " ORDER BY created_at DESC"

		var rows []struct {
			ID            int64     `db:"id"`
			ProductID     int64     `db:"product_id"`
			CustomerName  string    `db:"customer_name"`
			CustomerEmail string    `db:"customer_email"`
			Rating        int       `db:"rating"`
			Comment       string    `db:"comment"`
			Approved      bool      `db:"approved"`
			CreatedAt     time.Time `db:"created_at"`
			UpdatedAt     time.Time `db:"updated_at"`
		}
		if err := tx.SelectContext(ctx, &rows, query, productID); err != nil {
			return err
		}

		for _, row := range rows {
			reviews = append(reviews, entity.Review{
				ID: row.ID, ProductID: row.ProductID,
				CustomerName: row.CustomerName, CustomerEmail: row.CustomerEmail,
				Rating: row.Rating, Comment: row.Comment, Approved: row.Approved,
				CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
			})
		}

		return nil
	})

	return reviews
}

func (s *Store) GetAverageRating(ctx context.Context, productID int64) entity.RatingSummary {
	summary := entity.RatingSummary{Histogram: entity.NewRatingHistogram()}

	s.withTx(ctx, "get average rating", func(tx *sqlx.Tx) error {
		var rows []struct {
			Rating int   `db:"rating"`
			Count  int64 `db:"count"`
		}
		err := tx.SelectContext(ctx, &rows,
			`SELECT rating, COUNT(*) AS count FROM reviews
			 WHERE product_id = $1 AND approved = TRUE GROUP BY rating`, productID)
		if err != nil {
			return err
		}

		var sum int64
		for _, row := range rows {
			if row.Rating < 1 || row.Rating > 5 {
				continue
			}
			summary.Histogram[row.Rating] = row.Count
			summary.Total += row.Count
			sum += int64(row.Rating) * row.Count
		}
		if summary.Total > 0 {
			summary.Average = math.Round(float64(sum)/float64(summary.Total)*100) / 100
		}

		return nil
	})

	return summary
}

func (s *Store) SendMessage(ctx context.Context, input store.MessageInput) (int64, error) {
	if !entity.ValidSenderRole(input.SenderRole) {
		return 0, store.ErrInvalidSenderRole
	}

	var messageID int64

	err := s.withTxErr(ctx, "send message", func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &messageID,
			`INSERT INTO messages (sender_user_id, sender_type, sender_name, sender_email,
				product_id, subject, message_content)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			input.SenderUserID, input.SenderRole, input.SenderName, input.SenderEmail,
			input.ProductID, input.Subject, input.Content)
	})

	return messageID, err
}

func (s *Store) GetUnreadMessageCount(ctx context.Context, email string) int64 {
	var count int64

	s.withTx(ctx, "get unread message count", func(tx *sqlx.Tx) error {
		query := "SELECT COUNT(*) FROM messages WHERE is_read = FALSE"
		args := []any{}
		if email != "" {
			query += " AND sender_email <> $1"
			args = append(args, email)
		}

		return tx.GetContext(ctx, &count, query, args...)
	})

	return count
}

func (s *Store) GetConversations(ctx context.Context, email, senderRole string) []entity.Conversation {
	conversations := []entity.Conversation{}

	s.withTx(ctx, "get conversations", func(tx *sqlx.Tx) error {
		conditions := []string{"m.product_id IS NOT NULL"}
		args := []any{}
		if email != "" {
			args = append(args, email)
			conditions = append(conditions, fmt.Sprintf("m.sender_email = $%d", len(args)))
		}
		if senderRole != "" {
			args = append(args, senderRole)
			conditions = append(conditions, fmt.Sprintf("m.sender_type = $%d", len(args)))
		}

		query := fmt.Sprintf(
			`SELECT m.product_id, p.name AS product_name, m.sender_email, m.sender_name,
				m.sender_type, COUNT(*) AS message_count,
				MAX(m.timestamp) AS last_message_time,
				SUM(CASE WHEN m.is_read THEN 0 ELSE 1 END) AS unread_count,
				STRING_AGG(DISTINCT m.subject, '; ') AS subjects
			 FROM messages m JOIN products p ON m.product_id = p.id
			 WHERE %s
			 GROUP BY m.product_id, p.name, m.sender_email, m.sender_name, m.sender_type
			 ORDER BY last_message_time DESC`, strings.Join(conditions, " AND "))

		var rows []struct {
			ProductID       int64     `db:"product_id"`
			ProductName     string    `db:"product_name"`
			SenderEmail     string    `db:"sender_email"`
			SenderName      string    `db:"sender_name"`
			SenderType      string    `db:"sender_type"`
			MessageCount    int64     `db:"message_count"`
			LastMessageTime time.Time `db:"last_message_time"`
			UnreadCount     int64     `db:"unread_count"`
			Subjects        string    `db:"subjects"`
		}
		if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
			return err
		}

		for _, row := range rows {
			conversations = append(conversations, entity.Conversation{
				ProductID: row.ProductID, ProductName: row.ProductName,
				SenderEmail: row.SenderEmail, SenderName: row.SenderName,
				SenderRole: row.SenderType, MessageCount: row.MessageCount,
				LastMessageTime: row.LastMessageTime, UnreadCount: row.UnreadCount,
				Subjects: row.Subjects,
			})
		}

		return nil
	})

	return conversations
}

func (s *Store) MarkConversationAsRead(ctx context.Context, productID int64, senderEmail string) bool {
	return s.withTx(ctx, "mark conversation as read", func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE messages SET is_read = TRUE, updated_at = NOW()
			 WHERE product_id = $1 AND sender_email = $2`, productID, senderEmail)

		return err
	})
}

func (s *Store) GetMessageThread(ctx context.Context, productID int64, participantEmails []string) []entity.ThreadMessage {
	thread := []entity.ThreadMessage{}

	if len(participantEmails) == 0 {
		return thread
	}

	s.withTx(ctx, "get message thread", func(tx *sqlx.Tx) error {
		var rows []struct {
			ID             int64     `db:"id"`
			SenderUserID   *int64    `db:"sender_user_id"`
			SenderType     string    `db:"sender_type"`
			SenderName     string    `db:"sender_name"`
			SenderEmail    string    `db:"sender_email"`
			ProductID      *int64    `db:"product_id"`
			Subject        string    `db:"subject"`
			MessageContent string    `db:"message_content"`
			Timestamp      time.Time `db:"timestamp"`
			IsRead         bool      `db:"is_read"`
			CreatedAt      time.Time `db:"created_at"`
			UpdatedAt      time.Time `db:"updated_at"`
			ProductName    string    `db:"product_name"`
		}
		err := tx.SelectContext(ctx, &rows,
			`SELECT m.id, m.sender_user_id, m.sender_type, m.sender_name, m.sender_email,
				m.product_id, m.subject, m.message_content, m.timestamp, m.is_read,
				m.created_at, m.updated_at, p.name AS product_name
			 FROM messages m JOIN products p ON m.product_id = p.id
			 WHERE m.product_id = $1 AND m.sender_email = ANY($2)
			 ORDER BY m.timestamp ASC`, productID, pq.Array(participantEmails))
		if err != nil {
			return err
		}

		for _, row := range rows {
			thread = append(thread, entity.ThreadMessage{
				Message: entity.Message{
					ID: row.ID, SenderUser: row.SenderUserID, SenderRole: row.SenderType,
					SenderName: row.SenderName, SenderEmail: row.SenderEmail,
					ProductID: row.ProductID, Subject: row.Subject,
					Content: row.MessageContent, IsRead: row.IsRead,
					Timestamp: row.Timestamp,
					CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
				},
				ProductName: row.ProductName,
			})
		}

		return nil
	})

	return thread
}

func (s *Store) CreateOrder(ctx context.Context, input store.OrderInput) (int64, bool) {
	var orderID int64

	ok := s.withTx(ctx, "create order", func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &orderID,
			`INSERT INTO orders (customer_name, customer_email, customer_phone,
				shipping_address, total_amount)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			input.CustomerName, input.CustomerEmail, input.CustomerPhone,
			input.ShippingAddress, input.TotalAmount)
		if err != nil {
			return err
		}

		for _, item := range input.Items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, price_per_item, total_price)
				 VALUES ($1, $2, $3, $4, $5)`,
				orderID, item.ProductID, item.Quantity, item.PricePerItem, item.TotalPrice)
			if err != nil {
				return err
			}
		}

		return nil
	})

	return orderID, ok
}

func (s *Store) ListOrders(ctx context.Context) []entity.OrderSummary {
	orders := []entity.OrderSummary{}

	s.withTx(ctx, "list orders", func(tx *sqlx.Tx) error {
		var rows []struct {
			ID              int64     `db:"id"`
			CustomerName    string    `db:"customer_name"`
			CustomerEmail   string    `db:"customer_email"`
			CustomerPhone   string    `db:"customer_phone"`
			ShippingAddress string    `db:"shipping_address"`
			TotalAmount     float64   `db:"total_amount"`
			Status          string    `db:"status"`
			CreatedAt       time.Time `db:"created_at"`
			UpdatedAt       time.Time `db:"updated_at"`
			ItemCount       int64     `db:"item_count"`
			ProductNames    *string   `db:"product_names"`
		}
		err := tx.SelectContext(ctx, &rows,
			`SELECT o.id, o.customer_name, o.customer_email, o.customer_phone,
				o.shipping_address, o.total_amount, o.status, o.created_at, o.updated_at,
				COUNT(oi.id) AS item_count,
				STRING_AGG(p.name, ',') AS product_names
			 FROM orders o
			 LEFT JOIN order_items oi ON oi.order_id = o.id
			 LEFT JOIN products p ON p.id = oi.product_id
			 GROUP BY o.id
			 ORDER BY o.created_at DESC`)
		if err != nil {
			return err
		}

		for _, row := range rows {
			var names []string
			if row.ProductNames != nil && *row.ProductNames != "" {
				names = strings.Split(*row.ProductNames, ",")
			}
			orders = append(orders, entity.OrderSummary{
				Order: entity.Order{
					ID: row.ID, CustomerName: row.CustomerName,
					CustomerEmail: row.CustomerEmail, CustomerPhone: row.CustomerPhone,
					ShippingAddress: row.ShippingAddress, TotalAmount: row.TotalAmount,
					Status:    row.Status,
					CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
				},
				ItemCount:    row.ItemCount,
				ProductNames: names,
			})
		}

		return nil
	})

	return orders
}

func (s *Store) LogEvent(ctx context.Context, event store.EventInput) bool {
	return s.withTx(ctx, "log analytics event", func(tx *sqlx.Tx) error {
		var payload []byte
		if event.Payload != nil {
			encoded, err := json.Marshal(event.Payload)
			if err != nil {
				return err
			}
			payload = encoded
		}

		session := event.UserSession
		if session == "" {
			session = "anonymous"
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO analytics (event_type, product_id, user_session, event_metadata)
			 VALUES ($1, $2, $3, $4)`,
			event.EventType, event.ProductID, session, payload)

		return err
	})
}

func (s *Store) GetAnalyticsSummary(ctx context.Context) entity.AnalyticsSummary {
	summary := entity.EmptyAnalyticsSummary()

	s.withTx(ctx, "get analytics summary", func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &summary.TotalEvents,
			"SELECT COUNT(*) FROM analytics"); err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &summary.UniqueSessions,
			"SELECT COUNT(DISTINCT user_session) FROM analytics"); err != nil {
			return err
		}

		var rows []struct {
			EventType string `db:"event_type"`
			Count     int64  `db:"count"`
		}
		err := tx.SelectContext(ctx, &rows,
			"SELECT event_type, COUNT(*) AS count FROM analytics GROUP BY event_type")
		if err != nil {
			return err
		}

		for _, row := range rows {
			summary.EventsByType[row.EventType] = row.Count
		}

		return nil
	})

	return summary
}
