// Package model declares the persisted table shapes. Column types stay
// portable across both backends: generic JSON instead of jsonb, numeric
// for money, and no reserved words as column names (the analytics
// payload column is event_metadata, not metadata).
package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. The (oauth_provider, oauth_id)
// pair is the identity key; email is unique but nullable because not
// every provider supplies one.
type UserModel struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	OAuthProvider string  `gorm:"column:oauth_provider;type:varchar(50);not null;uniqueIndex:uq_users_oauth"`
	OAuthID       string  `gorm:"column:oauth_id;type:varchar(255);not null;uniqueIndex:uq_users_oauth"`
	Email         *string `gorm:"type:varchar(255);unique"`
	Name          string  `gorm:"type:varchar(255);not null"`
	AvatarURL     string  `gorm:"column:avatar_url;type:text"`
	ProfileData   datatypes.JSON
	LastLogin     time.Time `gorm:"autoCreateTime"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Products []ProductModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Profiles []ProfileModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProductModel mirrors the 'products' table. Deleting a product
// cascades to its reviews and messages at the schema level.
type ProductModel struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	UserID         *int64  `gorm:"index"`
	Name           string  `gorm:"type:varchar(255);not null"`
	Category       string  `gorm:"type:varchar(100);not null"`
	Price          float64 `gorm:"type:numeric(10,2);not null"`
	Description    string  `gorm:"type:text"`
	Materials      string  `gorm:"type:text"`
	Dimensions     string  `gorm:"type:varchar(255)"`
	Weight         float64 `gorm:"type:numeric(6,2)"`
	StockQuantity  int     `gorm:"default:0"`
	ShippingCost   float64 `gorm:"type:numeric(8,2);default:0"`
	ProcessingTime string  `gorm:"type:varchar(100)"`
	Tags           string  `gorm:"type:text"`
	ImageData      string  `gorm:"column:image_data;type:text"`
	Views          int     `gorm:"default:0"`
	Favorites      int     `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Reviews  []ReviewModel  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Messages []MessageModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProfileModel mirrors the 'profiles' table. No uniqueness constraint on
// user_id: one-profile-per-user is a UI assumption, not a schema rule.
type ProfileModel struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	UserID          *int64 `gorm:"index"`
	Name            string `gorm:"type:varchar(255);not null"`
	Location        string `gorm:"type:varchar(255)"`
	Specialties     string `gorm:"type:text"`
	YearsExperience int
	Bio             string `gorm:"type:text"`
	Email           string `gorm:"type:varchar(255)"`
	Phone           string `gorm:"type:varchar(50)"`
	Website         string `gorm:"type:varchar(255)"`
	Instagram       string `gorm:"type:varchar(255)"`
	Facebook        string `gorm:"type:varchar(255)"`
	Etsy            string `gorm:"type:varchar(255)"`
	Education       string `gorm:"type:text"`
	Awards          string `gorm:"type:text"`
	Inspiration     string `gorm:"type:text"`
	ProfileImage    string `gorm:"column:profile_image;type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	ProductID     int64  `gorm:"not null;index"`
	CustomerName  string `gorm:"type:varchar(255);not null"`
	CustomerEmail string `gorm:"type:varchar(255);not null"`
	Rating        int    `gorm:"not null"`
	Comment       string `gorm:"type:text"`
	Approved      bool   `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// MessageModel mirrors the 'messages' table. A null product_id marks a
// general/support message outside any product conversation.
type MessageModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	SenderUserID   *int64    `gorm:"column:sender_user_id"`
	SenderType     string    `gorm:"column:sender_type;type:varchar(10);not null"`
	SenderName     string    `gorm:"type:varchar(255);not null"`
	SenderEmail    string    `gorm:"type:varchar(255);not null;index"`
	ProductID      *int64    `gorm:"index"`
	Subject        string    `gorm:"type:varchar(500);not null"`
	MessageContent string    `gorm:"column:message_content;type:text;not null"`
	Timestamp      time.Time `gorm:"autoCreateTime"`
	IsRead         bool      `gorm:"column:is_read;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Sender *UserModel `gorm:"foreignKey:SenderUserID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}

// AnalyticsModel mirrors the 'analytics' table. The payload column is
// event_metadata because "metadata" is reserved in some engines.
type AnalyticsModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	EventType     string `gorm:"column:event_type;type:varchar(100);not null"`
	ProductID     *int64
	UserSession   string         `gorm:"column:user_session;type:varchar(255)"`
	EventMetadata datatypes.JSON `gorm:"column:event_metadata"`
	Timestamp     time.Time      `gorm:"autoCreateTime"`

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AnalyticsModel) TableName() string {
	return "analytics"
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	CustomerName    string  `gorm:"type:varchar(255);not null"`
	CustomerEmail   string  `gorm:"type:varchar(255);not null"`
	CustomerPhone   string  `gorm:"type:varchar(50)"`
	ShippingAddress string  `gorm:"type:text"`
	TotalAmount     float64 `gorm:"type:numeric(10,2);not null"`
	Status          string  `gorm:"type:varchar(50);default:pending"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. product_id is SET NULL
// on product delete so past orders survive catalog changes.
type OrderItemModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	OrderID      int64  `gorm:"not null;index"`
	ProductID    *int64 `gorm:"index"`
	Quantity     int    `gorm:"not null"`
	PricePerItem float64 `gorm:"column:price_per_item;type:numeric(10,2);not null"`
	TotalPrice   float64 `gorm:"column:total_price;type:numeric(10,2);not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
