package store

// Typed write payloads. Each update struct is the allow-list of mutable
// columns for its entity: identifiers and creation timestamps have no
// field here, so callers cannot overwrite them.

// ProductInput carries the fields accepted when creating a product.
// Counters and quantity default to zero.
type ProductInput struct {
	Name           string
	Category       string
	Price          float64
	Description    string
	Materials      string
	Dimensions     string
	Weight         float64
	StockQuantity  int
	ShippingCost   float64
	ProcessingTime string
	Tags           string
	ImageData      string
}

// ProductUpdate is a partial update: nil fields stay untouched.
type ProductUpdate struct {
	Name           *string
	Category       *string
	Price          *float64
	Description    *string
	Materials      *string
	Dimensions     *string
	Weight         *float64
	StockQuantity  *int
	ShippingCost   *float64
	ProcessingTime *string
	Tags           *string
	ImageData      *string
}

// Changes flattens the set fields into column/value pairs.
func (u ProductUpdate) Changes() map[string]any {
	changes := map[string]any{}
	putIf(changes, "name", u.Name)
	putIf(changes, "category", u.Category)
	putIf(changes, "price", u.Price)
	putIf(changes, "description", u.Description)
	putIf(changes, "materials", u.Materials)
	putIf(changes, "dimensions", u.Dimensions)
	putIf(changes, "weight", u.Weight)
	putIf(changes, "stock_quantity", u.StockQuantity)
	putIf(changes, "shipping_cost", u.ShippingCost)
	putIf(changes, "processing_time", u.ProcessingTime)
	putIf(changes, "tags", u.Tags)
	putIf(changes, "image_data", u.ImageData)

	return changes
}

// ProfileInput carries the fields accepted when creating a profile.
type ProfileInput struct {
	Name            string
	Location        string
	Specialties     string
	YearsExperience int
	Bio             string
	Email           string
	Phone           string
	Website         string
	Instagram       string
	Facebook        string
	Etsy            string
	Education       string
	Awards          string
	Inspiration     string
	ProfileImage    string
}

// ProfileUpdate is a partial update: nil fields stay untouched.
type ProfileUpdate struct {
	Name            *string
	Location        *string
	Specialties     *string
	YearsExperience *int
	Bio             *string
	Email           *string
	Phone           *string
	Website         *string
	Instagram       *string
	Facebook        *string
	Etsy            *string
	Education       *string
	Awards          *string
	Inspiration     *string
	ProfileImage    *string
}

// Changes flattens the set fields into column/value pairs.
func (u ProfileUpdate) Changes() map[string]any {
	changes := map[string]any{}
	putIf(changes, "name", u.Name)
	putIf(changes, "location", u.Location)
	putIf(changes, "specialties", u.Specialties)
	putIf(changes, "years_experience", u.YearsExperience)
	putIf(changes, "bio", u.Bio)
	putIf(changes, "email", u.Email)
	putIf(changes, "phone", u.Phone)
	putIf(changes, "website", u.Website)
	putIf(changes, "instagram", u.Instagram)
	putIf(changes, "facebook", u.Facebook)
	putIf(changes, "etsy", u.Etsy)
	putIf(changes, "education", u.Education)
	putIf(changes, "awards", u.Awards)
	putIf(changes, "inspiration", u.Inspiration)
	putIf(changes, "profile_image", u.ProfileImage)

	return changes
}

// OAuthUserInput is the normalized identity-provider profile used by the
// CreateUser upsert.
type OAuthUserInput struct {
	OAuthProvider string
	OAuthID       string
	Email         string
	Name          string
	AvatarURL     string
	ProfileData   map[string]any
}

// ReviewInput carries a new customer review.
type ReviewInput struct {
	ProductID     int64
	CustomerName  string
	CustomerEmail string
	Rating        int
	Comment       string
}

// MessageInput carries a new buyer/seller message.
type MessageInput struct {
	SenderUserID *int64
	SenderRole   string
	SenderName   string
	SenderEmail  string
	ProductID    *int64
	Subject      string
	Content      string
}

// OrderInput carries a new order with its line items, persisted in one
// unit of work.
type OrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	TotalAmount     float64
	Items           []OrderItemInput
}

// OrderItemInput is one product line on a new order.
type OrderItemInput struct {
	ProductID    *int64
	Quantity     int
	PricePerItem float64
	TotalPrice   float64
}

// EventInput is one analytics event.
type EventInput struct {
	EventType   string
	ProductID   *int64
	UserSession string
	Payload     map[string]any
}

func putIf[T any](changes map[string]any, column string, value *T) {
	if value != nil {
		changes[column] = *value
	}
}
