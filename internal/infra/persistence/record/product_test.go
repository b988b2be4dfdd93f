package record

import (
	"context"
	"sync"
	"testing"
	"time"

	"truecraft/internal/domain/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func TestStore_AddProduct_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok := s.AddProduct(ctx, store.ProductInput{
		Name:     "Handmade Ceramic Mug",
		Category: "Pottery",
		Price:    25.00,
	}, nil)
	require.True(t, ok)

	products := s.ListProducts(ctx, nil)
	require.Len(t, products, 1)
	assert.Equal(t, "Handmade Ceramic Mug", products[0].Name)
	assert.Equal(t, "Pottery", products[0].Category)
	assert.Equal(t, 25.00, products[0].Price)
	assert.Zero(t, products[0].Views)
	assert.Zero(t, products[0].Favorites)
	assert.Zero(t, products[0].StockQuantity)
}

func TestStore_ListProducts_NewestFirstAndOwnerFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ownerID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "google", OAuthID: "owner-1", Name: "Ana",
	})
	require.True(t, ok)

	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "First"}, &ownerID))
	time.Sleep(5 * time.Millisecond)
	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "Second"}, nil))

	all := s.ListProducts(ctx, nil)
	require.Len(t, all, 2)
	assert.Equal(t, "Second", all[0].Name)
	assert.Equal(t, "First", all[1].Name)

	owned := s.ListProducts(ctx, &ownerID)
	require.Len(t, owned, 1)
	assert.Equal(t, "First", owned[0].Name)
}

func TestStore_UpdateProduct_AppliesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.AddProduct(ctx, store.ProductInput{
		Name:     "Woven Basket",
		Category: "Fiber Arts",
		Price:    40.00,
	}, nil))
	id := s.ListProducts(ctx, nil)[0].ID

	ok := s.UpdateProduct(ctx, id, store.ProductUpdate{
		Price: f64Ptr(45.50),
		Tags:  strPtr("handwoven, natural"),
	})
	require.True(t, ok)

	got := s.ListProducts(ctx, nil)[0]
	assert.Equal(t, "Woven Basket", got.Name)
	assert.Equal(t, "Fiber Arts", got.Category)
	assert.Equal(t, 45.50, got.Price)
	assert.Equal(t, "handwoven, natural", got.Tags)
}

func TestStore_UpdateProduct_MissingIDReportsFalse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	assert.False(t, s.UpdateProduct(ctx, 9999, store.ProductUpdate{Name: strPtr("Ghost")}))
}

func TestStore_IncrementViews_AccumulatesPerCall(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "Vase"}, nil))
	id := s.ListProducts(ctx, nil)[0].ID

	for range 3 {
		require.True(t, s.IncrementViews(ctx, id))
	}
	require.True(t, s.IncrementFavorites(ctx, id))

	got := s.ListProducts(ctx, nil)[0]
	assert.Equal(t, 3, got.Views)
	assert.Equal(t, 1, got.Favorites)
}

func TestStore_IncrementViews_ConcurrentCallersLoseNoUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "Bowl"}, nil))
	id := s.ListProducts(ctx, nil)[0].ID

	const callers = 20
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, s.IncrementViews(ctx, id))
		}()
	}
	wg.Wait()

	assert.Equal(t, callers, s.ListProducts(ctx, nil)[0].Views)
}

func TestStore_UpdateProduct_EmptyUpdateReportsFalse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "Vase", Price: 30}, nil))
	id := s.ListProducts(ctx, nil)[0].ID

	assert.False(t, s.UpdateProduct(ctx, id, store.ProductUpdate{}))
	assert.False(t, s.UpdateProfile(ctx, id, store.ProfileUpdate{}))

	got := s.ListProducts(ctx, nil)[0]
	assert.Equal(t, "Vase", got.Name)
	assert.Equal(t, 30.0, got.Price)
}

func TestStore_IncrementViews_MissingIDReportsFalse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	assert.False(t, s.IncrementViews(ctx, 42))
}

func TestStore_DeleteProduct_CascadesToReviewsAndMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "Scarf"}, nil))
	id := s.ListProducts(ctx, nil)[0].ID

	_, err := s.AddReview(ctx, store.ReviewInput{
		ProductID: id, CustomerName: "Bo", CustomerEmail: "bo@example.com", Rating: 5,
	})
	require.NoError(t, err)

	_, err = s.SendMessage(ctx, store.MessageInput{
		SenderRole: "buyer", SenderName: "Bo", SenderEmail: "bo@example.com",
		ProductID: &id, Subject: "Shipping?", Content: "When does it ship?",
	})
	require.NoError(t, err)

	require.True(t, s.DeleteProduct(ctx, id))

	assert.Empty(t, s.ListProducts(ctx, nil))
	assert.Empty(t, s.GetReviews(ctx, id, true))
	assert.Zero(t, s.GetUnreadMessageCount(ctx, ""))
}

func TestStore_DeleteProduct_MissingIDReportsFalse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	assert.False(t, s.DeleteProduct(ctx, 42))
}

func TestStore_AddProfile_RoundTripAndPartialUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.AddProfile(ctx, store.ProfileInput{
		Name:            "Ana Torres",
		Location:        "Santa Fe, NM",
		Specialties:     "Pottery, Ceramics",
		YearsExperience: 12,
		Email:           "ana@example.com",
	}, nil))

	profiles := s.ListProfiles(ctx)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Ana Torres", profiles[0].Name)
	assert.Equal(t, 12, profiles[0].YearsExperience)

	ok := s.UpdateProfile(ctx, profiles[0].ID, store.ProfileUpdate{
		Bio: strPtr("Third-generation potter."),
	})
	require.True(t, ok)

	got := s.ListProfiles(ctx)[0]
	assert.Equal(t, "Ana Torres", got.Name)
	assert.Equal(t, "Santa Fe, NM", got.Location)
	assert.Equal(t, "Third-generation potter.", got.Bio)
}

func TestStore_UpdateProfile_MissingIDReportsFalse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	assert.False(t, s.UpdateProfile(ctx, 7, store.ProfileUpdate{Name: strPtr("Nobody")}))
}
