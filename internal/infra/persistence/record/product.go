package record

import (
	"context"
	"time"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// ListProducts returns listings newest-first, optionally filtered to one
// owner. Always a non-nil slice so consumers can range without checks.
func (s *Store) ListProducts(ctx context.Context, userID *int64) []entity.Product {
	products := []entity.Product{}

	s.withSession(ctx, "list products", func(tx *gorm.DB) error {
		var rows []model.ProductModel
		query := tx.Model(&model.ProductModel{})
		if userID != nil {
			query = query.Where("user_id = ?", *userID)
		}
		if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
			return err
		}

		for i := range rows {
			products = append(products, toProductDomain(&rows[i]))
		}

		return nil
	})

	return products
}

// AddProduct inserts a new listing. Unset counters and quantity default
// to zero at the schema level.
func (s *Store) AddProduct(ctx context.Context, input store.ProductInput, userID *int64) bool {
	return s.withSession(ctx, "add product", func(tx *gorm.DB) error {
		productM := &model.ProductModel{
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
		}

		return tx.Create(productM).Error
	})
}

// UpdateProduct applies the supplied fields only. The identifier and
// creation timestamp are not in the allow-list and cannot change.
// Returns false when the id does not exist or nothing was supplied.
func (s *Store) UpdateProduct(ctx context.Context, id int64, update store.ProductUpdate) bool {
	changes := update.Changes()
	if len(changes) == 0 {
		return false
	}

	found := false

	ok := s.withSession(ctx, "update product", func(tx *gorm.DB) error {
		changes["updated_at"] = time.Now()

		result := tx.Model(&model.ProductModel{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0

		return nil
	})

	return ok && found
}

// DeleteProduct removes a listing. Reviews and messages go with it via
// the schema-level cascade.
func (s *Store) DeleteProduct(ctx context.Context, id int64) bool {
	found := false

	ok := s.withSession(ctx, "delete product", func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.ProductModel{})
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0

		return nil
	})

	return ok && found
}

// IncrementViews bumps the view counter by one. The increment happens in
// SQL, so concurrent callers rely on the engine's row locking rather
// than any application-level lock.
func (s *Store) IncrementViews(ctx context.Context, id int64) bool {
	return s.incrementCounter(ctx, "increment views", id, "views")
}

// IncrementFavorites bumps the favorite counter by one.
func (s *Store) IncrementFavorites(ctx context.Context, id int64) bool {
	return s.incrementCounter(ctx, "increment favorites", id, "favorites")
}

func (s *Store) incrementCounter(ctx context.Context, op string, id int64, column string) bool {
	found := false

	ok := s.withSession(ctx, op, func(tx *gorm.DB) error {
		result := tx.Model(&model.ProductModel{}).Where("id = ?", id).UpdateColumns(map[string]any{
			column:       gorm.Expr(column+" + 1"),
			"updated_at": time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0

		return nil
	})

	return ok && found
}

func toProductDomain(data *model.ProductModel) entity.Product {
	return entity.Product{
		ID:             data.ID,
		UserID:         data.UserID,
		Name:           data.Name,
		Category:       data.Category,
		Price:          data.Price,
		Description:    data.Description,
		Materials:      data.Materials,
		Dimensions:     data.Dimensions,
		Weight:         data.Weight,
		StockQuantity:  data.StockQuantity,
		ShippingCost:   data.ShippingCost,
		ProcessingTime: data.ProcessingTime,
		Tags:           data.Tags,
		ImageData:      data.ImageData,
		Views:          data.Views,
		Favorites:      data.Favorites,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
