package record

import (
	"context"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// CreateOrder persists an order and its line items in one unit of work
// and returns the new identifier.
func (s *Store) CreateOrder(ctx context.Context, input store.OrderInput) (int64, bool) {
	var orderID int64

	ok := s.withSession(ctx, "create order", func(tx *gorm.DB) error {
		orderM := &model.OrderModel{
			CustomerName:    input.CustomerName,
			CustomerEmail:   input.CustomerEmail,
			CustomerPhone:   input.CustomerPhone,
			ShippingAddress: input.ShippingAddress,
			TotalAmount:     input.TotalAmount,
			Status:          "pending",
		}
		if err := tx.Create(orderM).Error; err != nil {
			return err
		}

		for _, item := range input.Items {
			itemM := &model.OrderItemModel{
				OrderID:      orderM.ID,
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				PricePerItem: item.PricePerItem,
				TotalPrice:   item.TotalPrice,
			}
			if err := tx.Create(itemM).Error; err != nil {
				return err
			}
		}
		orderID = orderM.ID

		return nil
	})

	return orderID, ok
}

// ListOrders returns orders newest-first with their item count and the
// names of the products ordered. Name collection happens in Go to stay
// portable across both backends (no ARRAY_AGG on SQLite).
func (s *Store) ListOrders(ctx context.Context) []entity.OrderSummary {
	orders := []entity.OrderSummary{}

	s.withSession(ctx, "list orders", func(tx *gorm.DB) error {
		var orderRows []model.OrderModel
		if err := tx.Order("created_at DESC").Find(&orderRows).Error; err != nil {
			return err
		}
		if len(orderRows) == 0 {
			return nil
		}

		var itemRows []struct {
			OrderID     int64
			ProductName *string
		}
		err := tx.Table("order_items").
			Select("order_items.order_id, products.name AS product_name").
			Joins("LEFT JOIN products ON order_items.product_id = products.id").
			Scan(&itemRows).Error
		if err != nil {
			return err
		}

		counts := map[int64]int64{}
		names := map[int64][]string{}
		for _, row := range itemRows {
			counts[row.OrderID]++
			if row.ProductName != nil {
				names[row.OrderID] = append(names[row.OrderID], *row.ProductName)
			}
		}

		for i := range orderRows {
			row := &orderRows[i]
			orders = append(orders, entity.OrderSummary{
				Order: entity.Order{
					ID:              row.ID,
					CustomerName:    row.CustomerName,
					CustomerEmail:   row.CustomerEmail,
					CustomerPhone:   row.CustomerPhone,
					ShippingAddress: row.ShippingAddress,
					TotalAmount:     row.TotalAmount,
					Status:          row.Status,
					CreatedAt:       row.CreatedAt,
					UpdatedAt:       row.UpdatedAt,
				},
				ItemCount:    counts[row.ID],
				ProductNames: names[row.ID],
			})
		}

		return nil
	})

	return orders
}
