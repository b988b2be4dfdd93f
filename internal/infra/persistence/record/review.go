package record

import (
	"context"
	"math"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// AddReview validates the rating before touching storage and returns
// the new identifier. Out-of-range ratings yield ErrInvalidRating.
func (s *Store) AddReview(ctx context.Context, input store.ReviewInput) (int64, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return 0, store.ErrInvalidRating
	}

	var reviewID int64

	err := s.withSessionErr(ctx, "add review", func(tx *gorm.DB) error {
		reviewM := &model.ReviewModel{
			ProductID:     input.ProductID,
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			Rating:        input.Rating,
			Comment:       input.Comment,
			Approved:      true,
		}
		if err := tx.Create(reviewM).Error; err != nil {
			return err
		}
		reviewID = reviewM.ID

		return nil
	})

	return reviewID, err
}

// GetReviews returns a product's reviews newest-first. Unapproved rows
// are hidden unless the caller asks for them.
func (s *Store) GetReviews(ctx context.Context, productID int64, includeUnapproved bool) []entity.Review {
	reviews := []entity.Review{}

	s.withSession(ctx, "get reviews", func(tx *gorm.DB) error {
		var rows []model.ReviewModel
		query := tx.Where("product_id = ?", productID)
		if !includeUnapproved {
			query = query.Where("approved = ?", true)
		}
		if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
			return err
		}

		for i := range rows {
			reviews = append(reviews, toReviewDomain(&rows[i]))
		}

		return nil
	})

	return reviews
}

// GetAverageRating aggregates a product's approved reviews on demand.
// The histogram always carries all five star buckets; the average is
// rounded to two decimals and is zero when no reviews exist.
func (s *Store) GetAverageRating(ctx context.Context, productID int64) entity.RatingSummary {
	summary := entity.RatingSummary{Histogram: entity.NewRatingHistogram()}

	s.withSession(ctx, "get average rating", func(tx *gorm.DB) error {
		var rows []struct {
			Rating int
			Count  int64
		}
		err := tx.Model(&model.ReviewModel{}).
			Select("rating, COUNT(*) AS count").
			Where("product_id = ? AND approved = ?", productID, true).
			Group("rating").
			Scan(&rows).Error
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
			average := float64(sum) / float64(summary.Total)
			summary.Average = math.Round(average*100) / 100
		}

		return nil
	})

	return summary
}

func toReviewDomain(data *model.ReviewModel) entity.Review {
	return entity.Review{
		ID:            data.ID,
		ProductID:     data.ProductID,
		CustomerName:  data.CustomerName,
		CustomerEmail: data.CustomerEmail,
		Rating:        data.Rating,
		Comment:       data.Comment,
		Approved:      data.Approved,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
