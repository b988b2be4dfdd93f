package record

import (
	"context"
	"time"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// ListProfiles returns artisan profiles newest-first.
func (s *Store) ListProfiles(ctx context.Context) []entity.Profile {
	profiles := []entity.Profile{}

	s.withSession(ctx, "list profiles", func(tx *gorm.DB) error {
		var rows []model.ProfileModel
		if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
			return err
		}

		for i := range rows {
			profiles = append(profiles, toProfileDomain(&rows[i]))
		}

		return nil
	})

	return profiles
}

// AddProfile inserts a new artisan profile. Duplicates per user are
// allowed; the store does not enforce the UI's one-profile assumption.
func (s *Store) AddProfile(ctx context.Context, input store.ProfileInput, userID *int64) bool {
	return s.withSession(ctx, "add profile", func(tx *gorm.DB) error {
		profileM := &model.ProfileModel{
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
		}

		return tx.Create(profileM).Error
	})
}

// UpdateProfile applies the supplied fields only; false when the id does
// not exist or nothing was supplied.
func (s *Store) UpdateProfile(ctx context.Context, id int64, update store.ProfileUpdate) bool {
	changes := update.Changes()
	if len(changes) == 0 {
		return false
	}

	found := false

	ok := s.withSession(ctx, "update profile", func(tx *gorm.DB) error {
		changes["updated_at"] = time.Now()

		result := tx.Model(&model.ProfileModel{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0

		return nil
	})

	return ok && found
}

func toProfileDomain(data *model.ProfileModel) entity.Profile {
	return entity.Profile{
		ID:              data.ID,
		UserID:          data.UserID,
		Name:            data.Name,
		Location:        data.Location,
		Specialties:     data.Specialties,
		YearsExperience: data.YearsExperience,
		Bio:             data.Bio,
		Email:           data.Email,
		Phone:           data.Phone,
		Website:         data.Website,
		Instagram:       data.Instagram,
		Facebook:        data.Facebook,
		Etsy:            data.Etsy,
		Education:       data.Education,
		Awards:          data.Awards,
		Inspiration:     data.Inspiration,
		ProfileImage:    data.ProfileImage,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
