package record

import (
	"context"
	"encoding/json"
	"time"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateUser upserts an identity-provider profile keyed on
// (oauth_provider, oauth_id). Lookup and write share one transaction,
// and the composite unique index turns a duplicate-insert race into a
// failed transaction instead of a second row.
func (s *Store) CreateUser(ctx context.Context, input store.OAuthUserInput) (int64, bool) {
	var userID int64

	ok := s.withSession(ctx, "create user", func(tx *gorm.DB) error {
		payload, err := marshalPayload(input.ProfileData)
		if err != nil {
			return err
		}

		now := time.Now()

		var userM model.UserModel
		err = tx.Where("oauth_provider = ? AND oauth_id = ?", input.OAuthProvider, input.OAuthID).
			First(&userM).Error
		switch {
		case err == nil:
			changes := map[string]any{
				"name":       input.Name,
				"avatar_url": input.AvatarURL,
				"last_login": now,
				"updated_at": now,
			}
			if input.Email != "" {
				changes["email"] = input.Email
			}
			if payload != nil {
				changes["profile_data"] = payload
			}
			if err := tx.Model(&userM).Updates(changes).Error; err != nil {
				return err
			}
			userID = userM.ID

			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			userM = model.UserModel{
				OAuthProvider: input.OAuthProvider,
				OAuthID:       input.OAuthID,
				Email:         nullableEmail(input.Email),
				Name:          input.Name,
				AvatarURL:     input.AvatarURL,
				ProfileData:   payload,
				LastLogin:     now,
			}
			if err := tx.Create(&userM).Error; err != nil {
				return err
			}
			userID = userM.ID

			return nil
		default:
			return err
		}
	})

	return userID, ok
}

// GetUserByID returns the full record, or (nil, false) for a missing id.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*entity.User, bool) {
	var user *entity.User

	s.withSession(ctx, "get user by id", func(tx *gorm.DB) error {
		var userM model.UserModel
		if err := tx.Where("id = ?", id).First(&userM).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Missing id is a result, not a failure.
				return nil
			}

			return err
		}
		user = toUserDomain(&userM)

		return nil
	})

	return user, user != nil
}

func toUserDomain(data *model.UserModel) *entity.User {
	email := ""
	if data.Email != nil {
		email = *data.Email
	}

	var payload map[string]any
	if len(data.ProfileData) > 0 {
		// Undecodable payloads degrade to nil rather than failing a read.
		_ = json.Unmarshal(data.ProfileData, &payload)
	}

	return &entity.User{
		ID:            data.ID,
		OAuthProvider: data.OAuthProvider,
		OAuthID:       data.OAuthID,
		Email:         email,
		Name:          data.Name,
		AvatarURL:     data.AvatarURL,
		ProfileData:   payload,
		LastLogin:     data.LastLogin,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func marshalPayload(payload map[string]any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode profile payload")
	}

	return data, nil
}

func nullableEmail(email string) *string {
	if email == "" {
		return nil
	}

	return &email
}
