package record

import (
	"context"
	"encoding/json"

	"truecraft/internal/domain/entity"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// LogEvent records one behavioral event. Best-effort by contract: a
// failure is logged and swallowed, never surfaced to the caller.
func (s *Store) LogEvent(ctx context.Context, event store.EventInput) bool {
	return s.withSession(ctx, "log analytics event", func(tx *gorm.DB) error {
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

		eventM := &model.AnalyticsModel{
			EventType:     event.EventType,
			ProductID:     event.ProductID,
			UserSession:   session,
			EventMetadata: payload,
		}

		return tx.Create(eventM).Error
	})
}

// GetAnalyticsSummary reports total events, distinct sessions and
// per-type counts over the whole event log.
func (s *Store) GetAnalyticsSummary(ctx context.Context) entity.AnalyticsSummary {
	summary := entity.EmptyAnalyticsSummary()

	s.withSession(ctx, "get analytics summary", func(tx *gorm.DB) error {
		if err := tx.Model(&model.AnalyticsModel{}).Count(&summary.TotalEvents).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.AnalyticsModel{}).
			Distinct("user_session").
			Count(&summary.UniqueSessions).Error; err != nil {
			return err
		}

		var rows []struct {
			EventType string
			Count     int64
		}
		err := tx.Model(&model.AnalyticsModel{}).
			Select("event_type, COUNT(*) AS count").
			Group("event_type").
			Scan(&rows).Error
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
