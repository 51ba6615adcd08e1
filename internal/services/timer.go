package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/diewo77/go-freelance/internal/models"
	"gorm.io/gorm"
)

// TimerService manages time entries and the single running timer.
//
// At most one entry per user may have a nil EndedAt. The storage layer has
// no constraint for this, so Start checks inside the creating transaction.
type TimerService struct {
	db *gorm.DB
}

func NewTimerService(db *gorm.DB) *TimerService {
	return &TimerService{db: db}
}

// Running returns the user's running entry, or nil when no timer is open.
func (s *TimerService) Running(ctx context.Context, userID uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND ended_at IS NULL", userID).
		Order("started_at DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Start opens a new running entry. It fails with ErrTimerRunning when the
// user already has one.
func (s *TimerService) Start(ctx context.Context, entry *models.TimeEntry, now time.Time) error {
	entry.StartedAt = now
	entry.EndedAt = nil
	entry.DurationMinutes = nil

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var running int64
		if err := tx.Model(&models.TimeEntry{}).
			Where("user_id = ? AND ended_at IS NULL", entry.UserID).
			Count(&running).Error; err != nil {
			return err
		}
		if running > 0 {
			return ErrTimerRunning
		}
		return tx.Create(entry).Error
	})
}

// Stop closes a running entry at endedAt and derives its duration in
// minutes, rounded to the nearest minute.
func (s *TimerService) Stop(ctx context.Context, userID, entryID uint, endedAt time.Time) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
			return err
		}
		if !entry.IsRunning() {
			return ErrTimerNotRunning
		}
		minutes := int(math.Round(endedAt.Sub(entry.StartedAt).Minutes()))
		entry.EndedAt = &endedAt
		entry.DurationMinutes = &minutes
		return tx.Model(&models.TimeEntry{}).Where("id = ?", entry.ID).
			Updates(map[string]any{
				"ended_at":         endedAt,
				"duration_minutes": minutes,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
