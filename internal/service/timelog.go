package service

import (
	"errors"
	"fmt"
	"time"

	"go-trading-backend/internal/models"

	"gorm.io/gorm"
)

// ClockIn opens a new time log for the user. A user can only hold one open
// session at a time; the check and the insert run in one transaction.
func ClockIn(db *gorm.DB, userID uint, notes string) (*models.TimeLog, error) {
	var entry models.TimeLog

	err := db.Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&models.TimeLog{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrAlreadyClockedIn
		}

		entry = models.TimeLog{
			UserID:   userID,
			TimeIn:   time.Now(),
			IsActive: true,
			Notes:    notes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create time log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// ClockOut closes the user's open time log and returns it with the session
// duration filled in. Closing is one-way.
func ClockOut(db *gorm.DB, userID uint) (*models.TimeLog, error) {
	var entry models.TimeLog

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND is_active = ?", userID, true).
			Order("time_in DESC").
			First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveSession
			}
			return err
		}

		now := time.Now()
		entry.TimeOut = &now
		entry.IsActive = false
		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("failed to close time log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry.DurationHours = entry.ComputeDurationHours()
	return &entry, nil
}
