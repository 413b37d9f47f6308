// services/completion.go
package services

import (
	"errors"
	"time"

	"hvactracker-backend/models"
	"hvactracker-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompleteService registers a finished service visit on a unit. This is
// the only path besides a direct edit that moves lastServiceDate.
//
// The next service date is re-derived from the service date and the
// unit's interval and tagged "derived". Units without an interval keep
// their stored next date and are flagged for manual scheduling.
func CompleteService(db *gorm.DB, unitID uuid.UUID, serviceDate string) (*models.Unit, error) {
	if serviceDate == "" {
		return nil, utils.NewValidationError("serviceDate", "is required")
	}
	date, err := utils.ParseDate(serviceDate)
	if err != nil {
		return nil, utils.NewValidationError("serviceDate", "must be a valid YYYY-MM-DD date")
	}
	if date.After(utils.BeginningOfDay(time.Now())) {
		return nil, utils.NewValidationError("serviceDate", "cannot be in the future")
	}

	var unit models.Unit
	if err := db.First(&unit, "id = ?", unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Unit")
		}
		return nil, err
	}

	unit.LastServiceDate = &date
	if next := NextServiceDate(&date, unit.ServiceIntervalDays); next != nil {
		unit.NextServiceDate = *next
		unit.NextServiceSource = models.NextServiceDerived
		unit.NeedsScheduling = false
	} else {
		// No interval to derive from; the stored date stands.
		unit.NeedsScheduling = true
	}

	if err := db.Save(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}
