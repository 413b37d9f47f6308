package controllers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"hvactracker-backend/config"
	"hvactracker-backend/models"
	"hvactracker-backend/services"
	"hvactracker-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUnitInput defines the expected JSON structure for creating a unit
type CreateUnitInput struct {
	CustomerID          string  `json:"customerId" binding:"required"`
	DisplayName         string  `json:"displayName" binding:"required"`
	Type                string  `json:"type" binding:"required"`
	ServiceIntervalDays *int    `json:"serviceIntervalDays"`
	LastServiceDate     *string `json:"lastServiceDate"`
	NextServiceDate     string  `json:"nextServiceDate" binding:"required"`
}

// UpdateUnitInput defines the expected JSON structure for updating a unit
type UpdateUnitInput struct {
	DisplayName         *string `json:"displayName"`
	Type                *string `json:"type"`
	ServiceIntervalDays *int    `json:"serviceIntervalDays"`
	LastServiceDate     *string `json:"lastServiceDate"`
	NextServiceDate     *string `json:"nextServiceDate"`
}

// ServiceCompletionInput carries the date a technician finished a visit
type ServiceCompletionInput struct {
	ServiceDate string `json:"serviceDate" binding:"required"`
}

// UnitWithStatus decorates a unit with its due classification so list
// consumers can render badges without redoing the date math.
type UnitWithStatus struct {
	models.Unit
	Bucket        string `json:"bucket"`
	DaysRemaining int    `json:"daysRemaining"`
}

// CreateUnit creates a new unit for a customer
func CreateUnit(c *gin.Context) {
	var input CreateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	if !models.ValidUnitType(input.Type) {
		utils.RespondWithError(c, http.StatusBadRequest, "Type must be one of AC, Heater, Machine, Generator")
		return
	}
	if input.ServiceIntervalDays != nil && *input.ServiceIntervalDays <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Service interval must be a positive number of days")
		return
	}

	nextDate, err := utils.ParseDate(input.NextServiceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "nextServiceDate must be a valid YYYY-MM-DD date")
		return
	}
	var lastDate *time.Time
	if input.LastServiceDate != nil && *input.LastServiceDate != "" {
		parsed, err := utils.ParseDate(*input.LastServiceDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "lastServiceDate must be a valid YYYY-MM-DD date")
			return
		}
		if parsed.After(utils.BeginningOfDay(time.Now())) {
			utils.RespondWithError(c, http.StatusBadRequest, "lastServiceDate cannot be in the future")
			return
		}
		lastDate = &parsed
	}

	// The owning customer must exist
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	unit := models.Unit{
		CustomerID:          customerUUID,
		DisplayName:         input.DisplayName,
		Type:                input.Type,
		ServiceIntervalDays: input.ServiceIntervalDays,
		LastServiceDate:     lastDate,
		NextServiceDate:     nextDate,
		NextServiceSource:   models.NextServiceExplicit,
	}

	if err := config.DB.Create(&unit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create unit")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, unit)
}

// GetUnits retrieves all units
func GetUnits(c *gin.Context) {
	var units []models.Unit
	if err := config.DB.Find(&units).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve units")
		return
	}

	utils.RespondWithData(c, http.StatusOK, units)
}

// GetUnit retrieves a specific unit by ID
func GetUnit(c *gin.Context) {
	unitUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid unit ID format")
		return
	}

	var unit models.Unit
	if err := config.DB.First(&unit, "id = ?", unitUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Unit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, unit)
}

// GetUnitsByCustomer retrieves all units owned by one customer
func GetUnitsByCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var units []models.Unit
	if err := config.DB.Where("customer_id = ?", customerUUID).Find(&units).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve units")
		return
	}

	utils.RespondWithData(c, http.StatusOK, units)
}

// GetUnitsDue lists units inside a due window: today, week or month.
// Every window also contains the overdue units, so the three listings
// overlap and their counts must not be summed.
func GetUnitsDue(c *gin.Context) {
	windowDays := services.WindowDaysForFilter(c.DefaultQuery("filter", "week"))

	now := time.Now()
	cutoff := utils.BeginningOfDay(now).AddDate(0, 0, windowDays+1)

	var units []models.Unit
	if err := config.DB.Where("next_service_date < ?", cutoff).Find(&units).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve units")
		return
	}

	decorated := make([]UnitWithStatus, 0, len(units))
	for _, unit := range units {
		bucket, days := services.ClassifyDue(unit.NextServiceDate, now)
		decorated = append(decorated, UnitWithStatus{Unit: unit, Bucket: bucket, DaysRemaining: days})
	}

	// Most overdue first, then closest due date
	sort.SliceStable(decorated, func(i, j int) bool {
		return decorated[i].DaysRemaining < decorated[j].DaysRemaining
	})

	utils.RespondWithData(c, http.StatusOK, decorated)
}

// UpdateUnit updates an existing unit
func UpdateUnit(c *gin.Context) {
	unitUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid unit ID format")
		return
	}

	var input UpdateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var unit models.Unit
	if err := config.DB.First(&unit, "id = ?", unitUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Unit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	recurrenceChanged := false

	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Display name cannot be empty")
			return
		}
		unit.DisplayName = *input.DisplayName
	}
	if input.Type != nil {
		if !models.ValidUnitType(*input.Type) {
			utils.RespondWithError(c, http.StatusBadRequest, "Type must be one of AC, Heater, Machine, Generator")
			return
		}
		unit.Type = *input.Type
	}
	if input.ServiceIntervalDays != nil {
		if *input.ServiceIntervalDays <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Service interval must be a positive number of days")
			return
		}
		unit.ServiceIntervalDays = input.ServiceIntervalDays
		recurrenceChanged = true
	}
	if input.LastServiceDate != nil && *input.LastServiceDate != "" {
		parsed, err := utils.ParseDate(*input.LastServiceDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "lastServiceDate must be a valid YYYY-MM-DD date")
			return
		}
		if parsed.After(utils.BeginningOfDay(time.Now())) {
			utils.RespondWithError(c, http.StatusBadRequest, "lastServiceDate cannot be in the future")
			return
		}
		unit.LastServiceDate = &parsed
		recurrenceChanged = true
	}

	if input.NextServiceDate != nil && *input.NextServiceDate != "" {
		// An explicit date always wins over the computed recurrence.
		parsed, err := utils.ParseDate(*input.NextServiceDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "nextServiceDate must be a valid YYYY-MM-DD date")
			return
		}
		unit.NextServiceDate = parsed
		unit.NextServiceSource = models.NextServiceExplicit
		unit.NeedsScheduling = false
	} else if recurrenceChanged && unit.NextServiceSource == models.NextServiceDerived {
		// Only derived dates get recomputed when their inputs move.
		if next := services.NextServiceDate(unit.LastServiceDate, unit.ServiceIntervalDays); next != nil {
			unit.NextServiceDate = *next
			unit.NeedsScheduling = false
		}
	}

	if err := config.DB.Save(&unit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update unit")
		return
	}

	utils.RespondWithData(c, http.StatusOK, unit)
}

// DeleteUnit soft deletes a unit
func DeleteUnit(c *gin.Context) {
	unitUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid unit ID format")
		return
	}

	result := config.DB.Where("id = ?", unitUUID).Delete(&models.Unit{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete unit")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Unit not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Unit deleted successfully"})
}

// RegisterServiceCompletion records a finished service visit on a unit
func RegisterServiceCompletion(c *gin.Context) {
	unitUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid unit ID format")
		return
	}

	var input ServiceCompletionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	unit, err := services.CompleteService(config.DB, unitUUID, input.ServiceDate)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithData(c, http.StatusOK, unit)
}
