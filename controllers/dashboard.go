package controllers

import (
	"net/http"
	"sort"
	"time"

	"hvactracker-backend/config"
	"hvactracker-backend/models"
	"hvactracker-backend/services"
	"hvactracker-backend/utils"

	"github.com/gin-gonic/gin"
)

type DueUnitSummary struct {
	UnitID        string `json:"unitId"`
	DisplayName   string `json:"displayName"`
	Type          string `json:"type"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	NextService   string `json:"nextServiceDate"`
	Bucket        string `json:"bucket"`
	DaysRemaining int    `json:"daysRemaining"`
}

// GetDashboardOverview returns the landing-page numbers: totals, the
// due-window counts and the most urgent units. The today/week/month
// counts overlap on purpose (each window contains the overdue units),
// so they are reported side by side, never summed.
func GetDashboardOverview(c *gin.Context) {
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)

	var totalUnits int64
	config.DB.Model(&models.Unit{}).Count(&totalUnits)

	var needsScheduling int64
	config.DB.Model(&models.Unit{}).Where("needs_scheduling = ?", true).Count(&needsScheduling)

	now := time.Now()
	monthCutoff := utils.BeginningOfDay(now).AddDate(0, 0, services.WindowMonth+1)

	// One fetch covers the widest window; the narrower counts are
	// derived from the classification.
	var units []models.Unit
	if err := config.DB.Where("next_service_date < ?", monthCutoff).Find(&units).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve units")
		return
	}

	var overdue, dueToday, dueWeek, dueMonth int
	summaries := make([]DueUnitSummary, 0, len(units))
	customerIDs := make([]string, 0, len(units))
	for _, unit := range units {
		bucket, days := services.ClassifyDue(unit.NextServiceDate, now)
		if bucket == services.BucketOverdue {
			overdue++
		}
		if services.WithinWindow(days, services.WindowToday) {
			dueToday++
		}
		if services.WithinWindow(days, services.WindowWeek) {
			dueWeek++
		}
		if services.WithinWindow(days, services.WindowMonth) {
			dueMonth++
		}

		summaries = append(summaries, DueUnitSummary{
			UnitID:        unit.ID.String(),
			DisplayName:   unit.DisplayName,
			Type:          unit.Type,
			NextService:   utils.FormatDate(unit.NextServiceDate),
			Bucket:        bucket,
			DaysRemaining: days,
		})
		customerIDs = append(customerIDs, unit.CustomerID.String())
	}

	// Most overdue first
	order := make([]int, len(summaries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return summaries[order[i]].DaysRemaining < summaries[order[j]].DaysRemaining
	})
	urgent := make([]DueUnitSummary, 0, 7)
	for _, idx := range order {
		summary := summaries[idx]
		var customer models.Customer
		if err := config.DB.First(&customer, "id = ?", customerIDs[idx]).Error; err == nil {
			summary.CustomerName = customer.Name
			summary.CustomerPhone = customer.Phone
		}
		urgent = append(urgent, summary)
		if len(urgent) >= 7 {
			break
		}
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"totalCustomers":  totalCustomers,
		"totalUnits":      totalUnits,
		"needsScheduling": needsScheduling,
		"overdue":         overdue,
		"dueToday":        dueToday,
		"dueThisWeek":     dueWeek,
		"dueThisMonth":    dueMonth,
		"mostUrgent":      urgent,
	})
}
