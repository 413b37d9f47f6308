// services/reminder_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"hvactracker-backend/models"
	"hvactracker-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders texts the owner of every unit that is overdue or
// due within the next week. One log row per attempt.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	now := time.Now()
	cutoff := utils.BeginningOfDay(now).AddDate(0, 0, WindowWeek+1)

	var units []models.Unit
	if err := s.db.Where("next_service_date < ?", cutoff).Find(&units).Error; err != nil {
		log.Printf("Failed to fetch due units: %v", err)
		return
	}

	for _, unit := range units {
		bucket, days := ClassifyDue(unit.NextServiceDate, now)
		eventType := "due_soon"
		if bucket == BucketOverdue {
			eventType = "overdue"
		}
		s.sendReminder(unit, eventType, days)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) sendReminder(unit models.Unit, eventType string, daysRemaining int) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", unit.CustomerID).Error; err != nil {
		log.Printf("Unit %s: owner lookup failed: %v", unit.ID, err)
		return
	}

	message := s.messageFor(eventType)
	message = strings.ReplaceAll(message, "[CustomerName]", customer.Name)
	message = strings.ReplaceAll(message, "[UnitName]", unit.DisplayName)
	message = strings.ReplaceAll(message, "[DueDate]", utils.FormatDate(unit.NextServiceDate))

	to, from, channel := reminderDestination(customer.Phone)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
	}

	reminderLog := models.ReminderLog{
		CustomerID:   customer.ID,
		UnitID:       unit.ID,
		Type:         eventType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", customer.ID, err)
	}
}

// reminderDestination builds the Twilio to/from pair for a stored phone.
// Phones are kept as bare digits, so the E.164 form is digits with a
// leading plus. WhatsApp is used when a WhatsApp sender is configured,
// plain SMS otherwise.
func reminderDestination(phone string) (to, from, channel string) {
	e164 := "+" + phone
	if wa := os.Getenv("TWILIO_WHATSAPP_NUMBER"); wa != "" {
		return "whatsapp:" + e164, "whatsapp:" + wa, "whatsapp"
	}
	return e164, os.Getenv("TWILIO_PHONE_NUMBER"), "sms"
}

// messageFor picks the active template for the event type, falling back
// to a built-in message when none is configured.
func (s *ReminderService) messageFor(eventType string) string {
	var template models.ReminderTemplate
	err := s.db.Where("type = ? AND is_active = true", eventType).First(&template).Error
	if err == nil {
		return template.Message
	}
	if eventType == "overdue" {
		return "Hi [CustomerName], service for your [UnitName] was due on [DueDate]. Please schedule a visit."
	}
	return "Hi [CustomerName], your [UnitName] is due for service on [DueDate]."
}
