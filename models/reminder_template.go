package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderTemplate is the message sent when a unit enters a due window.
// Placeholders [CustomerName], [UnitName] and [DueDate] are substituted
// at send time. Type is "overdue" or "due_soon".
type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Type     string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Message  string    `gorm:"type:text;not null"`
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}

func (r *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
