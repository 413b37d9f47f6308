package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit types supported by the tracker.
const (
	UnitTypeAC        = "AC"
	UnitTypeHeater    = "Heater"
	UnitTypeMachine   = "Machine"
	UnitTypeGenerator = "Generator"
)

// How the stored next service date came to be. Explicit dates are never
// recomputed behind the caller's back; derived dates follow
// lastServiceDate + serviceIntervalDays.
const (
	NextServiceDerived  = "derived"
	NextServiceExplicit = "explicit"
)

func ValidUnitType(t string) bool {
	switch t {
	case UnitTypeAC, UnitTypeHeater, UnitTypeMachine, UnitTypeGenerator:
		return true
	}
	return false
}

type Unit struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_customer_display_name,priority:1" json:"customerId"`

	// DisplayName is a human label, unique only within one customer.
	// The (customer_id, display_name) pair is the natural key bulk
	// import uses to upsert units.
	DisplayName string `gorm:"not null;uniqueIndex:idx_customer_display_name,priority:2" json:"displayName"`
	Type        string `gorm:"type:varchar(20);not null" json:"type"`

	ServiceIntervalDays *int       `json:"serviceIntervalDays,omitempty"`
	LastServiceDate     *time.Time `json:"lastServiceDate,omitempty"`
	NextServiceDate     time.Time  `gorm:"not null" json:"nextServiceDate"`

	// NextServiceSource tags NextServiceDate as "derived" or "explicit".
	// A value comparison cannot tell the two apart when a chosen date
	// happens to match the computed one, so the tag is stored.
	NextServiceSource string `gorm:"type:varchar(10);not null;default:'explicit'" json:"nextServiceSource"`

	// NeedsScheduling is set when a service completion could not derive
	// the next date because the unit has no interval.
	NeedsScheduling bool `gorm:"default:false" json:"needsScheduling"`

	gorm.Model `json:"-"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
