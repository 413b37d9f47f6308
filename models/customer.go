package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address holds the free-form location sub-fields of a customer.
// Embedded into Customer so the columns live on the customers table.
type Address struct {
	HouseNumber string `json:"houseNumber"`
	Street      string `json:"street"`
	Area        string `json:"area"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Country     string `json:"country"`
}

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name string `gorm:"not null" json:"name"`
	// Phone is stored as normalized digits only and is the natural key
	// used by bulk import to match existing customers.
	Phone   string  `gorm:"not null;uniqueIndex" json:"phone"`
	Email   string  `json:"email"`
	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	Units []Unit `gorm:"foreignKey:CustomerID" json:"units,omitempty"`

	gorm.Model `json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
