// services/customer_reconciler.go
package services

import (
	"errors"
	"strings"

	"hvactracker-backend/models"
	"hvactracker-backend/utils"

	"gorm.io/gorm"
)

// CustomerFields is the projection of customer data a caller supplies
// for reconciliation. Empty fields mean "leave the stored value alone".
type CustomerFields struct {
	Name    string
	Phone   string
	Email   string
	Address models.Address
}

// UpsertCustomerByPhone creates or updates a customer keyed by
// normalized phone digits. Merge semantics are field-present-overwrites:
// supplied non-empty fields replace stored values, everything else is
// left untouched. Returns created=true only when a new row was written.
func UpsertCustomerByPhone(tx *gorm.DB, fields CustomerFields) (*models.Customer, bool, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return nil, false, utils.NewValidationError("name", "is required")
	}
	if !utils.ValidatePhone(fields.Phone) {
		return nil, false, utils.NewValidationError("phone", "must contain 10-15 digits")
	}
	phone := utils.NormalizePhone(fields.Phone)

	var customer models.Customer
	err := tx.First(&customer, "phone = ?", phone).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Name:    name,
			Phone:   phone,
			Email:   strings.TrimSpace(fields.Email),
			Address: fields.Address,
		}
		if createErr := tx.Create(&customer).Error; createErr != nil {
			if !isUniqueViolation(createErr) {
				return nil, false, createErr
			}
			// Lost a race with a concurrent import on the same phone;
			// fall through to the merge path against the winner's row.
			if lookupErr := tx.First(&customer, "phone = ?", phone).Error; lookupErr != nil {
				return nil, false, utils.NewConflictError("concurrent create for phone " + phone)
			}
		} else {
			return &customer, true, nil
		}
	}

	mergeCustomerFields(&customer, name, fields)
	if err := tx.Save(&customer).Error; err != nil {
		return nil, false, err
	}
	return &customer, false, nil
}

func mergeCustomerFields(customer *models.Customer, name string, fields CustomerFields) {
	customer.Name = name
	if email := strings.TrimSpace(fields.Email); email != "" {
		customer.Email = email
	}
	addr := fields.Address
	if addr.HouseNumber != "" {
		customer.Address.HouseNumber = addr.HouseNumber
	}
	if addr.Street != "" {
		customer.Address.Street = addr.Street
	}
	if addr.Area != "" {
		customer.Address.Area = addr.Area
	}
	if addr.City != "" {
		customer.Address.City = addr.City
	}
	if addr.State != "" {
		customer.Address.State = addr.State
	}
	if addr.Pincode != "" {
		customer.Address.Pincode = addr.Pincode
	}
	if addr.Country != "" {
		customer.Address.Country = addr.Country
	}
}

// isUniqueViolation matches the duplicate-key errors gorm surfaces from
// both postgres and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
