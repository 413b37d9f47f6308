// services/import_service.go
package services

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"hvactracker-backend/models"
	"hvactracker-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Import row error reason codes.
const (
	ReasonMissingField = "missing_required_field"
	ReasonInvalidType  = "invalid_type"
	ReasonInvalidDate  = "invalid_date"
	ReasonInvalidPhone = "invalid_phone"
	ReasonInvalidEmail = "invalid_email"
	ReasonStoreError   = "store_error"
)

// Optional columns: email, houseNumber, street, area, city, state,
// pincode, country, lastServiceDate.
var importRequiredColumns = []string{"name", "phone", "displayName", "type", "nextServiceDate"}

// ImportRowError ties one validation failure to one input row. Row is
// the physical line in the file: the header is line 1, the first data
// row is line 2.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ImportResult aggregates one batch. Errors preserve input order.
type ImportResult struct {
	RowsTotal        int              `json:"rowsTotal"`
	CustomersCreated int              `json:"customersCreated"`
	CustomersUpdated int              `json:"customersUpdated"`
	UnitsCreated     int              `json:"unitsCreated"`
	UnitsUpdated     int              `json:"unitsUpdated"`
	Errors           []ImportRowError `json:"errors"`
}

type ImportService struct {
	db *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db}
}

// importRow is one parsed CSV record.
type importRow struct {
	line            int
	name            string
	phone           string
	email           string
	displayName     string
	unitType        string
	nextServiceDate time.Time
	lastServiceDate *time.Time
	address         models.Address
}

// ImportCSV merges a delimited upload into the customer/unit store.
//
// Rows are processed strictly in input order and independently: a bad
// row is recorded and skipped, never aborting the batch or rolling back
// neighbours. Each accepted row applies its customer upsert and unit
// upsert inside one transaction, so a failed row writes nothing.
// Re-importing the identical file converges to the same stored state
// with pure updates. Only structural problems (empty input, missing
// required header columns) surface as a top-level error.
func (s *ImportService) ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty import file")
	}
	if err != nil {
		return nil, errors.New("unreadable import file: " + err.Error())
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range importRequiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, errors.New("missing required column: " + required)
		}
	}

	result := &ImportResult{Errors: []ImportRowError{}}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.RowsTotal++
			result.Errors = append(result.Errors, ImportRowError{
				Row:     line,
				Reason:  ReasonStoreError,
				Message: "malformed row: " + err.Error(),
			})
			continue
		}

		result.RowsTotal++
		row, rowErr := parseImportRow(line, record, columns)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		s.applyImportRow(row, result)
	}

	return result, nil
}

func parseImportRow(line int, record []string, columns map[string]int) (*importRow, *ImportRowError) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	for _, required := range importRequiredColumns {
		if cell(required) == "" {
			return nil, &ImportRowError{
				Row:     line,
				Field:   required,
				Reason:  ReasonMissingField,
				Message: required + " is required",
			}
		}
	}

	unitType := cell("type")
	if !models.ValidUnitType(unitType) {
		return nil, &ImportRowError{
			Row:     line,
			Field:   "type",
			Reason:  ReasonInvalidType,
			Message: "type must be one of AC, Heater, Machine, Generator",
		}
	}

	phone := cell("phone")
	if !utils.ValidatePhone(phone) {
		return nil, &ImportRowError{
			Row:     line,
			Field:   "phone",
			Reason:  ReasonInvalidPhone,
			Message: "phone must contain 10-15 digits",
		}
	}

	email := cell("email")
	if email != "" && !utils.ValidateEmail(email) {
		return nil, &ImportRowError{
			Row:     line,
			Field:   "email",
			Reason:  ReasonInvalidEmail,
			Message: "email must look like local@domain",
		}
	}

	nextDate, err := utils.ParseDate(cell("nextServiceDate"))
	if err != nil {
		return nil, &ImportRowError{
			Row:     line,
			Field:   "nextServiceDate",
			Reason:  ReasonInvalidDate,
			Message: "nextServiceDate must be a valid YYYY-MM-DD date",
		}
	}

	var lastDate *time.Time
	if raw := cell("lastServiceDate"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return nil, &ImportRowError{
				Row:     line,
				Field:   "lastServiceDate",
				Reason:  ReasonInvalidDate,
				Message: "lastServiceDate must be a valid YYYY-MM-DD date",
			}
		}
		lastDate = &parsed
	}

	return &importRow{
		line:            line,
		name:            cell("name"),
		phone:           phone,
		email:           email,
		displayName:     cell("displayName"),
		unitType:        unitType,
		nextServiceDate: nextDate,
		lastServiceDate: lastDate,
		address: models.Address{
			HouseNumber: cell("houseNumber"),
			Street:      cell("street"),
			Area:        cell("area"),
			City:        cell("city"),
			State:       cell("state"),
			Pincode:     cell("pincode"),
			Country:     cell("country"),
		},
	}, nil
}

// applyImportRow runs one row's customer upsert and unit upsert in a
// single transaction and bumps the batch counters on success.
func (s *ImportService) applyImportRow(row *importRow, result *ImportResult) {
	var customerCreated, unitCreated bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		customer, created, err := UpsertCustomerByPhone(tx, CustomerFields{
			Name:    row.name,
			Phone:   row.phone,
			Email:   row.email,
			Address: row.address,
		})
		if err != nil {
			return err
		}
		customerCreated = created

		unitCreated, err = upsertUnitForImport(tx, customer.ID, row)
		return err
	})
	if err != nil {
		result.Errors = append(result.Errors, ImportRowError{
			Row:     row.line,
			Reason:  ReasonStoreError,
			Message: err.Error(),
		})
		return
	}

	if customerCreated {
		result.CustomersCreated++
	} else {
		result.CustomersUpdated++
	}
	if unitCreated {
		result.UnitsCreated++
	} else {
		result.UnitsUpdated++
	}
}

// upsertUnitForImport upserts the unit keyed by (customerId, displayName).
// The row's nextServiceDate is always taken as explicit; the stored
// interval survives updates since the file carries no interval column.
func upsertUnitForImport(tx *gorm.DB, customerID uuid.UUID, row *importRow) (bool, error) {
	var unit models.Unit
	err := tx.First(&unit, "customer_id = ? AND display_name = ?", customerID, row.displayName).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		unit = models.Unit{
			CustomerID:        customerID,
			DisplayName:       row.displayName,
			Type:              row.unitType,
			LastServiceDate:   row.lastServiceDate,
			NextServiceDate:   row.nextServiceDate,
			NextServiceSource: models.NextServiceExplicit,
		}
		return true, tx.Create(&unit).Error
	}

	unit.Type = row.unitType
	if row.lastServiceDate != nil {
		unit.LastServiceDate = row.lastServiceDate
	}
	unit.NextServiceDate = row.nextServiceDate
	unit.NextServiceSource = models.NextServiceExplicit
	unit.NeedsScheduling = false
	return false, tx.Save(&unit).Error
}
