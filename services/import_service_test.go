package services

import (
	"strings"
	"testing"
	"time"

	"hvactracker-backend/models"
	"hvactracker-backend/utils"
)

const importHeader = "name,phone,displayName,type,nextServiceDate,email,houseNumber,street,city,state,pincode,lastServiceDate"

func importCSV(t *testing.T, svc *ImportService, body string) *ImportResult {
	t.Helper()
	result, err := svc.ImportCSV(strings.NewReader(body))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return result
}

func TestImportCreatesCustomersAndUnits(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportService(db)

	body := importHeader + "\n" +
		"John Doe,9876543210,Living Room AC,AC,2024-04-15,john@example.com,123,Main Street,New York,NY,10001,2024-01-15\n" +
		"Jane Smith,9876543211,Backup Generator,Generator,2024-05-01,jane@example.com,456,Elm Street,Los Angeles,CA,90001,\n"

	result := importCSV(t, svc, body)

	if result.RowsTotal != 2 {
		t.Errorf("expected 2 rows, got %d", result.RowsTotal)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no row errors, got %+v", result.Errors)
	}
	if result.CustomersCreated != 2 || result.UnitsCreated != 2 {
		t.Errorf("expected 2 customers and 2 units created, got %+v", result)
	}

	var unit models.Unit
	var customer models.Customer
	if err := db.First(&customer, "phone = ?", "9876543210").Error; err != nil {
		t.Fatalf("customer lookup: %v", err)
	}
	if err := db.First(&unit, "customer_id = ? AND display_name = ?", customer.ID, "Living Room AC").Error; err != nil {
		t.Fatalf("unit lookup: %v", err)
	}
	if unit.NextServiceSource != models.NextServiceExplicit {
		t.Errorf("imported nextServiceDate must be tagged explicit, got %s", unit.NextServiceSource)
	}
	if unit.LastServiceDate == nil || !unit.LastServiceDate.Equal(date(2024, time.January, 15)) {
		t.Errorf("expected lastServiceDate 2024-01-15, got %v", unit.LastServiceDate)
	}
	if customer.Address.City != "New York" {
		t.Errorf("expected address city to be stored, got %q", customer.Address.City)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportService(db)

	body := importHeader + "\n" +
		"John Doe,9876543210,Living Room AC,AC,2024-04-15,john@example.com,123,Main Street,New York,NY,10001,2024-01-15\n"

	first := importCSV(t, svc, body)
	if first.CustomersCreated != 1 || first.UnitsCreated != 1 {
		t.Fatalf("first pass should create, got %+v", first)
	}

	second := importCSV(t, svc, body)
	if second.CustomersCreated != 0 || second.UnitsCreated != 0 {
		t.Errorf("second pass should create nothing, got %+v", second)
	}
	if second.CustomersUpdated != 1 || second.UnitsUpdated != 1 {
		t.Errorf("second pass should be pure updates, got %+v", second)
	}

	var customers, units int64
	db.Model(&models.Customer{}).Count(&customers)
	db.Model(&models.Unit{}).Count(&units)
	if customers != 1 || units != 1 {
		t.Errorf("expected 1 customer and 1 unit after re-import, got %d/%d", customers, units)
	}
}

func TestImportPartialFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportService(db)

	// Third data row has an invalid type; the rest must still land.
	body := importHeader + "\n" +
		"A One,9876543210,Unit One,AC,2024-04-15,,,,,,,\n" +
		"B Two,9876543211,Unit Two,Heater,2024-04-16,,,,,,,\n" +
		"C Three,9876543212,Unit Three,Fridge,2024-04-17,,,,,,,\n" +
		"D Four,9876543213,Unit Four,Machine,2024-04-18,,,,,,,\n" +
		"E Five,9876543214,Unit Five,Generator,2024-04-19,,,,,,,\n"

	result := importCSV(t, svc, body)

	if result.RowsTotal != 5 {
		t.Errorf("expected 5 rows, got %d", result.RowsTotal)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one row error, got %+v", result.Errors)
	}
	rowErr := result.Errors[0]
	if rowErr.Row != 4 { // header is line 1, so the third data row is line 4
		t.Errorf("expected error on line 4, got %d", rowErr.Row)
	}
	if rowErr.Reason != ReasonInvalidType {
		t.Errorf("expected reason %s, got %s", ReasonInvalidType, rowErr.Reason)
	}
	if result.UnitsCreated != 4 || result.CustomersCreated != 4 {
		t.Errorf("expected 4 successful upserts, got %+v", result)
	}

	// Nothing of the failed row was written.
	var count int64
	db.Model(&models.Customer{}).Where("phone = ?", "9876543212").Count(&count)
	if count != 0 {
		t.Error("failed row should not create a customer")
	}
}

func TestImportSamePhoneMergesIntoOneCustomer(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportService(db)

	body := importHeader + "\n" +
		"John Doe,9876543210,Living Room AC,AC,2024-04-15,,,,,,,\n" +
		"Jonathan Doe,9876543210,Bedroom Heater,Heater,2024-05-01,,,,,,,\n"

	result := importCSV(t, svc, body)

	if result.CustomersCreated != 1 || result.CustomersUpdated != 1 {
		t.Errorf("expected one create and one update, got %+v", result)
	}
	if result.UnitsCreated != 2 {
		t.Errorf("expected two units, got %+v", result)
	}

	var customers []models.Customer
	db.Find(&customers)
	if len(customers) != 1 {
		t.Fatalf("expected a single customer, got %d", len(customers))
	}
	// The later row's name wins.
	if customers[0].Name != "Jonathan Doe" {
		t.Errorf("expected second row's name to overwrite, got %q", customers[0].Name)
	}
}

func TestImportRowValidationReasons(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportService(db)

	body := importHeader + "\n" +
		",9876543210,Unit One,AC,2024-04-15,,,,,,,\n" + // missing name
		"B Two,123,Unit Two,AC,2024-04-16,,,,,,,\n" + // bad phone
		"C Three,9876543212,Unit Three,AC,15-04-2024,,,,,,,\n" + // bad next date
		"D Four,9876543213,Unit Four,AC,2024-04-18,not-an-email,,,,,,\n" + // bad email
		"E Five,9876543214,Unit Five,AC,2024-04-19,,,,,,,99-99\n" // bad last date

	result := importCSV(t, svc, body)

	if len(result.Errors) != 5 {
		t.Fatalf("expected 5 row errors, got %+v", result.Errors)
	}
	wantReasons := []string{
		ReasonMissingField,
		ReasonInvalidPhone,
		ReasonInvalidDate,
		ReasonInvalidEmail,
		ReasonInvalidDate,
	}
	for i, want := range wantReasons {
		if result.Errors[i].Reason != want {
			t.Errorf("error %d: expected reason %s got %s", i, want, result.Errors[i].Reason)
		}
	}
	// Errors stay in input order.
	for i := range result.Errors {
		if result.Errors[i].Row != i+2 {
			t.Errorf("error %d: expected line %d got %d", i, i+2, result.Errors[i].Row)
		}
	}
}

func TestImportStructuralFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportService(db)

	if _, err := svc.ImportCSV(strings.NewReader("")); err == nil {
		t.Error("expected a top-level error for empty input")
	}

	if _, err := svc.ImportCSV(strings.NewReader("name,phone\nJohn,9876543210\n")); err == nil {
		t.Error("expected a top-level error for missing required columns")
	}
}

func TestImportUpdateKeepsStoredInterval(t *testing.T) {
	db := setupTestDB(t)
	svc := NewImportService(db)

	body := importHeader + "\n" +
		"John Doe,9876543210,Living Room AC,AC,2024-04-15,,,,,,,\n"
	importCSV(t, svc, body)

	// Give the unit an interval out of band, then re-import.
	var customer models.Customer
	if err := db.First(&customer, "phone = ?", "9876543210").Error; err != nil {
		t.Fatalf("customer lookup: %v", err)
	}
	var unit models.Unit
	if err := db.First(&unit, "customer_id = ?", customer.ID).Error; err != nil {
		t.Fatalf("unit lookup: %v", err)
	}
	unit.ServiceIntervalDays = intPtr(90)
	if err := db.Save(&unit).Error; err != nil {
		t.Fatalf("save unit: %v", err)
	}

	body = importHeader + "\n" +
		"John Doe,9876543210,Living Room AC,AC,2024-06-01,,,,,,,2024-03-01\n"
	importCSV(t, svc, body)

	if err := db.First(&unit, "id = ?", unit.ID).Error; err != nil {
		t.Fatalf("reload unit: %v", err)
	}
	if unit.ServiceIntervalDays == nil || *unit.ServiceIntervalDays != 90 {
		t.Errorf("stored interval should survive re-import, got %v", unit.ServiceIntervalDays)
	}
	if want := date(2024, time.June, 1); !unit.NextServiceDate.Equal(want) {
		t.Errorf("row's explicit nextServiceDate should win, got %s", utils.FormatDate(unit.NextServiceDate))
	}
	if unit.LastServiceDate == nil || !unit.LastServiceDate.Equal(date(2024, time.March, 1)) {
		t.Errorf("expected lastServiceDate 2024-03-01, got %v", unit.LastServiceDate)
	}
}
