package warranties

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ilmsadmin/zbase-sub005/internal/models"
	"github.com/ilmsadmin/zbase-sub005/internal/pkg/validation"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Partner{}, &models.Customer{}, &models.Product{},
		&models.Invoice{}, &models.Warranty{}, &models.WarrantyEvent{},
	))
	svc := &Service{DB: db, Now: func() time.Time { return testNow }}
	return svc, db
}

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	c := models.Customer{FullName: "Nguyen Van A", Phone: "0900000001"}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedProduct(t *testing.T, db *gorm.DB) models.Product {
	p := models.Product{Name: "Laptop X1", SKU: "SKU-X1", Price: 1500, WarrantyMonths: 24}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedInvoice(t *testing.T, db *gorm.DB, customerID uint) models.Invoice {
	inv := models.Invoice{Code: "INV-0001", CustomerID: &customerID, TotalAmount: 1500, Status: models.InvoiceStatusPaid, InvoiceDate: testNow}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

// seedWarrantyToday inserts a warranty row whose created_at falls inside the
// injected clock's day, so the code generator's count sees it.
func seedWarrantyToday(t *testing.T, db *gorm.DB, code string) models.Warranty {
	w := models.Warranty{Code: code, Status: models.StatusPending, ReceivedDate: testNow, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, db.Create(&w).Error)
	return w
}

func TestCreate_GeneratesSequencedCode(t *testing.T) {
	svc, db := setupService(t)
	for i := 1; i <= 5; i++ {
		seedWarrantyToday(t, db, fmt.Sprintf("WR-20260310-%04d", i))
	}

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)
	assert.Equal(t, "WR-20260310-0006", w.Code)
	assert.True(t, validation.IsValidWarrantyCode(w.Code))
}

func TestCreate_FirstCodeOfDay(t *testing.T) {
	svc, db := setupService(t)
	// A warranty from yesterday must not count toward today's sequence.
	yesterday := testNow.Add(-24 * time.Hour)
	old := models.Warranty{Code: "WR-20260309-0001", Status: models.StatusPending, ReceivedDate: yesterday, CreatedAt: yesterday, UpdatedAt: yesterday}
	require.NoError(t, db.Create(&old).Error)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)
	assert.Equal(t, "WR-20260310-0001", w.Code)
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, w.Status)
	assert.True(t, w.ReceivedDate.Equal(testNow))
	assert.Nil(t, w.ActualReturnDate)
	assert.False(t, w.Charged)
}

func TestCreate_SuppliedCodeAndStatus(t *testing.T) {
	svc, _ := setupService(t)

	received := testNow.Add(-48 * time.Hour)
	w, err := svc.Create(context.Background(), CreateWarrantyInput{
		Code:         "WR-20260308-0042",
		Status:       models.StatusProcessing,
		ReceivedDate: &received,
	})
	require.NoError(t, err)
	assert.Equal(t, "WR-20260308-0042", w.Code)
	assert.Equal(t, models.StatusProcessing, w.Status)
	assert.True(t, w.ReceivedDate.Equal(received))
}

func TestCreate_ValidReferences(t *testing.T) {
	svc, db := setupService(t)
	cust := seedCustomer(t, db)
	prod := seedProduct(t, db)
	inv := seedInvoice(t, db, cust.ID)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{
		CustomerID: &cust.ID,
		ProductID:  &prod.ID,
		InvoiceID:  &inv.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, cust.ID, *w.CustomerID)
	assert.Equal(t, prod.ID, *w.ProductID)
	assert.Equal(t, inv.ID, *w.InvoiceID)
}

func TestCreate_MissingCustomerRejected(t *testing.T) {
	svc, db := setupService(t)
	missing := uint(999)

	_, err := svc.Create(context.Background(), CreateWarrantyInput{CustomerID: &missing})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "Customer with ID 999 not found")

	// Nothing persisted.
	var count int64
	require.NoError(t, db.Model(&models.Warranty{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Validation short-circuits customer -> product -> invoice: when both customer
// and product are missing, the failure names the customer.
func TestCreate_ValidationOrder(t *testing.T) {
	svc, _ := setupService(t)
	missing := uint(999)

	_, err := svc.Create(context.Background(), CreateWarrantyInput{CustomerID: &missing, ProductID: &missing})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "Customer with ID 999")
}

func TestCreate_MissingProductRejected(t *testing.T) {
	svc, db := setupService(t)
	cust := seedCustomer(t, db)
	missing := uint(777)

	_, err := svc.Create(context.Background(), CreateWarrantyInput{CustomerID: &cust.ID, ProductID: &missing})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "Product with ID 777 not found")
}

func TestCreate_DuplicateCodeConflict(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0001"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0001"})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Warranty code must be unique", ce.Message)
}

func TestCreate_InvalidStatusRejected(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), CreateWarrantyInput{Status: "SHIPPED"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCreate_WritesCreatedEvent(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)

	events, err := svc.ListEvents(context.Background(), w.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CREATED", events[0].EventType)
}

func TestFindOne_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.FindOne(context.Background(), 999)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "Warranty with ID 999 not found", nfe.Message)
}

func TestFindByCode(t *testing.T) {
	svc, _ := setupService(t)

	created, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0007"})
	require.NoError(t, err)

	found, err := svc.FindByCode(context.Background(), "WR-20260310-0007")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.FindByCode(context.Background(), "WR-19990101-0001")
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Contains(t, nfe.Message, "WR-19990101-0001")
}

func TestFindOne_ExpandsRelations(t *testing.T) {
	svc, db := setupService(t)
	cust := seedCustomer(t, db)
	prod := seedProduct(t, db)
	creator := models.User{Fullname: "Tech Lead", UserName: "lead", Email: "lead@example.com", PasswordHash: "x", Role: "manager"}
	require.NoError(t, db.Create(&creator).Error)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{
		CustomerID: &cust.ID,
		ProductID:  &prod.ID,
		CreatorID:  &creator.ID,
	})
	require.NoError(t, err)

	found, err := svc.FindOne(context.Background(), w.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Customer)
	assert.Equal(t, cust.FullName, found.Customer.FullName)
	require.NotNil(t, found.Product)
	assert.Equal(t, prod.SKU, found.Product.SKU)
	require.NotNil(t, found.Creator)
	assert.Equal(t, "lead@example.com", found.Creator.Email)
	// Summary only: password hash column not selected.
	assert.Empty(t, found.Creator.PasswordHash)
}

func TestUpdate_CompletedStampsActualReturnDate(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)

	completed := models.StatusCompleted
	updated, err := svc.Update(context.Background(), w.ID, UpdateWarrantyInput{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.NotNil(t, updated.ActualReturnDate)
	assert.True(t, updated.ActualReturnDate.Equal(testNow))
}

func TestUpdate_CompletedKeepsExplicitReturnDate(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)

	completed := models.StatusCompleted
	explicit := testNow.Add(-6 * time.Hour)
	updated, err := svc.Update(context.Background(), w.ID, UpdateWarrantyInput{
		Status:           &completed,
		ActualReturnDate: &explicit,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ActualReturnDate)
	assert.True(t, updated.ActualReturnDate.Equal(explicit))
}

// The transition graph is open: COMPLETED is not terminal.
func TestUpdate_ReopenCompleted(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)

	completed := models.StatusCompleted
	_, err = svc.Update(context.Background(), w.ID, UpdateWarrantyInput{Status: &completed})
	require.NoError(t, err)

	processing := models.StatusProcessing
	updated, err := svc.Update(context.Background(), w.ID, UpdateWarrantyInput{Status: &processing})
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	diag := "board swap"
	_, err := svc.Update(context.Background(), 42, UpdateWarrantyInput{Diagnosis: &diag})
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "Warranty with ID 42 not found", nfe.Message)
}

func TestUpdate_EmptyPatchRejected(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), w.ID, UpdateWarrantyInput{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestUpdate_DuplicateCodeConflict(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0001"})
	require.NoError(t, err)
	w2, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0002"})
	require.NoError(t, err)

	dup := "WR-20260310-0001"
	_, err = svc.Update(context.Background(), w2.ID, UpdateWarrantyInput{Code: &dup})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestUpdate_StatusChangeWritesEvent(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)

	processing := models.StatusProcessing
	_, err = svc.Update(context.Background(), w.ID, UpdateWarrantyInput{Status: &processing})
	require.NoError(t, err)

	events, err := svc.ListEvents(context.Background(), w.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "STATUS_CHANGED", events[1].EventType)
}

func TestUpdate_FieldEditWritesNoEvent(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{})
	require.NoError(t, err)

	notes := "customer called"
	_, err = svc.Update(context.Background(), w.ID, UpdateWarrantyInput{Notes: &notes})
	require.NoError(t, err)

	events, err := svc.ListEvents(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1) // only CREATED
}

func TestRemove(t *testing.T) {
	svc, _ := setupService(t)

	w, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0001"})
	require.NoError(t, err)

	removed, err := svc.Remove(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, "WR-20260310-0001", removed.Code)

	_, err = svc.FindOne(context.Background(), w.ID)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)

	_, err = svc.ListEvents(context.Background(), w.ID)
	require.ErrorAs(t, err, &nfe)
}

func TestRemove_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Remove(context.Background(), 17)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "Warranty with ID 17 not found", nfe.Message)
}

func TestFindAll_OrderedByReceivedDateDesc(t *testing.T) {
	svc, _ := setupService(t)

	early := testNow.Add(-72 * time.Hour)
	late := testNow.Add(-1 * time.Hour)
	_, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260307-0001", ReceivedDate: &early})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0001", ReceivedDate: &late})
	require.NoError(t, err)

	ws, err := svc.FindAll(context.Background(), ListFilters{})
	require.NoError(t, err)
	require.Len(t, ws, 2)
	assert.Equal(t, "WR-20260310-0001", ws[0].Code)
	assert.Equal(t, "WR-20260307-0001", ws[1].Code)
}

func TestFindAll_CodeSubstringCaseInsensitive(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0001"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20251231-0009"})
	require.NoError(t, err)

	ws, err := svc.FindAll(context.Background(), ListFilters{Code: "wr-2026"})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "WR-20260310-0001", ws[0].Code)
}

func TestFindAll_StatusAndCustomerFilters(t *testing.T) {
	svc, db := setupService(t)
	cust := seedCustomer(t, db)

	_, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0001", CustomerID: &cust.ID})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0002", Status: models.StatusRejected})
	require.NoError(t, err)

	ws, err := svc.FindAll(context.Background(), ListFilters{Status: models.StatusRejected})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "WR-20260310-0002", ws[0].Code)

	ws, err = svc.FindAll(context.Background(), ListFilters{CustomerID: &cust.ID})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "WR-20260310-0001", ws[0].Code)

	// AND combination: same customer but wrong status matches nothing.
	ws, err = svc.FindAll(context.Background(), ListFilters{CustomerID: &cust.ID, Status: models.StatusRejected})
	require.NoError(t, err)
	assert.Empty(t, ws)
}

func TestFindAll_ReceivedDateRange(t *testing.T) {
	svc, _ := setupService(t)

	d1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	d2 := time.Date(2026, 3, 5, 10, 0, 0, 0, time.Local)
	d3 := time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local)
	for i, d := range []time.Time{d1, d2, d3} {
		received := d
		_, err := svc.Create(context.Background(), CreateWarrantyInput{
			Code:         fmt.Sprintf("WR-2026030%d-0001", i+1),
			ReceivedDate: &received,
		})
		require.NoError(t, err)
	}

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local)
	ws, err := svc.FindAll(context.Background(), ListFilters{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.True(t, ws[0].ReceivedDate.Equal(d2))

	// Open-ended lower bound.
	ws, err = svc.FindAll(context.Background(), ListFilters{StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, ws, 2)
}

func TestFindAll_SerialNumberSubstring(t *testing.T) {
	svc, _ := setupService(t)

	sn := "SN-ABC-123"
	_, err := svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0001", SerialNumber: &sn})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateWarrantyInput{Code: "WR-20260310-0002"})
	require.NoError(t, err)

	ws, err := svc.FindAll(context.Background(), ListFilters{SerialNumber: "abc"})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "WR-20260310-0001", ws[0].Code)
}
