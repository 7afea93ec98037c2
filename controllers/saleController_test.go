package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pos-backend/database"
	"pos-backend/middlewares"
	"pos-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func setupPOSTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Store{},
		&models.Product{},
		&models.Client{},
		&models.Sale{},
		&models.SaleItem{},
		&models.SaleVersion{},
		&models.SettlementPayment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

// newPOSApp wires the sale routes the way routes.Register does, behind
// the per-request transaction middleware. Handlers must run their reads
// and writes on that transaction.
func newPOSApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("schema", "tenant_test")
		c.Locals("userID", "user-1")
		return c.Next()
	})
	app.Use(middlewares.TenantTx())
	app.Post("/sales", CreateSale)
	app.Post("/sales/:id/payments", CreateSettlement)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, raw
}

func seedCatalog(t *testing.T, db *gorm.DB) (store models.Store, product models.Product) {
	t.Helper()
	store = models.Store{Name: "Main Store"}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	product = models.Product{
		StoreID:      store.Id,
		SKU:          "SKU-001",
		Name:         "Notebook",
		SellingPrice: dec(t, "100.00"),
		Active:       true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return store, product
}

func TestCreateSale_PersistsThroughRequestTransaction(t *testing.T) {
	db := setupPOSTestDB(t)
	app := newPOSApp()
	store, product := seedCatalog(t, db)

	body := fmt.Sprintf(
		`{"sale":{"store_id":%d,"sale_type":"cash"},"items":[{"product_id":%q,"quantity":"2"}]}`,
		store.Id, product.Id,
	)
	status, raw := postJSON(t, app, "/sales", body)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", status, raw)
	}

	var out struct {
		Data struct {
			ID            uint   `json:"id"`
			InvoiceNumber string `json:"invoice_number"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Data.InvoiceNumber != "INV-000001" {
		t.Errorf("invoice_number = %q, want INV-000001", out.Data.InvoiceNumber)
	}

	// The sale and its audit snapshot must survive the request, i.e.
	// both were written on the middleware transaction and committed.
	var sale models.Sale
	if err := db.Preload("Items").First(&sale, out.Data.ID).Error; err != nil {
		t.Fatalf("sale not persisted: %v", err)
	}
	if !sale.Total.Equal(dec(t, "200")) {
		t.Errorf("total = %s, want 200", sale.Total)
	}
	if len(sale.Items) != 1 || sale.Items[0].Quantity != 2 {
		t.Errorf("items = %+v, want one row of quantity 2", sale.Items)
	}
	var versions int64
	db.Model(&models.SaleVersion{}).Where("sale_id = ?", sale.ID).Count(&versions)
	if versions != 1 {
		t.Errorf("sale versions = %d, want 1", versions)
	}

	// Numbering continues from the committed count.
	status, raw = postJSON(t, app, "/sales", body)
	if status != fiber.StatusCreated {
		t.Fatalf("second status = %d, want 201 (body %s)", status, raw)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Data.InvoiceNumber != "INV-000002" {
		t.Errorf("second invoice_number = %q, want INV-000002", out.Data.InvoiceNumber)
	}
}

func TestCreateSale_RejectionPersistsNothing(t *testing.T) {
	db := setupPOSTestDB(t)
	app := newPOSApp()
	store, product := seedCatalog(t, db)

	// Credit sale without a client fails validation.
	body := fmt.Sprintf(
		`{"sale":{"store_id":%d,"sale_type":"credit"},"items":[{"product_id":%q,"quantity":"1"}],"payment_term_days":"30"}`,
		store.Id, product.Id,
	)
	status, raw := postJSON(t, app, "/sales", body)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", status, raw)
	}

	var count int64
	db.Model(&models.Sale{}).Count(&count)
	if count != 0 {
		t.Errorf("sales persisted after rejection = %d, want 0", count)
	}
}

func TestCreateSettlement_RollsBalanceForward(t *testing.T) {
	db := setupPOSTestDB(t)
	app := newPOSApp()
	store, _ := seedCatalog(t, db)

	termDays := 30
	sale := models.Sale{
		InvoiceNumber:   "INV-000001",
		StoreID:         store.Id,
		SaleType:        "credit",
		Total:           dec(t, "100.00"),
		BalanceDue:      dec(t, "100.00"),
		PaymentTermDays: &termDays,
	}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	status, raw := postJSON(t, app, fmt.Sprintf("/sales/%d/payments", sale.ID), `{"amount":"40","method":"cash"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", status, raw)
	}

	var updated models.Sale
	if err := db.First(&updated, sale.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !updated.AmountPaid.Equal(dec(t, "40")) || !updated.BalanceDue.Equal(dec(t, "60")) {
		t.Errorf("rollup = paid %s / due %s, want 40 / 60", updated.AmountPaid, updated.BalanceDue)
	}

	// Paying more than the balance is rejected and leaves the rollup alone.
	status, _ = postJSON(t, app, fmt.Sprintf("/sales/%d/payments", sale.ID), `{"amount":"70"}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Errorf("overpayment status = %d, want 422", status)
	}
	var payments int64
	db.Model(&models.SettlementPayment{}).Where("sale_id = ?", sale.ID).Count(&payments)
	if payments != 1 {
		t.Errorf("payments = %d, want 1", payments)
	}
}
