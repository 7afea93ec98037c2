package controllers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pos-backend/database"
	"pos-backend/middlewares"
	"pos-backend/models"
	"pos-backend/sales"
	"pos-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Wire shapes for POST /sales. Numeric inputs arrive as strings, the
// same way the checkout form captures them; blanks mean "unset".
type SaleItemInput struct {
	ProductID          string `json:"product_id"`
	Quantity           string `json:"quantity"`
	UnitPrice          string `json:"unit_price"`
	DiscountPercentage string `json:"discount_percentage"`
}

type SaleHeaderInput struct {
	StoreID        uint   `json:"store_id"`
	ClientID       *uint  `json:"client_id"`
	SaleType       string `json:"sale_type"`
	Subtotal       string `json:"subtotal"`
	TaxAmount      string `json:"tax_amount"`
	DiscountAmount string `json:"discount_amount"`
	TotalAmount    string `json:"total_amount"`
	AmountPaid     string `json:"amount_paid"`
	PaymentMethod  string `json:"payment_method"`
}

type CreateSaleInput struct {
	Sale            SaleHeaderInput `json:"sale"`
	Items           []SaleItemInput `json:"items"`
	PaymentTermDays string          `json:"payment_term_days"`
}

// CreateSale accepts one checkout submission, re-runs the whole
// workflow server-side (line items, totals, payment plan, ordered
// validation) and persists the sale atomically. The response carries
// the server-assigned invoice number under "data".
func CreateSale(c *fiber.Ctx) error {
	var in CreateSaleInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	// Rebuild the line items from the catalog. Item-level rejections
	// (no product, bad quantity/price/discount) surface here, before
	// the submission-level checks run.
	items := make([]sales.LineItem, 0, len(in.Items))
	for i, it := range in.Items {
		var catalog *sales.Product
		if strings.TrimSpace(it.ProductID) != "" {
			var p models.Product
			if err := tenantDB.First(&p, "id = ?", it.ProductID).Error; err == nil {
				catalog = &sales.Product{
					ID:           p.Id,
					SKU:          p.SKU,
					Name:         p.Name,
					SellingPrice: p.SellingPrice,
					BuyingPrice:  p.BuyingPrice,
				}
			}
		}

		items, err = sales.AddLineItem(catalog, it.Quantity, it.UnitPrice, it.DiscountPercentage, items)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	sub := &sales.Submission{
		StoreID:          in.Sale.StoreID,
		ClientID:         in.Sale.ClientID,
		SaleType:         sales.SaleType(in.Sale.SaleType),
		Items:            items,
		AmountPaidInput:  in.Sale.AmountPaid,
		PaymentTermInput: in.PaymentTermDays,
		PaymentMethod:    in.Sale.PaymentMethod,
	}

	totals, plan, err := sub.Resolve(time.Now())
	if err != nil {
		return err
	}

	// Cross-check the client's math when it sent a total at all; a
	// mismatch means the caller computed against a stale catalog.
	if raw := strings.TrimSpace(in.Sale.TotalAmount); raw != "" {
		claimed, parseErr := decimal.NewFromString(raw)
		if parseErr != nil || !claimed.Equal(totals.Total) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "total_amount does not match the server-computed total",
			})
		}
	}

	var store models.Store
	if err := tenantDB.First(&store, sub.StoreID).Error; err != nil {
		return sales.ErrNoStoreSelected
	}
	if sub.ClientID != nil {
		var client models.Client
		if err := tenantDB.First(&client, *sub.ClientID).Error; err != nil {
			return sales.ErrClientRequired
		}
	}

	taxAmount, err := utils.ParseMoney(in.Sale.TaxAmount)
	if err != nil || taxAmount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tax amount")
	}

	sale := models.Sale{
		StoreID:       sub.StoreID,
		ClientID:      sub.ClientID,
		SaleType:      string(sub.SaleType),
		PaymentMethod: sub.PaymentMethod,
		Subtotal:      totals.Subtotal,
		TaxAmount:     taxAmount,
		DiscountTotal: totals.TotalDiscount,
		Total:         totals.Total,
		AmountPaid:    plan.AmountPaid,
		BalanceDue:    plan.BalanceDue,
		DueDate:       plan.DueDate,
	}
	if plan.DueDate != nil {
		termDays := plan.PaymentTermDays
		sale.PaymentTermDays = &termDays
	}
	for _, it := range items {
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			SKU:            it.SKU,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountPct:    it.DiscountPct,
			Subtotal:       it.Subtotal,
			DiscountAmount: it.DiscountAmount,
			Total:          it.Total,
		})
	}

	// The writes below run on the request transaction TenantTx opened;
	// returning an error rolls the whole sale back in the middleware.
	// Serialize invoice numbering per tenant so concurrent checkouts
	// cannot count the same sale total.
	if tenantDB.Dialector.Name() == "postgres" {
		if err := tenantDB.Exec(`SELECT pg_advisory_xact_lock(hashtext(current_schema() || '.invoice_number'))`).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not assign invoice number")
		}
	}

	var count int64
	if err := tenantDB.Model(&models.Sale{}).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not assign invoice number")
	}
	sale.InvoiceNumber = fmt.Sprintf("INV-%06d", count+1)

	if err := tenantDB.Create(&sale).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fiber.NewError(fiber.StatusConflict, "invoice number already taken, retry the request")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not create sale")
	}

	// Audit snapshot of the sale exactly as accepted. A sale without its
	// snapshot must not be committed.
	snapshot, err := json.Marshal(sale)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record sale snapshot")
	}
	version := models.SaleVersion{
		SaleID:    sale.ID,
		VersionNo: 1,
		Snapshot:  datatypes.JSON(snapshot),
	}
	if err := tenantDB.Create(&version).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record sale snapshot")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": sale,
	})
}

func GetSales(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var salesList []models.Sale
	if err := tenantDB.
		Preload("Items").
		Preload("Client").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&salesList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list sales",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"sales":   salesList,
		"message": "success",
	})
}

func GetSale(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid sale id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var sale models.Sale
	if err := tenantDB.Preload("Items").Preload("Client").First(&sale, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sale not found")
	}

	out := fiber.Map{"data": sale}
	if sale.PaymentTermDays != nil {
		out["payment_term_label"] = sales.TermLabel(*sale.PaymentTermDays)
	}
	return c.JSON(out)
}
