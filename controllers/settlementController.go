package controllers

import (
	"strconv"
	"strings"
	"time"

	"pos-backend/database"
	"pos-backend/middlewares"
	"pos-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type SettlementInput struct {
	Amount    string `json:"amount" validate:"required"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
	Note      string `json:"note"`
}

// CreateSettlement records a payment against the outstanding balance of
// a credit or partial sale and rolls the sale's paid totals forward.
func CreateSettlement(c *fiber.Ctx) error {
	saleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid sale id")
	}

	var in SettlementInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil || !amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be a positive number")
	}
	amount = amount.Round(2)

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	// Reads and writes share the request transaction TenantTx opened, so
	// the balance check and the rollup cannot interleave with another
	// settlement; an error return rolls both writes back.
	var sale models.Sale
	if err := tenantDB.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, saleID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sale not found")
	}

	if !sale.BalanceDue.IsPositive() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "sale has no outstanding balance",
		})
	}
	if amount.GreaterThan(sale.BalanceDue) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "payment exceeds the outstanding balance",
		})
	}

	payment := models.SettlementPayment{
		SaleID:    sale.ID,
		Amount:    amount,
		Method:    in.Method,
		Reference: in.Reference,
		Note:      in.Note,
		PaidAt:    time.Now().UTC(),
	}
	if err := tenantDB.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record payment")
	}

	if err := tenantDB.Model(&sale).Updates(map[string]any{
		"amount_paid": sale.AmountPaid.Add(amount),
		"balance_due": sale.BalanceDue.Sub(amount),
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update sale balance")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"payment":     payment,
			"amount_paid": sale.AmountPaid.Add(amount),
			"balance_due": sale.BalanceDue.Sub(amount),
		},
	})
}

func ListSettlements(c *fiber.Ctx) error {
	saleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid sale id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var payments []models.SettlementPayment
	if err := tenantDB.
		Where("sale_id = ?", saleID).
		Order("paid_at").
		Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list payments",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"message":  "success",
	})
}
