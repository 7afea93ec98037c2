package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"pos-backend/database"
	"pos-backend/middlewares"
	"pos-backend/models"
	"pos-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductInput struct {
	StoreID      uint   `json:"store_id" validate:"required"`
	SKU          string `json:"sku" validate:"required"`
	Name         string `json:"product_name" validate:"required"`
	SellingPrice string `json:"selling_price" validate:"required"`
	BuyingPrice  string `json:"buying_price"`
	Active       string `json:"active"`
}

// CreateProducts batch-creates catalog entries for a store.
func CreateProducts(c *fiber.Ctx) error {
	var inputs []ProductInput
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	// Creates run on the request transaction TenantTx opened; any error
	// return rolls back the whole batch in the middleware.
	var created []models.Product

	for i, input := range inputs {
		if err := middlewares.ValidateStruct(&input); err != nil {
			return err
		}

		sellingPrice, err := utils.ParseMoney(input.SellingPrice)
		if err != nil || sellingPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid selling price at index %d", i))
		}

		buyingPrice, err := utils.ParseMoney(input.BuyingPrice)
		if err != nil || buyingPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid buying price at index %d", i))
		}

		active := true
		if s := strings.TrimSpace(input.Active); s != "" {
			active, err = strconv.ParseBool(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid active value at index %d", i))
			}
		}

		product := models.Product{
			StoreID:      input.StoreID,
			SKU:          strings.TrimSpace(input.SKU),
			Name:         strings.TrimSpace(input.Name),
			SellingPrice: sellingPrice,
			BuyingPrice:  buyingPrice,
			Active:       active,
		}

		if err := tenantDB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Could not create product at index %d", i))
		}

		created = append(created, product)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetStoreProducts lists the active catalog of one store; this is the
// read the checkout's product picker is populated from.
func GetStoreProducts(c *fiber.Ctx) error {
	storeID, err := strconv.Atoi(c.Params("storeId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid store id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var products []models.Product
	if err := tenantDB.
		Where("store_id = ? AND active = ?", storeID, true).
		Order("name").
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

// ProductPatch carries the optional fields of a product update; nil
// pointers are left untouched.
type ProductPatch struct {
	Name         *string  `json:"product_name"`
	SKU          *string  `json:"sku"`
	SellingPrice *float64 `json:"selling_price"`
	BuyingPrice  *float64 `json:"buying_price"`
	Active       *bool    `json:"active"`
}

func UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	if patch.SellingPrice != nil && *patch.SellingPrice < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "selling price must not be negative")
	}
	if patch.BuyingPrice != nil && *patch.BuyingPrice < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "buying price must not be negative")
	}

	updates := utils.UpdatesFromPtrDTO(&patch, map[string]string{"product_name": "name"})
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	res := tenantDB.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	var product models.Product
	tenantDB.First(&product, "id = ?", id)
	return c.JSON(product)
}
