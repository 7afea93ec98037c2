package controllers

import (
	"pos-backend/database"
	"pos-backend/middlewares"
	"pos-backend/models"

	"github.com/gofiber/fiber/v2"
)

type StoreInput struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Zip         string `json:"zip"`
	PhoneNumber string `json:"phone_number"`
}

func CreateStore(c *fiber.Ctx) error {
	var in StoreInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	store := models.Store{
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Zip:         in.Zip,
		PhoneNumber: in.PhoneNumber,
		Active:      true,
	}

	if err := tenantDB.Create(&store).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create store",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(store)
}

func GetStores(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var stores []models.Store
	if err := tenantDB.Where("active = ?", true).Order("id").Find(&stores).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list stores",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"stores":  stores,
		"message": "success",
	})
}
