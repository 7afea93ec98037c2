package controllers

import (
	"pos-backend/database"
	"pos-backend/middlewares"
	"pos-backend/models"
	"pos-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ClientInput struct {
	ClientName   string `json:"client_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email" validate:"omitempty,email"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

func CreateClient(c *fiber.Ctx) error {
	var in ClientInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	client := models.Client{
		ClientName:   in.ClientName,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BusinessName: in.BusinessName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		City:         in.City,
		Country:      in.Country,
		Active:       true,
	}

	if err := tenantDB.Create(&client).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create client",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetClients lists the client directory with a resolved display_name
// per entry, so pickers never have to re-derive labels.
func GetClients(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var clients []models.Client
	if err := tenantDB.Where("active = ?", true).Order("id").Find(&clients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list clients",
			"error":   err.Error(),
		})
	}

	out := make([]fiber.Map, 0, len(clients))
	for i := range clients {
		out = append(out, fiber.Map{
			"id":            clients[i].Id,
			"client_name":   clients[i].ClientName,
			"first_name":    clients[i].FirstName,
			"last_name":     clients[i].LastName,
			"business_name": clients[i].BusinessName,
			"email":         clients[i].Email,
			"phone_number":  clients[i].PhoneNumber,
			"display_name":  clients[i].DisplayName(),
		})
	}

	return c.JSON(fiber.Map{
		"clients": out,
		"message": "success",
	})
}

// ClientPatch carries the optional fields of a client update.
type ClientPatch struct {
	ClientName   *string `json:"client_name"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	BusinessName *string `json:"business_name"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
}

func UpdateClient(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch ClientPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	res := tenantDB.Model(&models.Client{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update client",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}

	var client models.Client
	tenantDB.First(&client, "id = ?", id)
	return c.JSON(client)
}
