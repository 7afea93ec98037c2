package controllers

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"pos-backend/database"
	"pos-backend/middlewares"
	"pos-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegisterInput struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	CompanyName     string `json:"company_name" validate:"required"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Zip             string `json:"zip"`
}

// Register creates the owner account, the company, its tenant schema
// and a default store.
func Register(c *fiber.Ctx) error {
	var in RegisterInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	if in.Password != in.PasswordConfirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "passwords do not match",
		})
	}

	var mailExist models.User
	database.DB.Where("email = ?", in.Email).First(&mailExist)
	if mailExist.Email != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "email already exists",
		})
	}

	schemaName, err := createSchema(in.CompanyName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed due to internal error",
			"error":   err.Error(),
		})
	}

	tx := database.DB.Begin()

	user := models.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		SchemaName:  schemaName,
	}
	user.SetPassword(in.Password)
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create user",
			"error":   err.Error(),
		})
	}

	company := models.Company{
		CompanyName: in.CompanyName,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Zip:         in.Zip,
		OwnerId:     user.Id,
		SchemaName:  schemaName,
	}
	if err := tx.Create(&company).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create company",
			"error":   err.Error(),
		})
	}

	if err := database.MigrateTenantSchema(schemaName); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not migrate tenant schema",
		})
	}

	tx.Commit()

	// Seed a default store so the checkout has a store context from the
	// first login on.
	if tenantDB, err := database.TenantSession(schemaName); err == nil {
		tenantDB.Create(&models.Store{
			Name:        in.CompanyName,
			Address:     in.Address,
			City:        in.City,
			Country:     in.Country,
			Zip:         in.Zip,
			PhoneNumber: in.PhoneNumber,
			Active:      true,
		})
	}

	database.DB.Preload("Owner").First(&company, "id = ?", company.Id)
	return c.JSON(company)
}

func createSchema(company string) (string, error) {
	safeName := strings.ToLower(strings.TrimSpace(company))
	safeName = strings.ReplaceAll(safeName, " ", "_")
	// Only letters, numbers, underscores; must start with letter/underscore
	valid := regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	if !valid.MatchString(safeName) {
		return "", fmt.Errorf("invalid schema name after sanitization: %s", safeName)
	}

	if err := database.DB.Exec("CREATE SCHEMA IF NOT EXISTS " + safeName).Error; err != nil {
		return "", err
	}
	return safeName, nil
}

func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid email format",
		})
	}

	var user models.User
	database.DB.Table("public.users").Where("email = ?", data["email"]).First(&user)

	if _, err := uuid.Parse(user.Id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	if err := user.ComparePassword(data["password"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	token, err := middlewares.GenerateJWT(user.Id, user.SchemaName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue token",
		})
	}

	if err := database.MigrateTenantSchema(user.SchemaName); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not migrate tenant schema"})
	}

	return c.JSON(fiber.Map{
		"token":  token,
		"schema": user.SchemaName,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}
