package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newAuthedApp() *fiber.App {
	app := fiber.New()
	app.Get("/ping", IsAuthenticatedHeader(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("userID"),
			"schema":  c.Locals("schema"),
		})
	})
	return app
}

func TestBearerAuth_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	app := newAuthedApp()

	token, err := GenerateJWT("user-1", "tenant_a")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestBearerAuth_Rejections(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	app := newAuthedApp()

	tests := []struct {
		name   string
		header string
	}{
		{"no token", ""},
		{"wrong scheme", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}
