package middlewares

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pos-backend/database"
	"pos-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIdempotencyDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.IdempotencyKey{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func newIdempotentApp(calls *int) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("schema", "tenant_test")
		c.Locals("userID", "user-1")
		return c.Next()
	})
	app.Use(Idempotency())
	app.Post("/sales", func(c *fiber.Ctx) error {
		*calls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"data": fiber.Map{"invoice_number": fmt.Sprintf("INV-%06d", *calls)},
		})
	})
	return app
}

func postSale(t *testing.T, app *fiber.App, key, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", key)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(raw)
}

// A retried submission with the same key must replay the stored
// response without running the handler a second time.
func TestIdempotency_ReplayDoesNotRerunHandler(t *testing.T) {
	setupIdempotencyDB(t)
	calls := 0
	app := newIdempotentApp(&calls)

	body := `{"sale":{"store_id":1,"sale_type":"cash"}}`

	status1, body1 := postSale(t, app, "key-1", body)
	if status1 != fiber.StatusCreated {
		t.Fatalf("first status = %d, want 201", status1)
	}
	if calls != 1 {
		t.Fatalf("handler calls after first request = %d, want 1", calls)
	}

	status2, body2 := postSale(t, app, "key-1", body)
	if status2 != fiber.StatusCreated {
		t.Errorf("replay status = %d, want 201", status2)
	}
	if calls != 1 {
		t.Errorf("handler calls after retry = %d, want 1", calls)
	}
	if body2 != body1 {
		t.Errorf("replay body = %s, want stored %s", body2, body1)
	}
}

func TestIdempotency_KeyReuseWithDifferentBody(t *testing.T) {
	setupIdempotencyDB(t)
	calls := 0
	app := newIdempotentApp(&calls)

	status1, _ := postSale(t, app, "key-2", `{"sale":{"store_id":1}}`)
	if status1 != fiber.StatusCreated {
		t.Fatalf("first status = %d, want 201", status1)
	}

	status2, _ := postSale(t, app, "key-2", `{"sale":{"store_id":2}}`)
	if status2 != fiber.StatusConflict {
		t.Errorf("reused key status = %d, want 409", status2)
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	hash := requestHash("POST", "/sales", []byte(`{}`), "tenant_test", "user-1")

	tests := []struct {
		name string
		rec  models.IdempotencyKey
		want idempotentAction
	}{
		{"pending record", models.IdempotencyKey{RequestHash: hash}, runHandler},
		{"completed record", models.IdempotencyKey{RequestHash: hash, ResponseStatus: 201, ResponseBody: []byte(`{}`)}, replayStored},
		{"status without body", models.IdempotencyKey{RequestHash: hash, ResponseStatus: 201}, runHandler},
		{"different request", models.IdempotencyKey{RequestHash: "something-else", ResponseStatus: 201, ResponseBody: []byte(`{}`)}, rejectMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyIdempotent(tt.rec, hash); got != tt.want {
				t.Errorf("classifyIdempotent() = %d, want %d", got, tt.want)
			}
		})
	}
}
