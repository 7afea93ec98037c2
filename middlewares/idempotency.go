package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"pos-backend/database"
	"pos-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// idempotentAction says how to proceed once the key record is resolved.
type idempotentAction int

const (
	runHandler idempotentAction = iota
	replayStored
	rejectMismatch
)

// classifyIdempotent decides what an existing key record means for the
// current request: a different request hash is a key reuse, a completed
// record replays its stored response, anything else runs the handler.
func classifyIdempotent(rec models.IdempotencyKey, reqHash string) idempotentAction {
	if rec.RequestHash != reqHash {
		return rejectMismatch
	}
	if rec.ResponseStatus != 0 && rec.ResponseBody != nil {
		return replayStored
	}
	return runHandler
}

// requestHash fingerprints a request: method|path|body|schema|user.
func requestHash(method, path string, body []byte, schema, userID string) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{'\n'})
	h.Write([]byte(path))
	h.Write([]byte{'\n'})
	h.Write(body)
	h.Write([]byte{'\n'})
	h.Write([]byte(schema))
	h.Write([]byte{'\n'})
	h.Write([]byte(userID))
	return hex.EncodeToString(h.Sum(nil))
}

// Idempotency processes Idempotency-Key for mutating HTTP methods in a schema-safe way,
// so a retried checkout click replays the stored response instead of creating a second
// sale. It uses its own short transaction and SET LOCAL search_path to avoid leaking
// search_path on pooled connections.
func Idempotency() fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get("Idempotency-Key"))
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Idempotency-Key too long"})
		}

		schema, _ := c.Locals("schema").(string)
		userID, _ := c.Locals("userID").(string)
		if schema == "" || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "auth context missing"})
		}

		path := c.OriginalURL() // includes query string
		reqHash := requestHash(method, path, c.Body(), schema, userID)

		// ---- Phase 1: read/create "pending" under a short TX with SET LOCAL search_path.
		// replayed is set before the stored response is sent; it is what
		// stops the handler chain from running a second time below.
		replayed := false
		var existing models.IdempotencyKey
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := pinSchema(tx, schema); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "idempotency schema pin failed")
			}

			// Try to find existing key
			if err := tx.Where("key = ?", key).First(&existing).Error; err != nil {
				if err != gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
				}
				// Not found -> create "pending"
				rec := models.IdempotencyKey{
					Key:            key,
					RequestHash:    reqHash,
					Method:         method,
					Path:           path,
					TenantSchema:   schema,
					UserID:         userID,
					ResponseStatus: 0,
				}
				if e2 := tx.Create(&rec).Error; e2 != nil {
					// Could be unique race: read again
					if e3 := tx.Where("key = ?", key).First(&existing).Error; e3 != nil {
						return fiber.NewError(fiber.StatusInternalServerError, "idempotency create failed")
					}
					// fall-through to existing handling below
				} else {
					existing = rec
				}
			}

			switch classifyIdempotent(existing, reqHash) {
			case rejectMismatch:
				return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
			case replayStored:
				replayed = true
				c.Status(existing.ResponseStatus)
				return c.Send(existing.ResponseBody)
			}

			// Pending/in-progress: let the request run; other concurrent calls will see "pending"
			return nil
		})
		if err != nil {
			return err
		}
		if replayed {
			// Stored response already sent; the handler must not run again.
			return nil
		}

		if err := c.Next(); err != nil {
			return err
		}

		// ---- Phase 2: store the response under another short TX
		_ = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := pinSchema(tx, schema); err != nil {
				return nil // best-effort: don't break the successful response
			}
			now := time.Now().UTC()
			status := c.Response().StatusCode()
			resp := c.Response().Body()
			blob := make([]byte, len(resp))
			copy(blob, resp)

			return tx.Model(&models.IdempotencyKey{}).
				Where("key = ?", key).
				Updates(map[string]any{
					"response_status": status,
					"response_body":   blob,
					"completed_at":    &now,
				}).Error
		})

		return nil
	}
}

// pinSchema sets the tenant search_path for the current transaction.
// search_path only exists on Postgres; other dialects already address a
// single schema.
func pinSchema(tx *gorm.DB, schema string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error
}
