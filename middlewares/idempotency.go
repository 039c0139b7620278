package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"handbook-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Idempotency processes the Idempotency-Key header for mutating HTTP methods.
// The first completed response for a key is stored and replayed on retries;
// reusing a key with a different request hash is a conflict. Records are
// written in their own short transactions, independent of the handler's.
func Idempotency(db *gorm.DB) fiber.Handler {
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
			return fiber.NewError(fiber.StatusBadRequest, "Idempotency-Key too long")
		}

		path := c.OriginalURL() // includes query string
		h := sha256.New()
		h.Write([]byte(method))
		h.Write([]byte{'\n'})
		h.Write([]byte(path))
		h.Write([]byte{'\n'})
		h.Write(c.Body())
		reqHash := hex.EncodeToString(h.Sum(nil))

		// Phase 1: find the key or register it as pending.
		var existing models.IdempotencyKey
		replayed := false
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("key = ?", key).First(&existing).Error; err != nil {
				if err != gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
				}
				rec := models.IdempotencyKey{
					Key:         key,
					RequestHash: reqHash,
					Method:      method,
					Path:        path,
				}
				// DoNothing keeps the transaction usable when a concurrent
				// retry registered the key first; the re-select reads whoever
				// won the insert.
				if e2 := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error; e2 != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "idempotency create failed")
				}
				if e3 := tx.Where("key = ?", key).First(&existing).Error; e3 != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
				}
			}

			if existing.RequestHash != reqHash {
				return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
			}
			if existing.ResponseStatus != 0 && existing.ResponseBody != nil {
				c.Status(existing.ResponseStatus)
				replayed = true
				return c.Send(existing.ResponseBody)
			}
			return nil
		})
		if err != nil || replayed {
			return err
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Phase 2: store the completed response, best-effort.
		_ = db.Transaction(func(tx *gorm.DB) error {
			now := time.Now().UTC()
			resp := c.Response().Body()
			blob := make([]byte, len(resp))
			copy(blob, resp)

			return tx.Model(&models.IdempotencyKey{}).
				Where("key = ?", key).
				Updates(map[string]any{
					"response_status": c.Response().StatusCode(),
					"response_body":   blob,
					"completed_at":    &now,
				}).Error
		})

		return nil
	}
}
