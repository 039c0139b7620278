package models

import (
	"time"

	"gorm.io/datatypes"
)

// IdempotencyKey stores the first completed response for a mutating request
// so retries with the same Idempotency-Key header replay it.
type IdempotencyKey struct {
	Id             uint           `json:"id" gorm:"primaryKey"`
	Key            string         `json:"key" gorm:"size:128;uniqueIndex"`
	RequestHash    string         `json:"requestHash" gorm:"size:64"` // sha256 of method|path|body
	Method         string         `json:"method" gorm:"size:10"`
	Path           string         `json:"path" gorm:"size:255"`
	ResponseStatus int            `json:"responseStatus"` // 0 => handler not completed yet
	ResponseBody   datatypes.JSON `json:"-"`
	CreatedAt      time.Time      `json:"createdAt"`
	CompletedAt    *time.Time     `json:"completedAt"`
}

func (IdempotencyKey) TableName() string { return "idempotency_keys" }
