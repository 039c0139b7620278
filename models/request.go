package models

import "time"

// Request is a purchase/survey order header. IdRequest is the
// business-assigned identifier (unique); Id is the surrogate key items join on.
type Request struct {
	Id               uint       `json:"id" gorm:"primaryKey"`
	IdRequest        int        `json:"idRequest" gorm:"column:id_request;not null;uniqueIndex:uq_requests_id_request"`
	TypeRequest      *string    `json:"typeRequest" gorm:"size:50"`
	DatetimeComing   time.Time  `json:"datetimeComing" gorm:"not null"`
	DatetimeDelivery *time.Time `json:"datetimeDelivery"`
	Status           *string    `json:"status" gorm:"size:50"`
	TotalPrice       *float64   `json:"totalPrice"`

	Type      *RequestType   `json:"-" gorm:"foreignKey:TypeRequest;references:Code"`
	StatusRel *RequestStatus `json:"-" gorm:"foreignKey:Status;references:Code"`
	Items     []RequestItem  `json:"items" gorm:"foreignKey:RequestId;constraint:OnDelete:CASCADE"`
}

func (Request) TableName() string { return "requests" }

// RequestItem is a denormalized snapshot of product attributes at request
// time, not a live join to Product. ProductId is nulled (not cascaded) when
// the referenced product is deleted.
type RequestItem struct {
	Id           uint     `json:"id" gorm:"primaryKey"`
	PartNumber   *string  `json:"partNumber" gorm:"size:100"`
	Name         string   `json:"name" gorm:"size:100;not null"`
	Quantity     *int     `json:"quantity"`
	Unit         *string  `json:"unit" gorm:"size:20"`
	Brand        *string  `json:"brand" gorm:"size:100"`
	Model        *string  `json:"model" gorm:"size:100"`
	SerialNumber *int     `json:"serialNumber"`
	Scheme       *string  `json:"scheme" gorm:"size:50"`
	PosScheme    *string  `json:"posScheme" gorm:"size:100"`
	Material     *string  `json:"material" gorm:"size:50"`
	Comment      *string  `json:"comment" gorm:"size:300"`
	UnitPrice    *float64 `json:"unitPrice"`
	TotalPrice   *float64 `json:"totalPrice"`
	RequestId    *uint    `json:"requestId" gorm:"index"`
	ProductId    *uint    `json:"productId"`

	Product *Product `json:"-" gorm:"foreignKey:ProductId;constraint:OnDelete:SET NULL"`
}

func (RequestItem) TableName() string { return "request_items" }
