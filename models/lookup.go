package models

// Lookup tables are small fixed enumerations referenced by foreign key.
// Codes are the primary key; descriptions are display text for the UI.

type RequestType struct {
	Code        string `json:"code" gorm:"primaryKey;size:50"`
	Description string `json:"description" gorm:"size:255;not null"`
}

func (RequestType) TableName() string { return "request_types" }

type RequestStatus struct {
	Code        string `json:"code" gorm:"primaryKey;size:50"`
	Description string `json:"description" gorm:"size:255;not null"`
}

func (RequestStatus) TableName() string { return "request_statuses" }

type ProductCategory struct {
	Code        string `json:"code" gorm:"primaryKey;size:50"`
	Description string `json:"description" gorm:"size:255;not null"`
}

func (ProductCategory) TableName() string { return "product_categories" }
