package models

type Supplier struct {
	Id      uint     `json:"id" gorm:"primaryKey"`
	Name    string   `json:"name" gorm:"size:100;not null"`
	Address *string  `json:"address" gorm:"size:200"`
	Contact *string  `json:"contact" gorm:"size:100"`
	Website *string  `json:"website" gorm:"size:100"`
	Rating  *float64 `json:"rating"`

	Prices []SupplierProductPrice `json:"-" gorm:"foreignKey:SupplierId;constraint:OnDelete:CASCADE"`
}

func (Supplier) TableName() string { return "suppliers" }
