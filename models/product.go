package models

type Product struct {
	Id           uint    `json:"id" gorm:"primaryKey"`
	PartNumber   string  `json:"partNumber" gorm:"size:100;not null"`
	Name         string  `json:"name" gorm:"size:100;not null"`
	Brand        *string `json:"brand" gorm:"size:100"`
	Model        *string `json:"model" gorm:"size:100"`
	SerialNumber *int    `json:"serialNumber"`
	Scheme       *string `json:"scheme" gorm:"size:50"`
	PosScheme    *string `json:"posScheme" gorm:"size:100"`
	Material     *string `json:"material" gorm:"size:50"`
	Size         *string `json:"size" gorm:"size:50"`
	Comment      *string `json:"comment" gorm:"size:300"`
	Category     *string `json:"category" gorm:"size:50"`

	CategoryRel *ProductCategory       `json:"-" gorm:"foreignKey:Category;references:Code"`
	Prices      []SupplierProductPrice `json:"-" gorm:"foreignKey:ProductId;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }
