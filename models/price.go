package models

import "time"

// SupplierProductPrice is one supplier's quote for one product: at most one
// row per (product, supplier) pair. LeadTime is persisted as an integer
// duration; the API speaks fractional days (see controllers).
type SupplierProductPrice struct {
	Id         uint           `json:"id" gorm:"primaryKey"`
	ProductId  uint           `json:"productId" gorm:"not null;uniqueIndex:uq_supplier_product,priority:1"`
	SupplierId uint           `json:"supplierId" gorm:"not null;uniqueIndex:uq_supplier_product,priority:2"`
	TotalPrice *float64       `json:"totalPrice"`
	LeadTime   *time.Duration `json:"-" gorm:"column:lead_time"`
	Currency   *float64       `json:"currency" gorm:"column:cy"`

	Product  *Product  `json:"-" gorm:"foreignKey:ProductId"`
	Supplier *Supplier `json:"-" gorm:"foreignKey:SupplierId"`
}

func (SupplierProductPrice) TableName() string { return "supplier_product_prices" }

// LeadTimeDays converts the stored duration to fractional days for the API.
func (p *SupplierProductPrice) LeadTimeDays() *float64 {
	if p.LeadTime == nil {
		return nil
	}
	days := p.LeadTime.Hours() / 24
	return &days
}

// DurationFromDays converts the API's fractional-day lead time to a duration.
func DurationFromDays(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
