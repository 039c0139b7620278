package controllers

import (
	"strconv"

	"handbook-backend/database"
	"handbook-backend/models"

	"github.com/gofiber/fiber/v2"
)

type OfferResponse struct {
	SupplierId   uint     `json:"supplierId"`
	SupplierName string   `json:"supplierName"`
	TotalPrice   *float64 `json:"totalPrice"`
	LeadTimeDays *float64 `json:"leadTimeDays"`
	Currency     *float64 `json:"currency"`
}

// GET /api/products/:id/competition
// Lists every supplier's offer for one product, annotated with the supplier's
// display name. Offers come back in insertion order; no ranking is applied.
func (ctl *ProductController) Competition(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := ctl.DB.First(&product, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	prices := []models.SupplierProductPrice{}
	if err := ctl.DB.Preload("Supplier").Where("product_id = ?", id).
		Order("id asc").Find(&prices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list offers")
	}

	offers := make([]OfferResponse, 0, len(prices))
	for _, p := range prices {
		name := strconv.FormatUint(uint64(p.SupplierId), 10)
		if p.Supplier != nil {
			name = p.Supplier.Name
		}
		offers = append(offers, OfferResponse{
			SupplierId:   p.SupplierId,
			SupplierName: name,
			TotalPrice:   p.TotalPrice,
			LeadTimeDays: p.LeadTimeDays(),
			Currency:     p.Currency,
		})
	}
	return c.JSON(fiber.Map{"offers": offers})
}
