package controllers

import (
	"fmt"
	"strconv"

	"handbook-backend/database"
	"handbook-backend/middlewares"
	"handbook-backend/models"
	"handbook-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PriceController struct {
	DB *gorm.DB
}

func NewPriceController(db *gorm.DB) *PriceController {
	return &PriceController{DB: db}
}

type PriceCreateDTO struct {
	ProductId    *uint    `json:"productId" validate:"required"`
	SupplierId   *uint    `json:"supplierId" validate:"required"`
	TotalPrice   *float64 `json:"totalPrice"`
	LeadTimeDays *float64 `json:"leadTimeDays"`
	Currency     *float64 `json:"currency"`
}

type PriceResponse struct {
	Id           uint     `json:"id"`
	ProductId    uint     `json:"productId"`
	SupplierId   uint     `json:"supplierId"`
	TotalPrice   *float64 `json:"totalPrice"`
	LeadTimeDays *float64 `json:"leadTimeDays"`
	Currency     *float64 `json:"currency"`
}

func serializePrice(p models.SupplierProductPrice) PriceResponse {
	return PriceResponse{
		Id:           p.Id,
		ProductId:    p.ProductId,
		SupplierId:   p.SupplierId,
		TotalPrice:   p.TotalPrice,
		LeadTimeDays: p.LeadTimeDays(),
		Currency:     p.Currency,
	}
}

// GET /api/supplier-prices?productId=&supplierId=
func (ctl *PriceController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&models.SupplierProductPrice{})
	if raw := c.Query("productId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, `Query "productId" must be an integer`)
		}
		q = q.Where("product_id = ?", id)
	}
	if raw := c.Query("supplierId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, `Query "supplierId" must be an integer`)
		}
		q = q.Where("supplier_id = ?", id)
	}

	prices := []models.SupplierProductPrice{}
	if err := q.Order("id desc").Find(&prices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list supplier prices")
	}
	out := make([]PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, serializePrice(p))
	}
	return c.JSON(out)
}

// POST /api/supplier-prices
func (ctl *PriceController) Create(c *fiber.Ctx) error {
	var in PriceCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var product models.Product
	if err := ctl.DB.First(&product, "id = ?", *in.ProductId).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Product %d not found", *in.ProductId))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	var supplier models.Supplier
	if err := ctl.DB.First(&supplier, "id = ?", *in.SupplierId).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Supplier %d not found", *in.SupplierId))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	price := models.SupplierProductPrice{
		ProductId:  *in.ProductId,
		SupplierId: *in.SupplierId,
		TotalPrice: in.TotalPrice,
		Currency:   in.Currency,
	}
	if in.LeadTimeDays != nil {
		d := models.DurationFromDays(*in.LeadTimeDays)
		price.LeadTime = &d
	}

	if err := ctl.DB.Create(&price).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "A price for this product and supplier already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not create supplier price")
	}
	return c.Status(fiber.StatusCreated).JSON(serializePrice(price))
}

// PUT /api/supplier-prices/:id
func (ctl *PriceController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid price id")
	}

	// Raw map instead of a DTO: an explicit JSON null clears the stored
	// value, an absent key leaves it untouched.
	payload := map[string]any{}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}

	var existing models.SupplierProductPrice
	if err := ctl.DB.First(&existing, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "supplier price not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := map[string]any{}
	if raw, ok := payload["totalPrice"]; ok {
		v, err := utils.CoerceToFloat(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, `Field "totalPrice" must be a number`)
		}
		if v == nil {
			updates["total_price"] = nil
		} else {
			updates["total_price"] = *v
		}
	}
	if raw, ok := payload["leadTimeDays"]; ok {
		v, err := utils.CoerceToFloat(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, `Field "leadTimeDays" must be a number`)
		}
		if v == nil {
			updates["lead_time"] = nil
		} else {
			updates["lead_time"] = models.DurationFromDays(*v)
		}
	}
	if raw, ok := payload["currency"]; ok {
		v, err := utils.CoerceToFloat(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, `Field "currency" must be a number`)
		}
		if v == nil {
			updates["cy"] = nil
		} else {
			updates["cy"] = *v
		}
	}
	if len(updates) > 0 {
		if err := ctl.DB.Model(&models.SupplierProductPrice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update supplier price")
		}
	}

	var out models.SupplierProductPrice
	if err := ctl.DB.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload supplier price")
	}
	return c.JSON(serializePrice(out))
}

// DELETE /api/supplier-prices/:id
func (ctl *PriceController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid price id")
	}

	var existing models.SupplierProductPrice
	if err := ctl.DB.First(&existing, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "supplier price not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := ctl.DB.Delete(&models.SupplierProductPrice{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete supplier price")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
