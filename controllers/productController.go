package controllers

import (
	"fmt"

	"handbook-backend/database"
	"handbook-backend/middlewares"
	"handbook-backend/models"
	"handbook-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// PartNumber and SerialNumber arrive as either JSON strings or numbers
// (spreadsheet paste), so they bind as any and get coerced.
type ProductCreateDTO struct {
	PartNumber   any     `json:"partNumber"`
	Name         string  `json:"name" validate:"required"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	SerialNumber any     `json:"serialNumber"`
	Scheme       *string `json:"scheme"`
	PosScheme    *string `json:"posScheme"`
	Material     *string `json:"material"`
	Size         *string `json:"size"`
	Comment      *string `json:"comment"`
	Category     *string `json:"category"`
}

type ProductUpdateDTO struct {
	PartNumber   *string  `json:"partNumber"`
	Name         *string  `json:"name"`
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	SerialNumber *int     `json:"serialNumber"`
	Scheme       *string  `json:"scheme"`
	PosScheme    *string  `json:"posScheme"`
	Material     *string  `json:"material"`
	Size         *string  `json:"size"`
	Comment      *string  `json:"comment"`
	Category     *string  `json:"category"`
}

type ProductResponse struct {
	models.Product
	CategoryDescription *string `json:"categoryDescription"`
}

func serializeProduct(p models.Product) ProductResponse {
	out := ProductResponse{Product: p}
	if p.CategoryRel != nil {
		out.CategoryDescription = &p.CategoryRel.Description
	}
	return out
}

// GET /api/products
func (ctl *ProductController) List(c *fiber.Ctx) error {
	products := []models.Product{}
	if err := ctl.DB.Preload("CategoryRel").Order("id desc").Find(&products).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
	}
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, serializeProduct(p))
	}
	return c.JSON(out)
}

// POST /api/products
func (ctl *ProductController) Create(c *fiber.Ctx) error {
	var in ProductCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	partNumber, err := utils.CoerceToString(in.PartNumber)
	if err != nil || partNumber == nil {
		return fiber.NewError(fiber.StatusBadRequest, `Field "partNumber" is required`)
	}

	serialNumber, err := utils.CoerceToInt(in.SerialNumber)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, `Field "serialNumber" must be an integer if provided`)
	}

	if in.Category != nil && *in.Category != "" {
		var count int64
		if err := ctl.DB.Model(&models.ProductCategory{}).Where("code = ?", *in.Category).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "db error")
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Category %q does not exist. Seed it first or use another code.", *in.Category))
		}
	}

	product := models.Product{
		PartNumber:   *partNumber,
		Name:         in.Name,
		Brand:        in.Brand,
		Model:        in.Model,
		SerialNumber: serialNumber,
		Scheme:       in.Scheme,
		PosScheme:    in.PosScheme,
		Material:     in.Material,
		Size:         in.Size,
		Comment:      in.Comment,
		Category:     in.Category,
	}
	if err := ctl.DB.Create(&product).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown product category")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(serializeProduct(product))
}

// PUT /api/products/:id
func (ctl *ProductController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var in ProductUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	if in.PartNumber != nil && *in.PartNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, `Field "partNumber" is required`)
	}
	if in.Name != nil && *in.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, `Field "name" is required`)
	}

	var existing models.Product
	if err := ctl.DB.First(&existing, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := ctl.DB.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "unknown product category")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not update product")
		}
	}

	var out models.Product
	if err := ctl.DB.Preload("CategoryRel").First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload product")
	}
	return c.JSON(serializeProduct(out))
}

// DELETE /api/products/:id
// Removing a product removes its price offers and nulls the product
// reference on request items; the items themselves survive.
func (ctl *ProductController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var existing models.Product
	if err := ctl.DB.First(&existing, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.SupplierProductPrice{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RequestItem{}).Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
