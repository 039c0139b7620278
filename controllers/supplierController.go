package controllers

import (
	"strings"

	"handbook-backend/database"
	"handbook-backend/middlewares"
	"handbook-backend/models"
	"handbook-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierController struct {
	DB *gorm.DB
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

type SupplierCreateDTO struct {
	Name    string   `json:"name" validate:"required"`
	Address *string  `json:"address"`
	Contact *string  `json:"contact"`
	Website *string  `json:"website"`
	Rating  *float64 `json:"rating"`
}

type SupplierUpdateDTO struct {
	Name    *string  `json:"name"`
	Address *string  `json:"address"`
	Contact *string  `json:"contact"`
	Website *string  `json:"website"`
	Rating  *float64 `json:"rating"`
}

// GET /api/suppliers
func (ctl *SupplierController) List(c *fiber.Ctx) error {
	suppliers := []models.Supplier{}
	if err := ctl.DB.Order("name asc").Find(&suppliers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list suppliers")
	}
	return c.JSON(suppliers)
}

// POST /api/suppliers
func (ctl *SupplierController) Create(c *fiber.Ctx) error {
	var in SupplierCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, `Field "name" is required`)
	}

	supplier := models.Supplier{
		Name:    name,
		Address: in.Address,
		Contact: in.Contact,
		Website: in.Website,
		Rating:  in.Rating,
	}
	if err := ctl.DB.Create(&supplier).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create supplier")
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// PUT /api/suppliers/:id
func (ctl *SupplierController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid supplier id")
	}

	var in SupplierUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	if in.Name != nil && *in.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, `Field "name" is required`)
	}

	var existing models.Supplier
	if err := ctl.DB.First(&existing, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "supplier not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := ctl.DB.Model(&models.Supplier{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update supplier")
		}
	}

	var out models.Supplier
	if err := ctl.DB.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload supplier")
	}
	return c.JSON(out)
}

// DELETE /api/suppliers/:id
// Removing a supplier also removes its price offers.
func (ctl *SupplierController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid supplier id")
	}

	var existing models.Supplier
	if err := ctl.DB.First(&existing, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "supplier not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("supplier_id = ?", id).Delete(&models.SupplierProductPrice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Supplier{}, "id = ?", id).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete supplier")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
