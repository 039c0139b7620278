package controllers

import (
	"handbook-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TypesController struct {
	DB *gorm.DB
}

func NewTypesController(db *gorm.DB) *TypesController {
	return &TypesController{DB: db}
}

// LookupOption is the {id, name} shape the UI's dropdowns consume.
type LookupOption struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// GET /api/types
func (ctl *TypesController) List(c *fiber.Ctx) error {
	var types []models.RequestType
	if err := ctl.DB.Order("code asc").Find(&types).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list request types")
	}
	var statuses []models.RequestStatus
	if err := ctl.DB.Order("code asc").Find(&statuses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list request statuses")
	}
	var categories []models.ProductCategory
	if err := ctl.DB.Order("code asc").Find(&categories).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list product categories")
	}

	typeOpts := make([]LookupOption, 0, len(types))
	for _, t := range types {
		typeOpts = append(typeOpts, LookupOption{Id: t.Code, Name: t.Description})
	}
	statusOpts := make([]LookupOption, 0, len(statuses))
	for _, s := range statuses {
		statusOpts = append(statusOpts, LookupOption{Id: s.Code, Name: s.Description})
	}
	categoryOpts := make([]LookupOption, 0, len(categories))
	for _, cat := range categories {
		categoryOpts = append(categoryOpts, LookupOption{Id: cat.Code, Name: cat.Description})
	}

	return c.JSON(fiber.Map{
		"request_types":      typeOpts,
		"request_statuses":   statusOpts,
		"product_categories": categoryOpts,
	})
}
