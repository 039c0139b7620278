package controllers

import (
	"time"

	"handbook-backend/database"
	"handbook-backend/middlewares"
	"handbook-backend/models"
	"handbook-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RequestController struct {
	DB *gorm.DB
}

func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{DB: db}
}

type RequestItemDTO struct {
	PartNumber   any      `json:"partNumber"`
	Name         string   `json:"name"`
	Quantity     *int     `json:"quantity"`
	Unit         *string  `json:"unit"`
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	SerialNumber any      `json:"serialNumber"`
	Scheme       *string  `json:"scheme"`
	PosScheme    *string  `json:"posScheme"`
	Material     *string  `json:"material"`
	Comment      *string  `json:"comment"`
	UnitPrice    *float64 `json:"unitPrice"`
	TotalPrice   *float64 `json:"totalPrice"`
	ProductId    *uint    `json:"productId"`
}

type RequestCreateDTO struct {
	IdRequest        any              `json:"idRequest"`
	TypeRequest      *string          `json:"typeRequest"`
	DatetimeComing   string           `json:"datetimeComing"`
	DatetimeDelivery *string          `json:"datetimeDelivery"`
	Status           *string          `json:"status"`
	TotalPrice       *float64         `json:"totalPrice"`
	Items            []RequestItemDTO `json:"items"`
}

type RequestUpdateDTO struct {
	IdRequest        *int     `json:"idRequest"`
	TypeRequest      *string  `json:"typeRequest"`
	DatetimeComing   *string  `json:"datetimeComing"`
	DatetimeDelivery *string  `json:"datetimeDelivery"`
	Status           *string  `json:"status"`
	TotalPrice       *float64 `json:"totalPrice"`
}

type RequestResponse struct {
	Id                uint                 `json:"id"`
	IdRequest         int                  `json:"idRequest"`
	TypeRequest       *string              `json:"typeRequest"`
	TypeDescription   *string              `json:"typeDescription"`
	DatetimeComing    time.Time            `json:"datetimeComing"`
	DatetimeDelivery  *time.Time           `json:"datetimeDelivery"`
	Status            *string              `json:"status"`
	StatusDescription *string              `json:"statusDescription"`
	TotalPrice        *float64             `json:"totalPrice"`
	Items             []models.RequestItem `json:"items"`
}

func serializeRequest(r models.Request) RequestResponse {
	out := RequestResponse{
		Id:               r.Id,
		IdRequest:        r.IdRequest,
		TypeRequest:      r.TypeRequest,
		DatetimeComing:   r.DatetimeComing,
		DatetimeDelivery: r.DatetimeDelivery,
		Status:           r.Status,
		TotalPrice:       r.TotalPrice,
		Items:            r.Items,
	}
	if out.Items == nil {
		out.Items = []models.RequestItem{}
	}
	if r.Type != nil {
		out.TypeDescription = &r.Type.Description
	}
	if r.StatusRel != nil {
		out.StatusDescription = &r.StatusRel.Description
	}
	return out
}

// parseTimestamp accepts the ISO shapes the UI submits.
func parseTimestamp(value string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GET /api/requests
// Items are fetched separately and grouped onto their request in memory
// (Preload); a request with no items carries an empty list, never null.
func (ctl *RequestController) List(c *fiber.Ctx) error {
	requests := []models.Request{}
	if err := ctl.DB.
		Preload("Items").
		Preload("Type").
		Preload("StatusRel").
		Order("datetime_coming desc").
		Find(&requests).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list requests")
	}

	out := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, serializeRequest(r))
	}
	return c.JSON(out)
}

// POST /api/requests
// The header row and every item row are inserted in one transaction: any
// item failure rolls the whole creation back, so readers never observe a
// partial request.
func (ctl *RequestController) Create(c *fiber.Ctx) error {
	var in RequestCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	idRequest, err := utils.CoerceToInt(in.IdRequest)
	if err != nil || idRequest == nil {
		return fiber.NewError(fiber.StatusBadRequest, `Field "idRequest" must be a number`)
	}

	if in.DatetimeComing == "" {
		return fiber.NewError(fiber.StatusBadRequest, `Field "datetimeComing" must be a valid ISO date string`)
	}
	coming, ok := parseTimestamp(in.DatetimeComing)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, `Field "datetimeComing" must be a valid ISO date string`)
	}

	var delivery *time.Time
	if in.DatetimeDelivery != nil && *in.DatetimeDelivery != "" {
		t, ok := parseTimestamp(*in.DatetimeDelivery)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, `Field "datetimeDelivery" must be a valid ISO date string`)
		}
		delivery = &t
	}

	items := make([]models.RequestItem, 0, len(in.Items))
	for _, itemIn := range in.Items {
		if itemIn.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, `Each request item must include "name"`)
		}
		partNumber, err := utils.CoerceToString(itemIn.PartNumber)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, `Field "partNumber" must be a string or number if provided`)
		}
		serialNumber, err := utils.CoerceToInt(itemIn.SerialNumber)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, `Field "serialNumber" must be an integer if provided`)
		}
		items = append(items, models.RequestItem{
			PartNumber:   partNumber,
			Name:         itemIn.Name,
			Quantity:     itemIn.Quantity,
			Unit:         itemIn.Unit,
			Brand:        itemIn.Brand,
			Model:        itemIn.Model,
			SerialNumber: serialNumber,
			Scheme:       itemIn.Scheme,
			PosScheme:    itemIn.PosScheme,
			Material:     itemIn.Material,
			Comment:      itemIn.Comment,
			UnitPrice:    itemIn.UnitPrice,
			TotalPrice:   itemIn.TotalPrice,
			ProductId:    itemIn.ProductId,
		})
	}

	request := models.Request{
		IdRequest:        *idRequest,
		TypeRequest:      in.TypeRequest,
		DatetimeComing:   coming,
		DatetimeDelivery: delivery,
		Status:           in.Status,
		TotalPrice:       in.TotalPrice,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		// Header first: items reference its generated id.
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].RequestId = &request.Id
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "A request with this idRequest already exists")
		}
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown request type or status")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not create request")
	}

	var out models.Request
	if err := ctl.DB.Preload("Items").Preload("Type").Preload("StatusRel").
		First(&out, "id = ?", request.Id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload request")
	}
	return c.Status(fiber.StatusCreated).JSON(serializeRequest(out))
}

// PUT /api/requests/:id
func (ctl *RequestController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	var in RequestUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var existing models.Request
	if err := ctl.DB.First(&existing, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "request not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := map[string]any{}
	if in.IdRequest != nil {
		updates["id_request"] = *in.IdRequest
	}
	if in.TypeRequest != nil {
		updates["type_request"] = *in.TypeRequest
	}
	if in.DatetimeComing != nil {
		t, ok := parseTimestamp(*in.DatetimeComing)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, `Field "datetimeComing" must be a valid ISO date string`)
		}
		updates["datetime_coming"] = t
	}
	if in.DatetimeDelivery != nil {
		if *in.DatetimeDelivery == "" {
			updates["datetime_delivery"] = nil
		} else {
			t, ok := parseTimestamp(*in.DatetimeDelivery)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, `Field "datetimeDelivery" must be a valid ISO date string`)
			}
			updates["datetime_delivery"] = t
		}
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.TotalPrice != nil {
		updates["total_price"] = *in.TotalPrice
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&models.Request{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "A request with this idRequest already exists")
			}
			if database.IsForeignKeyViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "unknown request type or status")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not update request")
		}
	}

	var out models.Request
	if err := ctl.DB.Preload("Items").Preload("Type").Preload("StatusRel").
		First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload request")
	}
	return c.JSON(serializeRequest(out))
}

// DELETE /api/requests/:id
// Items never outlive their request.
func (ctl *RequestController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	var existing models.Request
	if err := ctl.DB.First(&existing, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "request not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&models.RequestItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Request{}, "id = ?", id).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete request")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
