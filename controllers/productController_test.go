package controllers_test

import (
	"net/http"
	"testing"

	"handbook-backend/models"

	"github.com/stretchr/testify/require"
)

func TestCreateProductCoercesNumericPartNumber(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/products",
		map[string]any{"partNumber": 4711, "name": "Valve"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeMap(t, resp)
	require.Equal(t, "4711", created["partNumber"])
	require.Nil(t, created["serialNumber"])
	require.Nil(t, created["categoryDescription"])
}

func TestCreateProductValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/products", map[string]any{"name": "Valve"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `Field "partNumber" is required`, decodeMap(t, resp)["message"])

	resp = doRequest(t, app, http.MethodPost, "/api/products", map[string]any{"partNumber": "  ", "name": "Valve"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/products", map[string]any{"partNumber": "PN-1"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `Field "name" is required`, decodeMap(t, resp)["message"])

	resp = doRequest(t, app, http.MethodPost, "/api/products",
		map[string]any{"partNumber": "PN-1", "name": "Valve", "serialNumber": "abc"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `Field "serialNumber" must be an integer if provided`, decodeMap(t, resp)["message"])

	resp = doRequest(t, app, http.MethodPost, "/api/products",
		map[string]any{"partNumber": "PN-1", "name": "Valve", "category": "nonsense"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListProductsNewestFirstWithCategory(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/products",
		map[string]any{"partNumber": "PN-1", "name": "Old part"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, app, http.MethodPost, "/api/products",
		map[string]any{"partNumber": "PN-2", "name": "New valve", "category": "valve", "serialNumber": "12"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeSlice(t, resp)
	require.Len(t, list, 2)

	first := list[0].(map[string]any)
	require.Equal(t, "New valve", first["name"])
	require.Equal(t, "valve", first["category"])
	require.Equal(t, "Valve", first["categoryDescription"])
	require.EqualValues(t, 12, first["serialNumber"])

	second := list[1].(map[string]any)
	require.Equal(t, "Old part", second["name"])
	require.Nil(t, second["categoryDescription"])
}

func TestDeleteProductNullsItemReferences(t *testing.T) {
	app, db := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/suppliers", map[string]any{"name": "Bolt AG"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, app, http.MethodPost, "/api/products",
		map[string]any{"partNumber": "PN-1", "name": "Valve"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, app, http.MethodPost, "/api/supplier-prices",
		map[string]any{"productId": 1, "supplierId": 1}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{
		"idRequest":      7,
		"datetimeComing": "2024-01-01T00:00:00Z",
		"items":          []map[string]any{{"name": "Valve", "productId": 1}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/products/1", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// price offers are gone with the product
	var prices int64
	require.NoError(t, db.Model(&models.SupplierProductPrice{}).Count(&prices).Error)
	require.Zero(t, prices)

	// the request item survives with its product reference nulled
	var items []models.RequestItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	require.Nil(t, items[0].ProductId)
	require.Equal(t, "Valve", items[0].Name)
}

func TestCompetitionOffers(t *testing.T) {
	app, _ := newTestApp(t)

	for _, name := range []string{"Bolt AG", "Nut GmbH"} {
		resp := doRequest(t, app, http.MethodPost, "/api/suppliers", map[string]any{"name": name}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp := doRequest(t, app, http.MethodPost, "/api/products",
		map[string]any{"partNumber": "PN-1", "name": "Valve"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/supplier-prices",
		map[string]any{"productId": 1, "supplierId": 1, "totalPrice": 120.0, "leadTimeDays": 7, "currency": 1.0}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, app, http.MethodPost, "/api/supplier-prices",
		map[string]any{"productId": 1, "supplierId": 2, "totalPrice": 99.5}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/products/1/competition", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	offers := body["offers"].([]any)
	require.Len(t, offers, 2)

	first := offers[0].(map[string]any)
	require.EqualValues(t, 1, first["supplierId"])
	require.Equal(t, "Bolt AG", first["supplierName"])
	require.EqualValues(t, 120.0, first["totalPrice"])
	require.EqualValues(t, 7, first["leadTimeDays"])

	second := offers[1].(map[string]any)
	require.Equal(t, "Nut GmbH", second["supplierName"])
	require.Nil(t, second["leadTimeDays"])

	resp = doRequest(t, app, http.MethodGet, "/api/products/42/competition", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
