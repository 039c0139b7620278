package controllers_test

import (
	"net/http"
	"testing"

	"handbook-backend/models"

	"github.com/stretchr/testify/require"
)

func TestCreateRequestWithItems(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{
		"idRequest":      42,
		"typeRequest":    "exam",
		"datetimeComing": "2024-01-01T00:00:00Z",
		"status":         "new",
		"items":          []map[string]any{{"name": "Bolt", "quantity": 10}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeMap(t, resp)
	require.EqualValues(t, 42, created["idRequest"])
	require.Equal(t, "Market survey", created["typeDescription"])
	require.Equal(t, "New request", created["statusDescription"])

	items := created["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	require.Equal(t, "Bolt", item["name"])
	require.EqualValues(t, 10, item["quantity"])
	require.NotZero(t, item["id"])
	require.EqualValues(t, created["id"], item["requestId"])

	// a subsequent list shows the item nested under its request
	resp = doRequest(t, app, http.MethodGet, "/api/requests", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeSlice(t, resp)
	require.Len(t, list, 1)
	nested := list[0].(map[string]any)["items"].([]any)
	require.Len(t, nested, 1)
	require.Equal(t, "Bolt", nested[0].(map[string]any)["name"])
}

func TestCreateRequestItemWithoutNameRollsBack(t *testing.T) {
	app, db := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{
		"idRequest":      1,
		"datetimeComing": "2024-01-01T00:00:00Z",
		"items":          []map[string]any{{"name": "A"}, {"name": ""}},
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `Each request item must include "name"`, decodeMap(t, resp)["message"])

	// nothing persisted: neither the header nor the valid first item
	var requests, items int64
	require.NoError(t, db.Model(&models.Request{}).Count(&requests).Error)
	require.NoError(t, db.Model(&models.RequestItem{}).Count(&items).Error)
	require.Zero(t, requests)
	require.Zero(t, items)
}

func TestCreateRequestAcceptsNegativeQuantity(t *testing.T) {
	app, _ := newTestApp(t)

	// corrective entries from the legacy UI carry negative quantities
	resp := doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{
		"idRequest":      7,
		"datetimeComing": "2024-01-01T00:00:00Z",
		"items":          []map[string]any{{"name": "Bolt", "quantity": -1}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	items := decodeMap(t, resp)["items"].([]any)
	require.Len(t, items, 1)
	require.EqualValues(t, -1, items[0].(map[string]any)["quantity"])
}

func TestCreateRequestValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/requests",
		map[string]any{"datetimeComing": "2024-01-01T00:00:00Z"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `Field "idRequest" must be a number`, decodeMap(t, resp)["message"])

	resp = doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{"idRequest": 1}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `Field "datetimeComing" must be a valid ISO date string`, decodeMap(t, resp)["message"])

	resp = doRequest(t, app, http.MethodPost, "/api/requests",
		map[string]any{"idRequest": 1, "datetimeComing": "not a date"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/requests",
		map[string]any{"idRequest": 1, "datetimeComing": "2024-01-01T00:00:00Z", "datetimeDelivery": "nope"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `Field "datetimeDelivery" must be a valid ISO date string`, decodeMap(t, resp)["message"])

	// idRequest as a numeric string is accepted
	resp = doRequest(t, app, http.MethodPost, "/api/requests",
		map[string]any{"idRequest": "17", "datetimeComing": "2024-01-01T00:00:00Z"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateRequestDuplicateIdRequest(t *testing.T) {
	app, _ := newTestApp(t)

	payload := map[string]any{"idRequest": 5, "datetimeComing": "2024-01-01T00:00:00Z"}
	resp := doRequest(t, app, http.MethodPost, "/api/requests", payload, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/requests", payload, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListRequestsGroupsItems(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{
		"idRequest":      1,
		"datetimeComing": "2024-02-01T00:00:00Z",
		"items":          []map[string]any{{"name": "Bolt"}, {"name": "Nut"}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{
		"idRequest":      2,
		"datetimeComing": "2024-03-01T00:00:00Z",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/requests", nil, nil)
	list := decodeSlice(t, resp)
	require.Len(t, list, 2)

	// newest arrival first
	newest := list[0].(map[string]any)
	require.EqualValues(t, 2, newest["idRequest"])
	// zero items come back as an empty list, never null
	require.NotNil(t, newest["items"])
	require.Empty(t, newest["items"].([]any))

	withItems := list[1].(map[string]any)
	require.Len(t, withItems["items"].([]any), 2)
}

func TestUpdateRequest(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{
		"idRequest":      9,
		"datetimeComing": "2024-01-01T00:00:00Z",
		"status":         "new",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPut, "/api/requests/1",
		map[string]any{"status": "completed", "totalPrice": 150.0}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeMap(t, resp)
	require.Equal(t, "completed", updated["status"])
	require.Equal(t, "Completed", updated["statusDescription"])
	require.EqualValues(t, 150.0, updated["totalPrice"])
	require.EqualValues(t, 9, updated["idRequest"]) // merge keeps the rest

	resp = doRequest(t, app, http.MethodPut, "/api/requests/77", map[string]any{"status": "new"}, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteRequestRemovesItems(t *testing.T) {
	app, db := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/requests", map[string]any{
		"idRequest":      3,
		"datetimeComing": "2024-01-01T00:00:00Z",
		"items":          []map[string]any{{"name": "Bolt"}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/requests/1", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var items int64
	require.NoError(t, db.Model(&models.RequestItem{}).Count(&items).Error)
	require.Zero(t, items)
}
