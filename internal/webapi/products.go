package webapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kysrn-ww/mathi-phone/internal/catalog"
	"github.com/kysrn-ww/mathi-phone/internal/domain"
)

type productPayload struct {
	Name           string   `json:"name"`
	Model          string   `json:"model"`
	Type           string   `json:"type"`
	Storage        string   `json:"storage"`
	Color          string   `json:"color"`
	Condition      string   `json:"condition"`
	BatteryHealth  int      `json:"battery_health"`
	PriceARS       float64  `json:"price_ars"`
	PriceUSD       float64  `json:"price_usd"`
	ScreenSize     string   `json:"screen_size"`
	Chip           string   `json:"chip"`
	Camera         string   `json:"camera"`
	Features       []string `json:"features"`
	Available      *bool    `json:"available"`
	WarrantyMonths int      `json:"warranty_months"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"image_url"`
}

func (s *Server) listProducts(c echo.Context) error {
	filter := domain.ProductFilter{
		Model:     strings.TrimSpace(c.QueryParam("model")),
		Type:      strings.TrimSpace(c.QueryParam("type")),
		Condition: strings.TrimSpace(c.QueryParam("condition")),
		Category:  strings.TrimSpace(c.QueryParam("category")),
		Search:    strings.TrimSpace(c.QueryParam("search")),
	}
	if v := c.QueryParam("available"); v != "" {
		avail, err := strconv.ParseBool(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid available flag", nil)
		}
		filter.Available = &avail
	}
	if v := c.QueryParam("min_battery"); v != "" {
		min, err := strconv.Atoi(v)
		if err != nil || min < 0 || min > 100 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "min_battery must be between 0 and 100", nil)
		}
		filter.MinBattery = &min
	}
	if v := c.QueryParam("max_price_ars"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil || max < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "max_price_ars must be non-negative", nil)
		}
		filter.MaxPriceARS = &max
	}
	if v := c.QueryParam("max_price_usd"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil || max < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "max_price_usd must be non-negative", nil)
		}
		filter.MaxPriceUSD = &max
	}

	limit := catalog.DefaultLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > catalog.MaxLimit {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be between 1 and 100", nil)
		}
		limit = n
	}
	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "offset must be non-negative", nil)
		}
		offset = n
	}

	page, total, err := s.catalog.List(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, page, total, limit, offset)
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.catalog.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func (s *Server) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg := validateProduct(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	available := true
	if payload.Available != nil {
		available = *payload.Available
	}
	features := payload.Features
	if features == nil {
		features = []string{}
	}

	p, err := s.catalog.Create(c.Request().Context(), domain.Product{
		Name:           payload.Name,
		Model:          payload.Model,
		Type:           payload.Type,
		Storage:        payload.Storage,
		Color:          payload.Color,
		Condition:      payload.Condition,
		BatteryHealth:  payload.BatteryHealth,
		PriceARS:       payload.PriceARS,
		PriceUSD:       payload.PriceUSD,
		ScreenSize:     payload.ScreenSize,
		Chip:           payload.Chip,
		Camera:         payload.Camera,
		Features:       features,
		Available:      available,
		WarrantyMonths: payload.WarrantyMonths,
		Category:       payload.Category,
		Description:    payload.Description,
		ImageURL:       payload.ImageURL,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func (s *Server) updateProduct(c echo.Context) error {
	var patch domain.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg := validatePatch(&patch); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p, err := s.catalog.Update(c.Request().Context(), c.Param("id"), patch)
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func (s *Server) deleteProduct(c echo.Context) error {
	id := c.Param("id")
	existed, err := s.catalog.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	if !existed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, map[string]interface{}{"message": "Product " + id + " deleted successfully"})
}

func validateProduct(p *productPayload) string {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return "Name is required"
	}
	if !domain.ValidCondition(p.Condition) {
		return "Condition must be one of: sealed, like-new, excellent, good"
	}
	if p.BatteryHealth < 0 || p.BatteryHealth > 100 {
		return "Battery health must be between 0 and 100"
	}
	if p.PriceARS < 0 || p.PriceUSD < 0 {
		return "Prices must be non-negative"
	}
	if p.WarrantyMonths < 0 {
		return "Warranty months must be non-negative"
	}
	return ""
}

func validatePatch(patch *domain.ProductPatch) string {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return "Name cannot be empty"
	}
	if patch.Condition != nil && !domain.ValidCondition(*patch.Condition) {
		return "Condition must be one of: sealed, like-new, excellent, good"
	}
	if patch.BatteryHealth != nil && (*patch.BatteryHealth < 0 || *patch.BatteryHealth > 100) {
		return "Battery health must be between 0 and 100"
	}
	if patch.PriceARS != nil && *patch.PriceARS < 0 {
		return "Prices must be non-negative"
	}
	if patch.PriceUSD != nil && *patch.PriceUSD < 0 {
		return "Prices must be non-negative"
	}
	if patch.WarrantyMonths != nil && *patch.WarrantyMonths < 0 {
		return "Warranty months must be non-negative"
	}
	return ""
}
