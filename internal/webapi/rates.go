package webapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
)

// getExchangeRates serves the last record written by the refresher.
// Before the first successful refresh the documented defaults are
// returned instead of an error.
func (s *Server) getExchangeRates(c echo.Context) error {
	rates, err := s.store.GetRates(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query exchange rates", err.Error())
	}
	if rates == nil {
		rates = domain.DefaultExchangeRates()
	}
	return ok(c, rates)
}

type statusCheckPayload struct {
	ClientName string `json:"client_name"`
}

func (s *Server) createStatusCheck(c echo.Context) error {
	var payload statusCheckPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status check", err.Error())
	}
	if payload.ClientName == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "client_name is required", nil)
	}

	sc := &domain.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: payload.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.store.InsertStatusCheck(c.Request().Context(), sc); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create status check", err.Error())
	}
	return ok(c, sc)
}

func (s *Server) listStatusChecks(c echo.Context) error {
	checks, err := s.store.ListStatusChecks(c.Request().Context(), 1000)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query status checks", err.Error())
	}
	return ok(c, checks)
}
