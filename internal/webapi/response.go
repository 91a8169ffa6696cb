package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorBody is the failure envelope shared by all handlers.
type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, errorBody{Code: code, Message: message, Detail: detail})
}

// pagedBody carries one result page plus the total match count so
// clients can build paged UIs.
type pagedBody struct {
	Data   interface{} `json:"products"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func paged(c echo.Context, data interface{}, total, limit, offset int) error {
	return c.JSON(http.StatusOK, pagedBody{Data: data, Total: total, Limit: limit, Offset: offset})
}
