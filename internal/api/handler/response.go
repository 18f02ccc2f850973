package handler

import "github.com/labstack/echo/v4"

const (
	StatusSuccess = "SUCCESS"
	StatusFail    = "FAIL"
)

// SuccessResponse is the envelope of every successful response. Data is
// always present and may be null.
type SuccessResponse struct {
	Status  string `json:"status" example:"SUCCESS"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// FailResponse is the envelope of every failed response.
type FailResponse struct {
	Status  string `json:"status" example:"FAIL"`
	Message string `json:"message"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, SuccessResponse{Status: StatusSuccess, Message: message, Data: data})
}

// Fail writes a FAIL envelope.
func Fail(c echo.Context, code int, message string) error {
	return c.JSON(code, FailResponse{Status: StatusFail, Message: message})
}
