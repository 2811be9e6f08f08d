package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mohit8269/Action-House/base/ctx"
	hcdomain "github.com/Mohit8269/Action-House/domain/healthcheck"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type healthCheckHandler struct {
	healthCheck hcdomain.UseCase
}

// New will initialize the healthcheck endpoint
func New(e *echo.Echo, us hcdomain.UseCase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	g := e.Group("/healthcheck")
	g.GET("", handler.check)
}

func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(context); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"healthy": "ok",
	})
}
