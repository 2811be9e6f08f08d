package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/delivery"
	"github.com/Mohit8269/Action-House/domain/statistic"
)

type handler struct {
	statisticUC statistic.UseCase
}

func New(e *echo.Echo, statisticUC statistic.UseCase) {
	h := &handler{statisticUC}
	gs := e.Group("/statistics")
	gs.GET("", h.getSummary)
}

func (h *handler) getSummary(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(ctx.Ctx)
	res, err := h.statisticUC.Summary(ctx)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
