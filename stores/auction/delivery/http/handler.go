package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/delivery"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/auction"
	"github.com/Mohit8269/Action-House/middleware"
)

const (
	defaultLimit = 50
	maxLimit     = 200
	maxBatchIds  = 100
)

type handler struct {
	au auction.UseCase
}

// New registers the auction ledger routes
func New(e *echo.Echo, au auction.UseCase) {
	h := &handler{au}

	g := e.Group("/auctions")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/top", h.topBids)
	g.GET("/search", h.search)
	g.POST("/batch", h.getBatch)
	g.GET("/:id", h.get)
	g.GET("/:id/events", h.getEvents)
	g.POST("/:id/bids", h.placeBid)
	g.POST("/:id/end", h.end)
	g.POST("/:id/cancel", h.cancel)
	g.POST("/:id/extend", h.extend)
	g.GET("/:id/credits/:account", h.getCredit, middleware.IsValidAccount("account"))
	g.POST("/:id/credits/withdraw", h.withdrawCredit)

	ga := e.Group("/accounts")
	ga.GET("/:account/selling", h.getSelling, middleware.IsValidAccount("account"))
	ga.GET("/:account/bidding", h.getBidding, middleware.IsValidAccount("account"))
}

// makeErrResp maps ledger rejections onto HTTP statuses
func makeErrResp(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrInvalidDuration):
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrNotSeller):
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	case errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrSelfBid),
		errors.Is(err, domain.ErrAuctionNotActive),
		errors.Is(err, domain.ErrAuctionExpired),
		errors.Is(err, domain.ErrAlreadySettled),
		errors.Is(err, domain.ErrTooEarly),
		errors.Is(err, domain.ErrHasBids),
		errors.Is(err, domain.ErrAlreadyExpired),
		errors.Is(err, domain.ErrNoCredit),
		errors.Is(err, domain.ErrInsufficientCustody):
		return delivery.MakeJsonResp(c, http.StatusConflict, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func parseAuctionId(c echo.Context) (domain.AuctionId, error) {
	id, err := domain.ParseAuctionId(c.Param("id"))
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return id, nil
}

func parseLimit(c echo.Context) int32 {
	limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 32)
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return int32(limit)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Seller        domain.Account `json:"seller" validate:"required"`
		ItemName      string         `json:"itemName" validate:"required"`
		Description   string         `json:"description"`
		StartingPrice domain.Amount  `json:"startingPrice" validate:"required,gt=0"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id, err := h.au.Create(ctx, p.Seller, p.ItemName, p.Description, p.StartingPrice, time.Now())
	if err != nil {
		return makeErrResp(c, err)
	}

	res := struct {
		AuctionId domain.AuctionId `json:"auctionId"`
	}{id}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	// an explicit window turns the listing into an ending-soon view
	if within := c.QueryParam("endingWithin"); within != "" {
		d, err := time.ParseDuration(within)
		if err != nil || d <= 0 {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		res, err := h.au.EndingSoon(ctx, time.Now(), d, parseLimit(c))
		if err != nil {
			return makeErrResp(c, err)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}

	opts := []auction.FindAllOptionsFunc{
		auction.WithSort("endTime"),
	}

	if active := c.QueryParam("active"); active != "" {
		b, err := strconv.ParseBool(active)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, auction.WithActive(b))
	} else {
		opts = append(opts, auction.WithActive(true))
	}

	if minPrice := c.QueryParam("minPrice"); minPrice != "" {
		v, err := strconv.ParseInt(minPrice, 10, 64)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, auction.WithPriceGTE(domain.Amount(v)))
	}

	if maxPrice := c.QueryParam("maxPrice"); maxPrice != "" {
		v, err := strconv.ParseInt(maxPrice, 10, 64)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, auction.WithPriceLTE(domain.Amount(v)))
	}

	offset := int32(0)
	if v, err := strconv.ParseInt(c.QueryParam("offset"), 10, 32); err == nil && v > 0 {
		offset = int32(v)
	}
	opts = append(opts, auction.WithPagination(offset, parseLimit(c)))

	res, err := h.au.FindAll(ctx, opts...)
	if err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) topBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.au.TopBids(ctx, parseLimit(c))
	if err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.au.SearchByName(ctx, c.QueryParam("q"), parseLimit(c))
	if err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBatch(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Ids []domain.AuctionId `json:"ids"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if len(p.Ids) == 0 || len(p.Ids) > maxBatchIds {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.au.GetBatch(ctx, p.Ids)
	if err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.au.Get(ctx, id)
	if err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.au.GetEvents(ctx, id)
	if err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		Bidder domain.Account `json:"bidder" validate:"required"`
		Amount domain.Amount  `json:"amount" validate:"required,gt=0"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.au.PlaceBid(ctx, id, p.Bidder, p.Amount, time.Now()); err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "bid accepted")
}

func (h *handler) end(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		Caller domain.Account `json:"caller" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	winner, amount, err := h.au.End(ctx, id, p.Caller, time.Now())
	if err != nil {
		return makeErrResp(c, err)
	}

	res := struct {
		Winner domain.Account `json:"winner"`
		Amount domain.Amount  `json:"amount"`
	}{winner, amount}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		Caller domain.Account `json:"caller" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.au.Cancel(ctx, id, p.Caller); err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "auction cancelled")
}

func (h *handler) extend(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		Caller domain.Account `json:"caller" validate:"required"`
		// AdditionalSeconds is the requested extension in whole seconds
		AdditionalSeconds int64 `json:"additionalSeconds" validate:"required,gt=0"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	newEnd, err := h.au.Extend(ctx, id, p.Caller, time.Duration(p.AdditionalSeconds)*time.Second, time.Now())
	if err != nil {
		return makeErrResp(c, err)
	}

	res := struct {
		EndTime time.Time `json:"endTime"`
	}{newEnd}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getCredit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	credit, err := h.au.GetCredit(ctx, id, domain.Account(c.Param("account")))
	if err != nil {
		return makeErrResp(c, err)
	}

	res := struct {
		Balance domain.Amount `json:"balance"`
	}{credit}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) withdrawCredit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		Claimant domain.Account `json:"claimant" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := h.au.WithdrawCredit(ctx, id, p.Claimant)
	if err != nil {
		return makeErrResp(c, err)
	}

	res := struct {
		Amount domain.Amount `json:"amount"`
	}{amount}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getSelling(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.au.FindAll(ctx,
		auction.WithSeller(domain.Account(c.Param("account"))),
		auction.WithSort("-createdAt"),
		auction.WithPagination(0, parseLimit(c)),
	)
	if err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBidding(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.au.FindAll(ctx,
		auction.WithCurrentBidder(domain.Account(c.Param("account"))),
		auction.WithSort("-createdAt"),
		auction.WithPagination(0, parseLimit(c)),
	)
	if err != nil {
		return makeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
