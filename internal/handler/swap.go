package handler

import (
	"strconv"

	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/amm-engine/internal/service"
	"github.com/nulln0ne/amm-engine/pkg/cpamm"
)

// SwapHandler serves trade execution and quote endpoints.
type SwapHandler struct {
	BaseHandler
	service *service.PoolService
}

// NewSwapHandler constructs a SwapHandler backed by the given service.
func NewSwapHandler(logger *slog.Logger, svc *service.PoolService) *SwapHandler {
	return &SwapHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

type SwapRequest struct {
	Owner        string `json:"owner"`
	TagIn        string `json:"tag_in"`
	AmountIn     string `json:"amount_in"`
	TagOut       string `json:"tag_out"`
	MinAmountOut string `json:"min_amount_out"`
}

// Swap handles POST /swap: exact input, caller-enforced output floor.
func (h *SwapHandler) Swap() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}
		owner, err := parseOwner(req.Owner)
		if err != nil {
			return err
		}
		if err := validatePair(req.TagIn, req.TagOut); err != nil {
			return err
		}
		amountIn, err := parseAmount(req.AmountIn, "amount_in")
		if err != nil {
			return err
		}
		minAmountOut, err := parseOptionalAmount(req.MinAmountOut, "min_amount_out")
		if err != nil {
			return err
		}

		res, err := h.service.Swap(owner, cpamm.Tag(req.TagIn), amountIn, cpamm.Tag(req.TagOut), minAmountOut)
		if err != nil {
			return h.handleServiceError(err)
		}
		h.logger.Debug("swap executed", "owner", req.Owner, "in", amountIn, "out", res.AmountOut)
		return c.JSON(res)
	}
}

type SwapToRequest struct {
	Owner       string `json:"owner"`
	TagIn       string `json:"tag_in"`
	MaxAmountIn string `json:"max_amount_in"`
	TagOut      string `json:"tag_out"`
	AmountOut   string `json:"amount_out"`
}

// SwapTo handles POST /swap/to: exact output against an input budget.
func (h *SwapHandler) SwapTo() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapToRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}
		owner, err := parseOwner(req.Owner)
		if err != nil {
			return err
		}
		if err := validatePair(req.TagIn, req.TagOut); err != nil {
			return err
		}
		maxAmountIn, err := parseAmount(req.MaxAmountIn, "max_amount_in")
		if err != nil {
			return err
		}
		amountOut, err := parseAmount(req.AmountOut, "amount_out")
		if err != nil {
			return err
		}

		res, err := h.service.SwapTo(owner, cpamm.Tag(req.TagIn), maxAmountIn, cpamm.Tag(req.TagOut), amountOut)
		if err != nil {
			return h.handleServiceError(err)
		}
		h.logger.Debug("exact-output swap executed", "owner", req.Owner, "spent", res.AmountIn, "out", res.AmountOut)
		return c.JSON(res)
	}
}

type QuoteRequest struct {
	Owner  string `query:"owner" json:"owner"`
	TagIn  string `query:"tag_in" json:"tag_in"`
	TagOut string `query:"tag_out" json:"tag_out"`
	Amount string `query:"amount" json:"amount"`
}

// QuoteOut handles GET /quote/out: prices an exact-input trade.
func (h *SwapHandler) QuoteOut() fiber.Handler {
	return h.quote("amount_in", h.service.QuoteOut)
}

// QuoteIn handles GET /quote/in: prices an exact-output trade.
func (h *SwapHandler) QuoteIn() fiber.Handler {
	return h.quote("amount_out", h.service.QuoteIn)
}

func (h *SwapHandler) quote(amountField string, price func(owner common.Address, tagIn, tagOut cpamm.Tag, amount uint64) (uint64, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		var req QuoteRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		owner, err := parseOwner(req.Owner)
		if err != nil {
			return err
		}
		if err := validatePair(req.TagIn, req.TagOut); err != nil {
			return err
		}
		amount, err := parseAmount(req.Amount, amountField)
		if err != nil {
			return err
		}

		quoted, err := price(owner, cpamm.Tag(req.TagIn), cpamm.Tag(req.TagOut), amount)
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.SendString(strconv.FormatUint(quoted, 10))
	}
}
