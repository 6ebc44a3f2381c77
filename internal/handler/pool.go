package handler

import (
	"strconv"

	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/amm-engine/internal/service"
	"github.com/nulln0ne/amm-engine/pkg/cpamm"
)

// PoolHandler serves pool creation, inspection and liquidity endpoints.
type PoolHandler struct {
	BaseHandler
	service *service.PoolService
}

// NewPoolHandler constructs a PoolHandler backed by the given service.
func NewPoolHandler(logger *slog.Logger, svc *service.PoolService) *PoolHandler {
	return &PoolHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

type CreatePoolRequest struct {
	Owner    string `json:"owner"`
	TagA     string `json:"tag_a"`
	TagB     string `json:"tag_b"`
	InitialA string `json:"initial_a"`
	InitialB string `json:"initial_b"`
}

// CreatePool handles POST /pools.
func (h *PoolHandler) CreatePool() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req CreatePoolRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}
		owner, err := parseOwner(req.Owner)
		if err != nil {
			return err
		}
		if err := validatePair(req.TagA, req.TagB); err != nil {
			return err
		}
		initialA, err := parseOptionalAmount(req.InitialA, "initial_a")
		if err != nil {
			return err
		}
		initialB, err := parseOptionalAmount(req.InitialB, "initial_b")
		if err != nil {
			return err
		}

		state, err := h.service.CreatePool(owner, cpamm.Tag(req.TagA), cpamm.Tag(req.TagB), initialA, initialB)
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(state)
	}
}

type PoolInfoRequest struct {
	Owner string `query:"owner" json:"owner"`
	TagA  string `query:"tag_a" json:"tag_a"`
	TagB  string `query:"tag_b" json:"tag_b"`
}

// PoolInfoResponse pairs a pool snapshot with the orientation the
// requested pair matched.
type PoolInfoResponse struct {
	Pool        *service.PoolState `json:"pool"`
	Orientation cpamm.Orientation  `json:"orientation"`
}

// PoolInfo handles GET /pools.
func (h *PoolHandler) PoolInfo() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req PoolInfoRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		owner, err := parseOwner(req.Owner)
		if err != nil {
			return err
		}
		if err := validatePair(req.TagA, req.TagB); err != nil {
			return err
		}

		state, orientation, err := h.service.PoolInfo(owner, cpamm.Tag(req.TagA), cpamm.Tag(req.TagB))
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.JSON(PoolInfoResponse{Pool: state, Orientation: orientation})
	}
}

type AddLiquidityRequest struct {
	Owner   string `json:"owner"`
	TagA    string `json:"tag_a"`
	AmountA string `json:"amount_a"`
	TagB    string `json:"tag_b"`
	AmountB string `json:"amount_b"`
}

// AddLiquidity handles POST /liquidity.
func (h *PoolHandler) AddLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req AddLiquidityRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}
		owner, err := parseOwner(req.Owner)
		if err != nil {
			return err
		}
		if err := validatePair(req.TagA, req.TagB); err != nil {
			return err
		}
		amountA, err := parseAmount(req.AmountA, "amount_a")
		if err != nil {
			return err
		}
		amountB, err := parseAmount(req.AmountB, "amount_b")
		if err != nil {
			return err
		}

		res, err := h.service.AddLiquidity(owner, cpamm.Tag(req.TagA), amountA, cpamm.Tag(req.TagB), amountB)
		if err != nil {
			return h.handleServiceError(err)
		}
		h.logger.Debug("liquidity added", "owner", req.Owner, "shares", res.Shares)
		return c.JSON(res)
	}
}

type RemoveLiquidityRequest struct {
	Owner    string `json:"owner"`
	ShareTag string `json:"share_tag"`
	Shares   string `json:"shares"`
}

// RemoveLiquidity handles POST /liquidity/remove.
func (h *PoolHandler) RemoveLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req RemoveLiquidityRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}
		owner, err := parseOwner(req.Owner)
		if err != nil {
			return err
		}
		if req.ShareTag == "" {
			return NewTagRequired("share")
		}
		shares, err := parseAmount(req.Shares, "shares")
		if err != nil {
			return err
		}

		res, err := h.service.RemoveLiquidity(owner, cpamm.Tag(req.ShareTag), shares)
		if err != nil {
			return h.handleServiceError(err)
		}
		h.logger.Debug("liquidity removed", "owner", req.Owner, "shares", shares)
		return c.JSON(res)
	}
}

func parseOwner(addr string) (common.Address, error) {
	if addr == "" {
		return common.Address{}, ErrOwnerRequired
	}
	if !common.IsHexAddress(addr) {
		return common.Address{}, ErrInvalidOwner
	}
	return common.HexToAddress(addr), nil
}

func validatePair(tagA, tagB string) error {
	if tagA == "" {
		return NewTagRequired("tag_a")
	}
	if tagB == "" {
		return NewTagRequired("tag_b")
	}
	if tagA == tagB {
		return ErrSameTags
	}
	return nil
}

func parseAmount(amountStr, field string) (uint64, error) {
	if amountStr == "" {
		return 0, NewInvalidAmount(field, strconv.ErrSyntax)
	}
	amount, err := strconv.ParseUint(amountStr, 10, 64)
	if err != nil {
		return 0, NewInvalidAmount(field, err)
	}
	return amount, nil
}

// parseOptionalAmount treats a missing field as zero.
func parseOptionalAmount(amountStr, field string) (uint64, error) {
	if amountStr == "" {
		return 0, nil
	}
	return parseAmount(amountStr, field)
}

func (h *BaseHandler) handleServiceError(err error) error {
	switch err {
	case cpamm.ErrPairAlreadyExists:
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case cpamm.ErrPairDoesNotExist:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case cpamm.ErrArithmeticFault:
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case cpamm.ErrInsufficientLiquidityMinted,
		cpamm.ErrInsufficientLiquidityBurned,
		cpamm.ErrInsufficientInputAmount,
		cpamm.ErrInsufficientOutputAmount,
		cpamm.ErrInsufficientLiquidity,
		cpamm.ErrInsufficientBalance,
		cpamm.ErrAssetTypeMismatch:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error("pool operation failed", "err", err)
		return ErrPoolOperationFailedInternal
	}
}
