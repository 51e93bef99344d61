package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refpool.backend/internal/domain/entities"
	"refpool.backend/internal/interfaces/http/response"
	"refpool.backend/internal/usecases"
	"refpool.backend/pkg/utils"
)

// PoolHandler handles pool lifecycle and escrow endpoints
type PoolHandler struct {
	poolUsecase *usecases.PoolUsecase
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(poolUsecase *usecases.PoolUsecase) *PoolHandler {
	return &PoolHandler{poolUsecase: poolUsecase}
}

// InitializePool creates a pool funded from the caller's ledger account
// POST /api/v1/pools
func (h *PoolHandler) InitializePool(c *gin.Context) {
	var input entities.InitializePoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	merchant, ok := callerWallet(c)
	if !ok {
		return
	}

	resp, err := h.poolUsecase.InitializePool(c.Request.Context(), merchant, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// GetPool returns a pool with its vault balance
// GET /api/v1/pools/:address
func (h *PoolHandler) GetPool(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	resp, err := h.poolUsecase.GetPool(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ListPools lists the caller's pools
// GET /api/v1/pools
func (h *PoolHandler) ListPools(c *gin.Context) {
	merchant, ok := callerWallet(c)
	if !ok {
		return
	}

	params := paginationFromQuery(c)
	pools, total, err := h.poolUsecase.ListPools(c.Request.Context(), merchant, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"data":       pools,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// UpdateCommission changes the pool's commission rate
// PATCH /api/v1/pools/:address/commission
func (h *PoolHandler) UpdateCommission(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	var input entities.UpdateCommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller, ok := callerWallet(c)
	if !ok {
		return
	}

	pool, err := h.poolUsecase.UpdateCommission(c.Request.Context(), caller, address, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pool)
}

// UpdateRelayer changes the pool's sale-reporting wallet
// PATCH /api/v1/pools/:address/relayer
func (h *PoolHandler) UpdateRelayer(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	var input entities.UpdateRelayerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller, ok := callerWallet(c)
	if !ok {
		return
	}

	pool, err := h.poolUsecase.UpdateRelayer(c.Request.Context(), caller, address, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pool)
}

// Deactivate turns the pool's activity gate off
// POST /api/v1/pools/:address/deactivate
func (h *PoolHandler) Deactivate(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	caller, ok := callerWallet(c)
	if !ok {
		return
	}

	pool, err := h.poolUsecase.Deactivate(c.Request.Context(), caller, address)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pool)
}

// DepositEscrow tops up the pool vault
// POST /api/v1/pools/:address/escrow/deposit
func (h *PoolHandler) DepositEscrow(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	var input entities.EscrowAmountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller, ok := callerWallet(c)
	if !ok {
		return
	}

	resp, err := h.poolUsecase.DepositEscrow(c.Request.Context(), caller, address, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// WithdrawEscrow returns vault funds to the merchant
// POST /api/v1/pools/:address/escrow/withdraw
func (h *PoolHandler) WithdrawEscrow(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	var input entities.EscrowAmountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller, ok := callerWallet(c)
	if !ok {
		return
	}

	resp, err := h.poolUsecase.WithdrawEscrow(c.Request.Context(), caller, address, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ListEvents returns the pool's audit history
// GET /api/v1/pools/:address/events
func (h *PoolHandler) ListEvents(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	params := paginationFromQuery(c)
	events, total, err := h.poolUsecase.ListEvents(c.Request.Context(), address, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"data":       events,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}
