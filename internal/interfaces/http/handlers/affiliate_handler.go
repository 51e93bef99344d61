package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refpool.backend/internal/domain/entities"
	"refpool.backend/internal/interfaces/http/response"
	"refpool.backend/internal/usecases"
	"refpool.backend/pkg/utils"
)

// AffiliateHandler handles affiliate registration endpoints
type AffiliateHandler struct {
	affiliateUsecase *usecases.AffiliateUsecase
}

// NewAffiliateHandler creates a new affiliate handler
func NewAffiliateHandler(affiliateUsecase *usecases.AffiliateUsecase) *AffiliateHandler {
	return &AffiliateHandler{affiliateUsecase: affiliateUsecase}
}

// AddAffiliate registers a referrer wallet on a pool
// POST /api/v1/pools/:address/affiliates
func (h *AffiliateHandler) AddAffiliate(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	var input entities.AddAffiliateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller, ok := callerWallet(c)
	if !ok {
		return
	}

	affiliate, err := h.affiliateUsecase.AddAffiliate(c.Request.Context(), caller, address, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, affiliate)
}

// RemoveAffiliate deactivates an affiliate, keeping its totals
// POST /api/v1/pools/:address/affiliates/:wallet/remove
func (h *AffiliateHandler) RemoveAffiliate(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}
	wallet, ok := pathAddress(c, "wallet")
	if !ok {
		return
	}

	caller, ok := callerWallet(c)
	if !ok {
		return
	}

	affiliate, err := h.affiliateUsecase.RemoveAffiliate(c.Request.Context(), caller, address, wallet)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, affiliate)
}

// GetAffiliate returns the affiliate record for a (pool, wallet) pair
// GET /api/v1/pools/:address/affiliates/:wallet
func (h *AffiliateHandler) GetAffiliate(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}
	wallet, ok := pathAddress(c, "wallet")
	if !ok {
		return
	}

	affiliate, err := h.affiliateUsecase.GetAffiliate(c.Request.Context(), address, wallet)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, affiliate)
}

// ListAffiliates lists a pool's affiliates
// GET /api/v1/pools/:address/affiliates
func (h *AffiliateHandler) ListAffiliates(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	params := paginationFromQuery(c)
	affiliates, total, err := h.affiliateUsecase.ListAffiliates(c.Request.Context(), address, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"data":       affiliates,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}
