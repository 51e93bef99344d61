package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refpool.backend/internal/domain/entities"
	"refpool.backend/internal/interfaces/http/response"
	"refpool.backend/internal/usecases"
)

// SaleHandler handles sale reporting endpoints
type SaleHandler struct {
	saleUsecase *usecases.SaleUsecase
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleUsecase *usecases.SaleUsecase) *SaleHandler {
	return &SaleHandler{saleUsecase: saleUsecase}
}

// ProcessSale reports a sale attributed to an affiliate and pays the
// commission out of the pool vault
// POST /api/v1/pools/:address/affiliates/:wallet/sales
func (h *SaleHandler) ProcessSale(c *gin.Context) {
	address, ok := pathAddress(c, "address")
	if !ok {
		return
	}
	wallet, ok := pathAddress(c, "wallet")
	if !ok {
		return
	}

	var input entities.ProcessSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller, ok := callerWallet(c)
	if !ok {
		return
	}

	receipt, err := h.saleUsecase.ProcessSale(c.Request.Context(), caller, address, wallet, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, receipt)
}
