package handlers

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/internal/interfaces/http/middleware"
	"refpool.backend/internal/interfaces/http/response"
	"refpool.backend/pkg/utils"
)

// callerWallet pulls the verified signer wallet set by AuthMiddleware.
func callerWallet(c *gin.Context) (common.Address, bool) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing signer identity"))
	}
	return wallet, ok
}

// pathAddress reads a hex address path parameter.
func pathAddress(c *gin.Context, name string) (common.Address, bool) {
	raw := c.Param(name)
	if !common.IsHexAddress(raw) {
		response.Error(c, domainerrors.BadRequest("invalid "+name+" parameter", domainerrors.ErrInvalidWallet))
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// paginationFromQuery binds page/limit query params with defaults.
func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	var q utils.PaginationParams
	_ = c.ShouldBindQuery(&q)
	return utils.GetPaginationParams(q.Page, q.Limit)
}
