package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refpool.backend/internal/domain/entities"
	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/internal/interfaces/http/response"
	"refpool.backend/internal/usecases"
	"refpool.backend/pkg/crypto"
)

// MintSecretHeader carries the operational faucet secret.
const MintSecretHeader = "X-Mint-Secret"

// LedgerHandler handles settlement-token ledger endpoints
type LedgerHandler struct {
	ledgerUsecase  *usecases.LedgerUsecase
	mintSecretHash string
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerUsecase *usecases.LedgerUsecase, mintSecretHash string) *LedgerHandler {
	return &LedgerHandler{
		ledgerUsecase:  ledgerUsecase,
		mintSecretHash: mintSecretHash,
	}
}

// Mint credits a wallet's ledger account. On top of the admin role the
// caller must present the mint secret, so a leaked admin token alone cannot
// create money.
// POST /api/v1/ledger/mint
func (h *LedgerHandler) Mint(c *gin.Context) {
	if h.mintSecretHash == "" || !crypto.CheckSecret(c.GetHeader(MintSecretHeader), h.mintSecretHash) {
		response.Error(c, domainerrors.Forbidden("invalid mint secret"))
		return
	}

	var input entities.MintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.ledgerUsecase.Mint(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// GetBalance reports the ledger balance for a wallet
// GET /api/v1/ledger/balances/:wallet
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	wallet, ok := pathAddress(c, "wallet")
	if !ok {
		return
	}

	resp, err := h.ledgerUsecase.Balance(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// GetOwnBalance reports the caller's ledger balance
// GET /api/v1/ledger/balance
func (h *LedgerHandler) GetOwnBalance(c *gin.Context) {
	wallet, ok := callerWallet(c)
	if !ok {
		return
	}

	resp, err := h.ledgerUsecase.Balance(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}
