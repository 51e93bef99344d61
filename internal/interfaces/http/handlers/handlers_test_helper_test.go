package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"refpool.backend/internal/infrastructure/repositories"
	"refpool.backend/internal/interfaces/http/middleware"
	"refpool.backend/internal/usecases"
	"refpool.backend/pkg/crypto"
	"refpool.backend/pkg/jwt"
)

const (
	testJWTSecret  = "handler-test-secret"
	testMintSecret = "handler-test-mint-secret"
)

var (
	merchantWallet  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	relayerWallet   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	affiliateWallet = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	outsiderWallet  = common.HexToAddress("0x00000000000000000000000000000000000000d4")
	adminWallet     = common.HexToAddress("0x00000000000000000000000000000000000000e5")
)

// testEnv wires the real repositories and usecases over sqlite so handler
// tests cover the full request path below the router.
type testEnv struct {
	router *gin.Engine
	jwtSvc *jwt.JWTService
	ledger *usecases.LedgerUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	createTables(t, db)

	poolRepo := repositories.NewPoolRepository(db)
	affiliateRepo := repositories.NewAffiliateRepository(db)
	tokenRepo := repositories.NewTokenAccountRepository(db)
	eventRepo := repositories.NewPoolEventRepository(db)
	uow := repositories.NewUnitOfWork(db)

	ledgerUC := usecases.NewLedgerUsecase(tokenRepo, uow)
	poolUC := usecases.NewPoolUsecase(poolRepo, tokenRepo, eventRepo, ledgerUC, uow)
	affiliateUC := usecases.NewAffiliateUsecase(affiliateRepo, poolRepo, eventRepo, uow)
	saleUC := usecases.NewSaleUsecase(poolRepo, affiliateRepo, eventRepo, ledgerUC, uow)

	mintHash, err := crypto.HashSecret(testMintSecret)
	require.NoError(t, err)

	poolHandler := NewPoolHandler(poolUC)
	affiliateHandler := NewAffiliateHandler(affiliateUC)
	saleHandler := NewSaleHandler(saleUC)
	ledgerHandler := NewLedgerHandler(ledgerUC, mintHash)

	jwtSvc := jwt.NewJWTService(testJWTSecret, time.Hour)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(jwtSvc))
	{
		pools := v1.Group("/pools")
		{
			pools.POST("", poolHandler.InitializePool)
			pools.GET("", poolHandler.ListPools)
			pools.GET("/:address", poolHandler.GetPool)
			pools.PATCH("/:address/commission", poolHandler.UpdateCommission)
			pools.PATCH("/:address/relayer", poolHandler.UpdateRelayer)
			pools.POST("/:address/deactivate", poolHandler.Deactivate)
			pools.GET("/:address/events", poolHandler.ListEvents)
			pools.POST("/:address/escrow/deposit", poolHandler.DepositEscrow)
			pools.POST("/:address/escrow/withdraw", poolHandler.WithdrawEscrow)
			pools.POST("/:address/affiliates", affiliateHandler.AddAffiliate)
			pools.GET("/:address/affiliates", affiliateHandler.ListAffiliates)
			pools.GET("/:address/affiliates/:wallet", affiliateHandler.GetAffiliate)
			pools.POST("/:address/affiliates/:wallet/remove", affiliateHandler.RemoveAffiliate)
			pools.POST("/:address/affiliates/:wallet/sales", saleHandler.ProcessSale)
		}
		ledger := v1.Group("/ledger")
		{
			ledger.GET("/balance", ledgerHandler.GetOwnBalance)
			ledger.GET("/balances/:wallet", ledgerHandler.GetBalance)
			ledger.POST("/mint", middleware.RequireAdmin(), ledgerHandler.Mint)
		}
	}

	return &testEnv{router: r, jwtSvc: jwtSvc, ledger: ledgerUC}
}

func createTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	stmts := []string{
		`CREATE TABLE pools (
			id TEXT PRIMARY KEY,
			address TEXT NOT NULL UNIQUE,
			merchant TEXT NOT NULL,
			pool_id TEXT NOT NULL,
			commission_rate INTEGER NOT NULL,
			is_active BOOLEAN NOT NULL,
			total_volume INTEGER NOT NULL DEFAULT 0,
			total_commissions_paid INTEGER NOT NULL DEFAULT 0,
			escrow_authority TEXT NOT NULL,
			relayer TEXT NOT NULL,
			deactivated_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE(merchant, pool_id)
		);`,
		`CREATE TABLE affiliates (
			id TEXT PRIMARY KEY,
			address TEXT NOT NULL UNIQUE,
			pool_address TEXT NOT NULL,
			wallet TEXT NOT NULL,
			ref_id TEXT NOT NULL,
			is_active BOOLEAN NOT NULL,
			total_earned INTEGER NOT NULL DEFAULT 0,
			sales_count INTEGER NOT NULL DEFAULT 0,
			deactivated_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE(pool_address, wallet)
		);`,
		`CREATE TABLE token_accounts (
			id TEXT PRIMARY KEY,
			address TEXT NOT NULL UNIQUE,
			owner TEXT NOT NULL,
			balance INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE pool_events (
			id TEXT PRIMARY KEY,
			pool_address TEXT NOT NULL,
			event_type TEXT NOT NULL,
			affiliate_wallet TEXT,
			amount INTEGER,
			commission INTEGER,
			created_at DATETIME
		);`,
	}
	for _, q := range stmts {
		require.NoError(t, db.Exec(q).Error, "create table")
	}
}

func (e *testEnv) token(t *testing.T, wallet common.Address, role string) string {
	t.Helper()
	token, err := e.jwtSvc.GenerateToken(wallet, role)
	require.NoError(t, err)
	return token
}

type requestOpts struct {
	token   string
	headers map[string]string
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, opts requestOpts) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if opts.token != "" {
		req.Header.Set(middleware.AuthorizationHeader, middleware.BearerPrefix+opts.token)
	}
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// assertAddress compares a JSON hex string against an address. JSON output
// is lowercase hex while Hex() is checksummed, so compare parsed values.
func assertAddress(t *testing.T, want common.Address, got interface{}) {
	t.Helper()
	raw, ok := got.(string)
	require.True(t, ok, "expected hex string, got %T", got)
	require.True(t, common.IsHexAddress(raw), "not an address: %s", raw)
	require.Equal(t, want, common.HexToAddress(raw))
}

// fundWallet credits a wallet through the mint endpoint so tests exercise the
// same path operators use.
func (e *testEnv) fundWallet(t *testing.T, wallet common.Address, amount uint64) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/ledger/mint", gin.H{
		"wallet": wallet.Hex(),
		"amount": amount,
	}, requestOpts{
		token:   e.token(t, adminWallet, jwt.RoleAdmin),
		headers: map[string]string{MintSecretHeader: testMintSecret},
	})
	require.Equal(t, http.StatusOK, rec.Code, "mint failed: %s", rec.Body.String())
}

// createPool initializes a funded pool owned by merchantWallet and returns
// its derived address.
func (e *testEnv) createPool(t *testing.T, poolID string, rate uint16, deposit uint64) common.Address {
	t.Helper()
	e.fundWallet(t, merchantWallet, deposit*2)
	rec := e.do(t, http.MethodPost, "/api/v1/pools", gin.H{
		"poolId":         poolID,
		"commissionRate": rate,
		"initialDeposit": deposit,
	}, requestOpts{token: e.token(t, merchantWallet, jwt.RoleMerchant)})
	require.Equal(t, http.StatusCreated, rec.Code, "init pool failed: %s", rec.Body.String())
	body := decodeJSON(t, rec)
	addr, ok := body["address"].(string)
	require.True(t, ok, "pool address missing: %v", body)
	return common.HexToAddress(addr)
}

// addAffiliate registers affiliateWallet on the pool.
func (e *testEnv) addAffiliate(t *testing.T, pool common.Address, refID string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/pools/"+pool.Hex()+"/affiliates", gin.H{
		"wallet": affiliateWallet.Hex(),
		"refId":  refID,
	}, requestOpts{token: e.token(t, merchantWallet, jwt.RoleMerchant)})
	require.Equal(t, http.StatusCreated, rec.Code, "add affiliate failed: %s", rec.Body.String())
}
