package middleware

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"refpool.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// WalletKey is the context key for the verified signer wallet
	WalletKey = "wallet"
	// RoleKey is the context key for the caller role
	RoleKey = "role"
)

// AuthMiddleware validates the bearer token and stashes the verified wallet
// address plus role in the request context. The wallet is the identity every
// usecase authorizes against.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		if !common.IsHexAddress(claims.Wallet) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid wallet claim",
			})
			return
		}

		c.Set(WalletKey, claims.WalletAddress())
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// GetWallet gets the verified signer wallet from context
func GetWallet(c *gin.Context) (common.Address, bool) {
	wallet, exists := c.Get(WalletKey)
	if !exists {
		return common.Address{}, false
	}
	return wallet.(common.Address), true
}

// GetRole gets the caller role from context
func GetRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(RoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetRole(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Caller role not found",
			})
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	}
}

// RequireAdmin creates a middleware that requires the admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(jwt.RoleAdmin)
}
