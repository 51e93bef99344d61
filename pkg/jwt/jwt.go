package jwt

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Caller roles carried in token claims.
const (
	RoleMerchant = "merchant"
	RoleRelayer  = "relayer"
	RoleAdmin    = "admin"
)

// Claims identifies a verified transaction signer: the wallet address the
// caller acts as, plus its role.
type Claims struct {
	Wallet string `json:"wallet"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// WalletAddress parses the wallet claim into an address.
func (c *Claims) WalletAddress() common.Address {
	return common.HexToAddress(c.Wallet)
}

// JWTService signs and validates caller tokens
type JWTService struct {
	secret []byte
	expiry time.Duration
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateToken issues a signed token for a wallet and role
func (s *JWTService) GenerateToken(wallet common.Address, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Wallet: wallet.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signJWTToken(token, s.secret)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
