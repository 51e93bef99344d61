package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common"

	"refpool.backend/internal/config"
	"refpool.backend/pkg/jwt"
)

var (
	printfFn        = fmt.Printf
	fatalfFn        = log.Fatalf
	generateTokenFn = generateToken
)

var errUsage = errors.New("usage: token-gen <wallet> [merchant|relayer|admin]")

func resolveArgs(args []string) (common.Address, string, error) {
	if len(args) == 0 {
		return common.Address{}, "", errUsage
	}
	if !common.IsHexAddress(args[0]) {
		return common.Address{}, "", fmt.Errorf("invalid wallet address: %s", args[0])
	}
	role := jwt.RoleMerchant
	if len(args) > 1 {
		switch args[1] {
		case jwt.RoleMerchant, jwt.RoleRelayer, jwt.RoleAdmin:
			role = args[1]
		default:
			return common.Address{}, "", fmt.Errorf("unknown role: %s", args[1])
		}
	}
	return common.HexToAddress(args[0]), role, nil
}

func generateToken(wallet common.Address, role string) (string, error) {
	cfg := config.Load()
	svc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	return svc.GenerateToken(wallet, role)
}

func main() {
	wallet, role, err := resolveArgs(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	token, err := generateTokenFn(wallet, role)
	if err != nil {
		fatalfFn("Failed to generate token: %v", err)
		return
	}

	printfFn("Wallet: %s\n", wallet.Hex())
	printfFn("Role: %s\n", role)
	printfFn("Token: %s\n", token)
}
