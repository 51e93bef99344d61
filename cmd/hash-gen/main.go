package main

import (
	"fmt"
	"log"
	"os"

	"refpool.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
)

func resolveSecret(args []string) string {
	secret := "dev-mint-secret"
	if len(args) > 0 {
		return args[0]
	}
	return secret
}

func generateHash(secret string) (string, error) {
	return crypto.HashSecret(secret)
}

func main() {
	secret := resolveSecret(os.Args[1:])

	printfFn("Generating hash for secret: %s\n", secret)

	hash, err := generateHashFn(secret)
	if err != nil {
		fatalfFn("Failed to hash secret: %v", err)
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
