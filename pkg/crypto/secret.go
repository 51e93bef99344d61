package crypto

import "golang.org/x/crypto/bcrypt"

// HashSecret hashes an operational secret (e.g. the ledger mint secret)
// with bcrypt for storage in configuration.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret compares a presented secret against its stored hash.
func CheckSecret(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
