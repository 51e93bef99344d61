package derive

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Derivation tags partition the address space per record kind so that
// pool, authority and affiliate addresses can never collide.
const (
	tagPool            = "pool"
	tagEscrowAuthority = "escrow_authority"
	tagAffiliate       = "affiliate"
	tagTokenAccount    = "token_account"
)

// MaxSeedLen bounds variable-length seed components (pool ids, ref ids).
const MaxSeedLen = 32

var ErrInvalidSeed = errors.New("invalid derivation seed")

// address hashes a tag plus length-prefixed components into a 20-byte
// address. Length prefixes keep the mapping injective for string seeds.
func address(tag string, parts ...[]byte) common.Address {
	data := make([]byte, 0, 64)
	data = append(data, []byte(tag)...)
	for _, p := range parts {
		data = append(data, byte(len(p)))
		data = append(data, p...)
	}
	sum := crypto.Keccak256(data)
	return common.BytesToAddress(sum[12:])
}

// PoolAddress derives the record address for a (merchant, pool id) pair.
// The pool id must be 1..MaxSeedLen bytes; malformed seeds fail instead of
// silently mapping to a shared address.
func PoolAddress(merchant common.Address, poolID string) (common.Address, error) {
	if len(poolID) == 0 || len(poolID) > MaxSeedLen {
		return common.Address{}, ErrInvalidSeed
	}
	return address(tagPool, merchant.Bytes(), []byte(poolID)), nil
}

// EscrowAuthority derives the keyless spending authority for a pool's vault.
func EscrowAuthority(pool common.Address) common.Address {
	return address(tagEscrowAuthority, pool.Bytes())
}

// AffiliateAddress derives the record address for a (pool, wallet) pair.
func AffiliateAddress(pool, wallet common.Address) common.Address {
	return address(tagAffiliate, pool.Bytes(), wallet.Bytes())
}

// TokenAccountAddress derives the ledger account address for an owner.
// Wallets and escrow authorities get token accounts through the same
// mapping, so an account's address never equals its owner.
func TokenAccountAddress(owner common.Address) common.Address {
	return address(tagTokenAccount, owner.Bytes())
}

// Authority is a spending capability over a token account. A wallet
// authority represents a verified transaction signer; an escrow authority is
// keyless and can only be produced by reproducing the pool derivation here.
// Ledger debit paths check the authority against the account owner.
type Authority struct {
	addr    common.Address
	keyless bool
}

// Address returns the address the authority acts as.
func (a Authority) Address() common.Address { return a.addr }

// Keyless reports whether the authority is derivation-controlled rather
// than backed by a holder's key.
func (a Authority) Keyless() bool { return a.keyless }

// WalletAuthority wraps a verified signer wallet as a spending authority.
func WalletAuthority(wallet common.Address) Authority {
	return Authority{addr: wallet}
}

// EscrowAuthorityFor returns the keyless authority controlling a pool's
// escrow vault.
func EscrowAuthorityFor(pool common.Address) Authority {
	return Authority{addr: EscrowAuthority(pool), keyless: true}
}
