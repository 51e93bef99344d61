package derive_test

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refpool.backend/pkg/derive"
)

var (
	merchantA = common.HexToAddress("0x1111111111111111111111111111111111111111")
	merchantB = common.HexToAddress("0x2222222222222222222222222222222222222222")
	walletA   = common.HexToAddress("0x3333333333333333333333333333333333333333")
	walletB   = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

func TestPoolAddress_Deterministic(t *testing.T) {
	a1, err := derive.PoolAddress(merchantA, "summer-sale")
	require.NoError(t, err)
	a2, err := derive.PoolAddress(merchantA, "summer-sale")
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, common.Address{}, a1)
}

func TestPoolAddress_ScopedPerMerchant(t *testing.T) {
	a1, err := derive.PoolAddress(merchantA, "summer-sale")
	require.NoError(t, err)
	a2, err := derive.PoolAddress(merchantB, "summer-sale")
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2, "same pool id under different merchants must not collide")
}

func TestPoolAddress_DistinctPerPoolID(t *testing.T) {
	a1, err := derive.PoolAddress(merchantA, "pool-1")
	require.NoError(t, err)
	a2, err := derive.PoolAddress(merchantA, "pool-2")
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)
}

func TestPoolAddress_InvalidSeeds(t *testing.T) {
	_, err := derive.PoolAddress(merchantA, "")
	assert.ErrorIs(t, err, derive.ErrInvalidSeed)

	_, err = derive.PoolAddress(merchantA, strings.Repeat("x", derive.MaxSeedLen+1))
	assert.ErrorIs(t, err, derive.ErrInvalidSeed)

	_, err = derive.PoolAddress(merchantA, strings.Repeat("x", derive.MaxSeedLen))
	assert.NoError(t, err, "max-length seed is valid")
}

func TestDomainSeparation(t *testing.T) {
	pool, err := derive.PoolAddress(merchantA, "p")
	require.NoError(t, err)

	// The same underlying components under different tags must land on
	// different addresses.
	auth := derive.EscrowAuthority(pool)
	aff := derive.AffiliateAddress(pool, walletA)
	vault := derive.TokenAccountAddress(auth)

	addrs := []common.Address{pool, auth, aff, vault}
	for i := range addrs {
		for j := i + 1; j < len(addrs); j++ {
			assert.NotEqual(t, addrs[i], addrs[j])
		}
	}
}

func TestAffiliateAddress_PerWallet(t *testing.T) {
	pool, err := derive.PoolAddress(merchantA, "p")
	require.NoError(t, err)

	a1 := derive.AffiliateAddress(pool, walletA)
	a2 := derive.AffiliateAddress(pool, walletB)
	assert.NotEqual(t, a1, a2)
	assert.Equal(t, a1, derive.AffiliateAddress(pool, walletA))
}

func TestTokenAccountAddress_NeverOwner(t *testing.T) {
	assert.NotEqual(t, walletA, derive.TokenAccountAddress(walletA))
}

func TestAuthority(t *testing.T) {
	pool, err := derive.PoolAddress(merchantA, "p")
	require.NoError(t, err)

	wa := derive.WalletAuthority(walletA)
	assert.Equal(t, walletA, wa.Address())
	assert.False(t, wa.Keyless())

	ea := derive.EscrowAuthorityFor(pool)
	assert.True(t, ea.Keyless())
	assert.Equal(t, derive.EscrowAuthority(pool), ea.Address())
	assert.NotEqual(t, wa.Address(), ea.Address(),
		"wallet authority can never alias a derived escrow authority")
}
