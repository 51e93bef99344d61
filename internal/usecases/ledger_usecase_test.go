package usecases

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refpool.backend/internal/domain/entities"
	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/pkg/derive"
)

func TestMintCreatesAccountAndCredits(t *testing.T) {
	f := newFixture()
	wallet := common.HexToAddress("0x1111111111111111111111111111111111111111")

	resp, err := f.ledger.Mint(context.Background(), &entities.MintInput{
		Wallet: wallet.Hex(),
		Amount: 1_000,
	})
	require.NoError(t, err)
	assert.Equal(t, wallet, resp.Owner)
	assert.Equal(t, derive.TokenAccountAddress(wallet), resp.Address)
	assert.Equal(t, uint64(1_000), resp.Balance)

	// second mint accumulates on the same account
	resp, err = f.ledger.Mint(context.Background(), &entities.MintInput{
		Wallet: wallet.Hex(),
		Amount: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500), resp.Balance)
}

func TestMintRejectsBadInput(t *testing.T) {
	f := newFixture()

	_, err := f.ledger.Mint(context.Background(), &entities.MintInput{
		Wallet: "not-an-address",
		Amount: 100,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidWallet)

	_, err = f.ledger.Mint(context.Background(), &entities.MintInput{
		Wallet: "0x1111111111111111111111111111111111111111",
		Amount: 0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}

func TestBalanceMissingAccountReadsZero(t *testing.T) {
	f := newFixture()
	wallet := common.HexToAddress("0x2222222222222222222222222222222222222222")

	resp, err := f.ledger.Balance(context.Background(), wallet)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), resp.Balance)
	assert.Equal(t, wallet, resp.Owner)
}

func TestTransferMovesFundsAndCreatesDestination(t *testing.T) {
	f := newFixture()
	from := common.HexToAddress("0x3333333333333333333333333333333333333333")
	to := common.HexToAddress("0x4444444444444444444444444444444444444444")
	f.fund(t, from, 900)

	err := f.ledger.Transfer(context.Background(), derive.TokenAccountAddress(from), to, 250, derive.WalletAuthority(from))
	require.NoError(t, err)

	src, err := f.ledger.Balance(context.Background(), from)
	require.NoError(t, err)
	assert.Equal(t, uint64(650), src.Balance)

	dst, err := f.ledger.Balance(context.Background(), to)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), dst.Balance)
}

func TestTransferRejectsWrongAuthority(t *testing.T) {
	f := newFixture()
	owner := common.HexToAddress("0x3333333333333333333333333333333333333333")
	thief := common.HexToAddress("0x5555555555555555555555555555555555555555")
	f.fund(t, owner, 900)

	err := f.ledger.Transfer(context.Background(), derive.TokenAccountAddress(owner), thief, 1, derive.WalletAuthority(thief))
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	src, err := f.ledger.Balance(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), src.Balance)
}

func TestTransferMissingSourceIsInsufficientFunds(t *testing.T) {
	f := newFixture()
	ghost := common.HexToAddress("0x6666666666666666666666666666666666666666")
	to := common.HexToAddress("0x4444444444444444444444444444444444444444")

	err := f.ledger.Transfer(context.Background(), derive.TokenAccountAddress(ghost), to, 1, derive.WalletAuthority(ghost))
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
}

func TestTransferRejectsZeroAmount(t *testing.T) {
	f := newFixture()
	from := common.HexToAddress("0x3333333333333333333333333333333333333333")
	f.fund(t, from, 900)

	err := f.ledger.Transfer(context.Background(), derive.TokenAccountAddress(from), from, 0, derive.WalletAuthority(from))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}
