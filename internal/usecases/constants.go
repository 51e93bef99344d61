package usecases

// Seed length limits. These mirror the derivation rules in pkg/derive so a
// request is rejected before any address is computed from it.
const (
	MaxPoolIDLen = 32
	MaxRefIDLen  = 32
)

// Commission rates are expressed in basis points of the sale amount.
const (
	BasisPointsDenominator = 10000
	MaxCommissionRateBps   = 10000
)
