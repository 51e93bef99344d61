package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "pools", Pool{}.TableName())
	assert.Equal(t, "affiliates", Affiliate{}.TableName())
	assert.Equal(t, "token_accounts", TokenAccount{}.TableName())
	assert.Equal(t, "pool_events", PoolEvent{}.TableName())
}
