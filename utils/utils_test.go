package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
	"lms/utils"
)

func TestHashAndCheckPassword(t *testing.T) {
	config.LoadConfig()

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hashed)

	assert.True(t, utils.CheckPassword(hashed, "password123"))
	assert.False(t, utils.CheckPassword(hashed, "wrong"))
}

func TestMaskSecret(t *testing.T) {
	config.LoadConfig()

	assert.Equal(t, "********", utils.MaskSecret("sk-live-abc123"))
	assert.Equal(t, "", utils.MaskSecret(""))

	assert.True(t, utils.IsMasked("********"))
	assert.False(t, utils.IsMasked("sk-live-abc123"))
}

func TestPagination(t *testing.T) {
	page, limit, offset := utils.Pagination(nil, nil)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	three, fifty := 3, 50
	page, limit, offset = utils.Pagination(&three, &fifty)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 100, offset)

	// Non-positive values fall back to defaults
	zero, negative := 0, -5
	page, limit, offset = utils.Pagination(&zero, &negative)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)
}
