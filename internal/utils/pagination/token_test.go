package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(entryDate, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedNumber, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, entryDate, decodedDate, "Entry date should match after decode")
	assert.Equal(t, int64(42), decodedNumber, "Entry number should match after decode")

	zeroToken := EncodeToken(time.Time{}, 0)
	decodedZeroDate, decodedZeroNumber, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero values should not return an error")
	assert.True(t, decodedZeroDate.IsZero())
	assert.Equal(t, int64(0), decodedZeroNumber)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("no separator")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("not-a-date|1")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|abc")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry number parse")
}

func TestAfter(t *testing.T) {
	day := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, After(day, 9, day, 10), "lower number on same date comes later")
	assert.False(t, After(day, 10, day, 10), "cursor row itself is excluded")
	assert.False(t, After(day, 11, day, 10))
	assert.True(t, After(day.AddDate(0, 0, -1), 99, day, 10), "earlier date comes later")
	assert.False(t, After(day.AddDate(0, 0, 1), 1, day, 10))
}
