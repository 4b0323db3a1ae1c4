package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemNotFoundEchoesIdentifier(t *testing.T) {
	err := ItemNotFound("tag-42")
	assert.Equal(t, "ITEM_NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "tag-42")
}

func TestSelfScanIsInformational(t *testing.T) {
	err := SelfScan("item-1")
	assert.Equal(t, "SELF_SCAN", err.Code)
	assert.Less(t, err.Status, http.StatusBadRequest)
}

func TestIsAndCode(t *testing.T) {
	err := StoreUnavailable("get item", fmt.Errorf("deadline exceeded"))
	assert.True(t, Is(err, "STORE_UNAVAILABLE"))
	assert.False(t, Is(err, "NOT_FOUND"))
	assert.Equal(t, "STORE_UNAVAILABLE", Code(err))

	plain := fmt.Errorf("plain")
	assert.False(t, Is(plain, "STORE_UNAVAILABLE"))
	assert.Empty(t, Code(plain))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := StoreUnavailable("subscribe", cause)
	assert.Equal(t, cause, err.Unwrap())
}
