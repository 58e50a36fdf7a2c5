package movements

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTrackingNumber(t *testing.T) {
	number := NewTrackingNumber(movementTrackingPrefix)

	assert.True(t, strings.HasPrefix(number, "TRK-"))
	assert.Len(t, number, len("TRK-")+16)
	assert.Equal(t, strings.ToUpper(number), number)
}

func TestNewTrackingNumberIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := NewTrackingNumber(bulkMovementTrackingPrefix)
		assert.False(t, seen[number], "duplicate tracking number %s", number)
		seen[number] = true
	}
}
