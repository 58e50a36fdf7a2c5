package movements

import (
	"strings"

	"github.com/google/uuid"
)

const (
	movementTrackingPrefix     = "TRK"
	bulkMovementTrackingPrefix = "BLK"
)

// NewTrackingNumber generates a unique tracking number such as
// TRK-9F4C2A81D03E47B6. Uniqueness comes from the underlying UUID; the
// unique index on the column is the final guard.
func NewTrackingNumber(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + raw[:16]
}
