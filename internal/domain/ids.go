package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewPrefixedID builds a short human-readable identifier such as
// PG_9F3A21B0 or ORD_EXP_4C11D2A7.
func NewPrefixedID(prefix string) string {
	short := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return prefix + "_" + strings.ToUpper(short)
}
