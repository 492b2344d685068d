// Package idgen produces the short, prefixed record ids used by the store:
// <prefix>-<unix millis>-<4 random chars>, e.g. "S-1717171717171-a1b2".
package idgen

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixProduct  = "P"
	PrefixSale     = "S"
	PrefixPurchase = "PU"
)

// Generator is swappable in tests that need deterministic ids.
type Generator func(prefix string) string

func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

func NewAt(prefix string, at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return prefix + "-" + strconv.FormatInt(at.UnixMilli(), 10) + "-" + suffix
}

// UserID mirrors the login flow's "user_<millis>" identifiers.
func UserID(at time.Time) string {
	return "user_" + strconv.FormatInt(at.UnixMilli(), 10)
}
