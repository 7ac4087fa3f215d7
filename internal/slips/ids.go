package slips

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ataymia/slipsmith-sub000/internal/models"
)

// SlipID derives the deterministic slip identifier
// "<SPORT>_<YYYY>_<MM>_<DD>_<TIER>". Same inputs, same id — required for
// idempotent export.
func SlipID(league, date string, tier models.Tier) string {
	return fmt.Sprintf("%s_%s_%s",
		strings.ToUpper(league),
		strings.ReplaceAll(date, "-", "_"),
		strings.ToUpper(string(tier)))
}

// EventID derives the deterministic event identifier from everything that
// makes a market decision unique. Same inputs always produce the same id,
// which is what makes StoreEvents an idempotent upsert.
func EventID(league, gameID, subject, market string, line float64, direction models.Direction, date string) string {
	payload := fmt.Sprintf("%s|%s|%s|%.2f|%s", gameID, subject, market, line, direction)
	sum := sha256.Sum256([]byte(payload))
	return fmt.Sprintf("%s_%s_%s",
		strings.ToUpper(league),
		strings.ReplaceAll(date, "-", ""),
		hex.EncodeToString(sum[:])[:12])
}
