package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"careercompass-backend/internal/shared/util"
)

// Fingerprint derives a stable identifier from the matching-relevant profile
// fields. Skills and job titles are normalized and sorted first, so re-parsing
// the same resume (which may reorder extracted skills) yields the same value.
// Pure function: no I/O, no randomness.
func Fingerprint(p Profile) string {
	parts := []string{
		strings.Join(util.NormalizeList(p.Skills), ","),
		util.NormalizeToken(p.Experience),
		strings.Join(util.NormalizeList(p.LastJobTitles), ","),
		util.NormalizeToken(p.Location),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
