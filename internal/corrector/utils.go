package corrector

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Cache operations.
const (
	opCheckSpelling = "check_spelling"
	opSuggestions   = "suggestions"
)

// Normalize composes Vietnamese diacritics into precomposed letters and
// collapses whitespace runs into single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

// cacheKey hashes an operation name with its input.
func cacheKey(op, input string) string {
	sum := sha256.Sum256([]byte(op + ":" + input))
	return hex.EncodeToString(sum[:])
}
