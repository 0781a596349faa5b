package normalize

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const titleHashLength = 12

// DeriveId produces the canonical bill id from upstream identifiers, first
// match wins: explicit string id, numeric id rendered as string,
// jurisdiction + bill number, hash of the cleaned title, random fallback.
// stable is false only for the random fallback; unstable ids must never be
// used to correlate mutations across re-fetches.
func DeriveId(explicit, numeric, jurisdiction, billNumber, title string) (id string, stable bool) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, true
	}
	if v := strings.TrimSpace(numeric); v != "" {
		return v, true
	}
	if bn := strings.TrimSpace(billNumber); bn != "" {
		return fmt.Sprintf("%s-%s", strings.TrimSpace(jurisdiction), bn), true
	}
	if key := alphanumericLower(title); key != "" {
		sum := md5.Sum([]byte(key))
		return fmt.Sprintf("%x", sum)[:titleHashLength], true
	}
	return "unstable-" + uuid.NewString(), false
}

func alphanumericLower(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
