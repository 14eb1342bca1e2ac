package history

import (
	"math/rand"
	"strconv"
	"strings"
)

// DefaultKeyLength is the length of generated entry keys.
const DefaultKeyLength = 6

// createKey returns a random base-36 key of length n.
func createKey(n int) string {
	if n <= 0 {
		n = DefaultKeyLength
	}
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(strconv.FormatUint(rand.Uint64(), 36))
	}
	return b.String()[:n]
}

func clamp(n, lower, upper int) int {
	return min(max(n, lower), upper)
}
