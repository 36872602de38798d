package edit

import (
	"strings"

	"github.com/google/uuid"
)

// newHexID returns the first n hex characters of a fresh UUID, the id shape
// memo and field anchors carry.
func newHexID(n int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(id) {
		n = len(id)
	}
	return id[:n]
}
