package task

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID generates an opaque task identifier. IDs embed the creation time
// in milliseconds plus a random suffix so concurrent creates never collide.
func NewID() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix) // rand.Read never fails on supported platforms
	return fmt.Sprintf("task_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
