package textscan

import (
	"fmt"

	"github.com/spaolacci/murmur3"
)

// HashOfString returns a fast, compact hash of a string. Used to log message
// content without logging the content itself.
//
// current implementation uses murmur3, default seed, and hex encoding
func HashOfString(s string) string {
	val := murmur3.Sum64([]byte(s))
	return fmt.Sprintf("%016x", val)
}
