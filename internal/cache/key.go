package cache

import (
	"fmt"
	"strings"
)

// checkDocID rejects document IDs that cannot safely name a file or object
// key. Provider IDs are opaque, so anything that could escape the cache
// root is refused rather than rewritten.
func checkDocID(docID string) error {
	switch {
	case docID == "":
		return fmt.Errorf("empty document id")
	case docID == "." || docID == "..":
		return fmt.Errorf("invalid document id: %q", docID)
	case strings.ContainsAny(docID, "/\\\x00"):
		return fmt.Errorf("document id contains a path separator: %q", docID)
	}
	return nil
}
