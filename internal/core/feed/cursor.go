package feed

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Cursor marks the last entry a reader has seen. The encoded form is
// opaque to clients.
type Cursor struct {
	CreatedAt int64
	ID        int64
}

func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d:%d", c.CreatedAt, c.ID)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses an encoded cursor. Anything malformed, including
// the empty string, decodes to nil: readers start from the top rather
// than getting an error.
func DecodeCursor(s string) *Cursor {
	if s == "" {
		return nil
	}
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return nil
	}
	createdAt, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil
	}
	return &Cursor{CreatedAt: createdAt, ID: id}
}
