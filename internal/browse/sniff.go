package browse

import (
	"github.com/h2non/filetype"
)

// Describe returns a short human description of an entry for the status line.
// Files with no known launcher kind are sniffed by their magic bytes.
func Describe(e Entry) string {
	if e.Up {
		return "parent directory"
	}
	if e.Kind != KindOther {
		return e.Kind.String()
	}
	t, err := filetype.MatchFile(e.Path)
	if err != nil || t == filetype.Unknown {
		return "unknown file type"
	}
	return t.MIME.Value
}
