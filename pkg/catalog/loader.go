package catalog

import (
	"context"
	"strings"
)

// RecordExtension is the file extension record documents are expected to carry.
const RecordExtension = ".json"

// RecordLoader enumerates and reads record documents from some storage.
//
// List returns the keys of all record documents (files carrying
// RecordExtension, non-recursive). Read returns the raw bytes of one
// document; a failure to open or fetch the key wraps ErrUnreadable.
type RecordLoader interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, key string) ([]byte, error)
}

// IsRecordKey reports whether key names a record document.
func IsRecordKey(key string) bool {
	return strings.HasSuffix(key, RecordExtension)
}
