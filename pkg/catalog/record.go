package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnreadable indicates a record file could not be opened or read.
var ErrUnreadable = errors.New("record unreadable")

// ErrMalformed indicates a record file did not contain a valid JSON document.
var ErrMalformed = errors.New("malformed record document")

// CatalogRecord is the subset of a sequence catalog document that the
// pipeline consumes. A record document has the shape
//
//	{ "results": [ { ..., "comment": ["...", ...] }, ... ] }
//
// Only the comments of the first result are used. A missing "results" or
// "comment" key is a normal case, not an error: the record simply carries
// no annotations.
type CatalogRecord struct {
	Results []RecordResult `json:"results"`
}

// RecordResult is one entry of a record's "results" list.
type RecordResult struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Comments []string `json:"comment"`
}

// Comments returns the annotation strings of the first result, or nil when
// the record has no results or no comments.
func (r *CatalogRecord) Comments() []string {
	if r == nil || len(r.Results) == 0 {
		return nil
	}
	return r.Results[0].Comments
}

// DecodeRecord parses a record document. A parse failure wraps ErrMalformed.
func DecodeRecord(data []byte) (*CatalogRecord, error) {
	var record CatalogRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &record, nil
}
