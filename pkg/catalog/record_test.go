package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		data         string
		wantComments []string
		wantErr      error
	}{
		{
			name:         "record_with_comments",
			data:         `{"results":[{"number":45,"name":"Fibonacci numbers","comment":["First comment.","Second comment."]}]}`,
			wantComments: []string{"First comment.", "Second comment."},
		},
		{
			name:         "missing_comment_key",
			data:         `{"results":[{"number":45,"name":"Fibonacci numbers"}]}`,
			wantComments: nil,
		},
		{
			name:         "missing_results_key",
			data:         `{"count":0}`,
			wantComments: nil,
		},
		{
			name:         "only_first_result_is_consumed",
			data:         `{"results":[{"comment":["kept"]},{"comment":["ignored"]}]}`,
			wantComments: []string{"kept"},
		},
		{
			name:    "invalid_json",
			data:    `{not json`,
			wantErr: ErrMalformed,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			record, err := DecodeRecord([]byte(tc.data))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := record.Comments()
			if len(got) == 0 && len(tc.wantComments) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.wantComments) {
				t.Fatalf("comments = %v, want %v", got, tc.wantComments)
			}
		})
	}
}

func TestCommentsOnNilRecord(t *testing.T) {
	t.Parallel()

	var record *CatalogRecord
	if got := record.Comments(); got != nil {
		t.Fatalf("comments = %v, want nil", got)
	}
}

func TestIsRecordKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want bool
	}{
		{"A000045.json", true},
		{"A000045.txt", false},
		{"A000045", false},
		{".json", true},
	}

	for _, tc := range tests {
		if got := IsRecordKey(tc.key); got != tc.want {
			t.Fatalf("IsRecordKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}
