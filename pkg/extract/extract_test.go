package extract

import (
	"reflect"
	"testing"

	"github.com/oeis-tools/collab/pkg/catalog"
)

func TestExtractFromText(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "underscore_citation",
			text: "_Alice Example_ contributed this.",
			want: []string{"Alice Example"},
		},
		{
			name: "dash_marker_before_parenthesis",
			text: "- Bob Carter (Jan 01 2020)",
			want: []string{"Bob Carter"},
		},
		{
			name: "dash_marker_before_comma",
			text: "- Bob Carter, Jan 01 2020",
			want: []string{"Bob Carter"},
		},
		{
			name: "two_underscore_citations",
			text: "_Alice Example_, _Dana Lee_",
			want: []string{"Alice Example", "Dana Lee"},
		},
		{
			name: "bracketed_name",
			text: "See the table in [Charles Greathouse].",
			want: []string{"Charles Greathouse"},
		},
		{
			name: "parenthesis_before_comma",
			text: "A classic identity (Dana Lee, 'unpublished').",
			want: []string{"Dana Lee"},
		},
		{
			name: "comma_separated_coauthors_in_brackets",
			text: "[Alice Example, Dana Lee]",
			want: []string{"Alice Example", "Dana Lee"},
		},
		{
			name: "comma_separated_coauthors_in_underscores",
			text: "_Alice Example, Dana Lee_ proved this.",
			want: []string{"Alice Example", "Dana Lee"},
		},
		{
			name: "same_name_twice_yields_one_entry",
			text: "_Alice Example_ said so. _Alice Example_ later agreed.",
			want: []string{"Alice Example"},
		},
		{
			name: "initials_with_periods",
			text: "_N. J. A. Sloane_",
			want: []string{"N. J. A. Sloane"},
		},
		{
			name: "digits_block_the_match",
			text: "_A000045_ is referenced here.",
			want: nil,
		},
		{
			name: "lowercase_start_is_not_a_name",
			text: "_alice example_",
			want: nil,
		},
		{
			name: "no_attribution_contexts",
			text: "The terms grow roughly like n factorial.",
			want: nil,
		},
		{
			name: "empty_text",
			text: "",
			want: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := extractor.ExtractFromText(tc.text)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractRecord(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor()

	tests := []struct {
		name   string
		record *catalog.CatalogRecord
		want   []string
	}{
		{
			name:   "no_results",
			record: &catalog.CatalogRecord{},
			want:   nil,
		},
		{
			name: "no_comments",
			record: &catalog.CatalogRecord{
				Results: []catalog.RecordResult{{Number: 45, Name: "Fibonacci numbers"}},
			},
			want: nil,
		},
		{
			name: "names_accumulate_across_comments",
			record: &catalog.CatalogRecord{
				Results: []catalog.RecordResult{{
					Comments: []string{
						"First observed by _Alice Example_.",
						"Proof given later. - Dana Lee (Feb 02 2021)",
					},
				}},
			},
			want: []string{"Alice Example", "Dana Lee"},
		},
		{
			name: "duplicates_across_comments_collapse",
			record: &catalog.CatalogRecord{
				Results: []catalog.RecordResult{{
					Comments: []string{
						"_Alice Example_",
						"Confirmed. - Alice Example, Mar 03 2022",
					},
				}},
			},
			want: []string{"Alice Example"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := extractor.Extract(tc.record)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor()
	text := "_Alice Example_ and _Dana Lee_ with [Bob Carter, Eve Fisher]."

	first := extractor.ExtractFromText(text)
	for i := 0; i < 20; i++ {
		if got := extractor.ExtractFromText(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestContextMatchersAreIndependent(t *testing.T) {
	t.Parallel()

	for _, matcher := range DefaultMatchers() {
		matcher := matcher
		t.Run(matcher.Name, func(t *testing.T) {
			if got := matcher.FindNames("no attribution here"); got != nil {
				t.Fatalf("expected no names, got %v", got)
			}
		})
	}

	// The dash context consumes its trailing delimiter, so a dash-attributed
	// name followed by a parenthesis is found by the dash matcher alone.
	text := "- Bob Carter (private communication)"
	var found []string
	for _, matcher := range DefaultMatchers() {
		found = append(found, matcher.FindNames(text)...)
	}
	if len(found) != 1 || found[0] != "Bob Carter" {
		t.Fatalf("got %v, want [Bob Carter]", found)
	}
}
