package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/oeis-tools/collab/pkg/catalog"
)

// nameToken matches a proper-name candidate: an uppercase letter followed by
// a lazy run of at least two characters excluding digits and the punctuation
// the catalog's annotation conventions never use inside a name.
const nameToken = `[A-Z][^0-9+()\[\]{}\\/_:;"]{2,}?`

// ContextMatcher recognizes author names in one of the textual conventions
// the corpus uses to attribute a comment to a person. The regular expression
// captures the name in its first submatch.
type ContextMatcher struct {
	Name    string
	Pattern *regexp.Regexp
}

// FindNames returns every raw capture of the matcher in text, in order.
func (m ContextMatcher) FindNames(text string) []string {
	var names []string
	for _, match := range m.Pattern.FindAllStringSubmatch(text, -1) {
		if match[1] != "" {
			names = append(names, match[1])
		}
	}
	return names
}

// DefaultMatchers returns the four attribution contexts found in the corpus:
// a name wrapped in underscore citation markers, a name in square brackets,
// a name after a dash marker running up to an opening parenthesis or comma,
// and a name after an opening parenthesis running up to a comma.
//
// The delimiters of the dash and parenthesis contexts are consumed rather
// than asserted; each matcher runs independently over the text, so a name
// another context would also recognize is still found.
func DefaultMatchers() []ContextMatcher {
	return []ContextMatcher{
		{
			Name:    "underscore",
			Pattern: regexp.MustCompile(`_(` + nameToken + `)_`),
		},
		{
			Name:    "bracket",
			Pattern: regexp.MustCompile(`\[(` + nameToken + `)\]`),
		},
		{
			Name:    "dash",
			Pattern: regexp.MustCompile(`- (` + nameToken + `)(?: \(|, )`),
		},
		{
			Name:    "paren",
			Pattern: regexp.MustCompile(`\((` + nameToken + `),`),
		},
	}
}

// Extractor recovers author names from the annotation text of catalog
// records. Extraction is fully deterministic: the same text always yields
// the same author set.
type Extractor struct {
	matchers []ContextMatcher
}

// NewExtractor creates an Extractor using the default context matchers.
func NewExtractor() *Extractor {
	return &Extractor{
		matchers: DefaultMatchers(),
	}
}

// Extract returns the sorted set of distinct author names found in the
// record's comments. A record without comments yields an empty set.
func (e *Extractor) Extract(record *catalog.CatalogRecord) []string {
	seen := make(map[string]struct{})
	for _, comment := range record.Comments() {
		e.collect(comment, seen)
	}
	return sortedNames(seen)
}

// ExtractFromText returns the sorted set of distinct author names found in a
// single annotation string.
func (e *Extractor) ExtractFromText(text string) []string {
	seen := make(map[string]struct{})
	e.collect(text, seen)
	return sortedNames(seen)
}

// collect runs every context matcher over text and adds the post-processed
// names to seen. A single raw match may carry a comma-separated co-author
// list, so each capture is split before being added.
func (e *Extractor) collect(text string, seen map[string]struct{}) {
	for _, matcher := range e.matchers {
		for _, raw := range matcher.FindNames(text) {
			for _, name := range strings.Split(raw, ", ") {
				if name == "" {
					continue
				}
				seen[name] = struct{}{}
			}
		}
	}
}

func sortedNames(seen map[string]struct{}) []string {
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
