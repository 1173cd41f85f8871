package concept

import (
	"regexp"
	"sort"
	"strings"
)

// extractPatterns mine concept-like tokens out of freeform skill text:
// decorators, macros, backtick-quoted identifiers, and fixed keyword groups
// for the Swift/SwiftUI/concurrency/testing domain the default graph covers.
var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@\w+`),
	regexp.MustCompile("#\\w+"),
	regexp.MustCompile("`([^`]+)`"),
	regexp.MustCompile(`(?i)\b(?:async|await|actor|sendable|nonisolated|isolated)\b`),
	regexp.MustCompile(`(?i)\b(?:Task|TaskGroup|AsyncSequence|AsyncStream)\b`),
	regexp.MustCompile(`(?i)\b(?:@Observable|@State|@Binding|@Environment|@Published)\b`),
	regexp.MustCompile(`(?i)\b(?:NavigationStack|NavigationPath|Sheet|Alert)\b`),
	regexp.MustCompile(`(?i)\b(?:ForEach|LazyVStack|LazyHStack|ScrollView)\b`),
	regexp.MustCompile(`(?i)\b(?:MVVM|TCA|VIPER|Coordinator)\b`),
	regexp.MustCompile(`(?i)\b(?:XCTest|Swift Testing|@Test|@Suite)\b`),
}

// ExtractConcepts mines concept-like tokens from freeform text. It is used
// only for indexing-time observability (logging which concepts a newly
// indexed skill introduces) and never gates indexing.
func ExtractConcepts(text string) []string {
	seen := make(map[string]bool)
	for _, pattern := range extractPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			clean := strings.ToLower(strings.Trim(match, "`"))
			seen[clean] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
