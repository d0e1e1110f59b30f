package match

import (
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// Stopwords are excluded from keyword extraction.
var Stopwords = map[string]struct{}{
	"with": {}, "the": {}, "and": {}, "for": {}, "you": {}, "are": {},
	"our": {}, "that": {}, "from": {}, "will": {}, "have": {}, "your": {},
	"job": {}, "role": {}, "responsibilities": {}, "requirements": {},
	"preferred": {}, "must": {},
}

// IsStopword reports whether word is in the fixed stopword list.
func IsStopword(word string) bool {
	_, ok := Stopwords[strings.ToLower(word)]
	return ok
}

// ExtractKeywords returns the distinct lowercase alphabetic tokens of at
// least three letters in text, minus stopwords. The slice is sorted for
// stable output; callers should treat it as a set.
func ExtractKeywords(text string) []string {
	seen := make(map[string]struct{})
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := Stopwords[word]; stop {
			continue
		}
		seen[word] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for word := range seen {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

// MatchKeywords splits the job description keywords into those contained in
// resumeText and those that are not. Containment is a plain substring test,
// so "java" matches inside "javascript".
func MatchKeywords(resumeText, jdText string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for _, kw := range ExtractKeywords(jdText) {
		if strings.Contains(resumeText, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return matched, missing
}
