package inference

import (
	"regexp"
	"strings"
)

// The inference service is asked for a fenced JSON block, but models
// drift: single quotes, bare keys, trailing commas, literal undefined.
// Rather than regex-patching inline at the call site, the recovery
// rules live here, each one small and testable, applied only after a
// straight json.Unmarshal of the extracted block has failed.

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractFencedJSON pulls the JSON payload out of a model response:
// the first fenced code block if present, otherwise the outermost
// brace-delimited span.
func ExtractFencedJSON(response string) (string, bool) {
	if m := fencedBlockRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(response[start : end+1]), true
	}
	return "", false
}

var (
	singleQuotedRe  = regexp.MustCompile(`'([^'\\]*)'`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	undefinedRe     = regexp.MustCompile(`\bundefined\b`)
)

// Repair applies the recovery rules in a fixed order: quote
// normalization, unquoted-key fix, undefined to null, trailing-comma
// strip. Best effort: the result still has to survive a real parse.
func Repair(s string) string {
	s = singleQuotedRe.ReplaceAllString(s, `"$1"`)
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2":`)
	s = undefinedRe.ReplaceAllString(s, "null")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return s
}
