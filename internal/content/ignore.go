package content

import (
	"path/filepath"
	"strings"
)

// parseIgnoreRule extracts the glob from an ignore rule. Rules may be bare
// globs or wrapped in Read(...):
//
//	"Read(./_*.md)" → "_*.md"
//	"README.md"     → "README.md"
func parseIgnoreRule(rule string) string {
	if strings.HasPrefix(rule, "Read(") && strings.HasSuffix(rule, ")") {
		rule = rule[5 : len(rule)-1]
	}
	return strings.TrimPrefix(rule, "./")
}

// ignored reports whether a file name in the content root matches any rule.
// Matching uses filepath.Match semantics against the base name.
func ignored(rules []string, name string) bool {
	for _, rule := range rules {
		if matched, _ := filepath.Match(parseIgnoreRule(rule), name); matched {
			return true
		}
	}
	return false
}
