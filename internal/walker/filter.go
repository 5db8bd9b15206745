package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directories never searched for data files. Image assets
// live next to the data and can be large.
var DefaultExcludes = []string{
	".git",
	"img",
	"node_modules",
	".DS_Store",
}

func shouldExcludeDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if relPath matches any of the include patterns.
// If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if relPath matches any of the exclude patterns.
// If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny uses doublestar so patterns like "locales/{en,de}/**" work.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(filepath.ToSlash(pattern), normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first malformed glob pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return &PatternError{Pattern: p}
		}
	}
	return nil
}

// PatternError is returned for a glob pattern doublestar cannot parse.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return "walker: invalid pattern " + e.Pattern
}
