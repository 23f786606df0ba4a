package cache

import (
	"regexp"
	"strings"
)

// Matcher selects keys for InvalidatePattern.
type Matcher func(key string) bool

// MatchRegexp matches keys accepted by re.
func MatchRegexp(re *regexp.Regexp) Matcher {
	if re == nil {
		return nil
	}
	return re.MatchString
}

// MatchPrefix matches keys starting with prefix.
func MatchPrefix(prefix string) Matcher {
	return func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}
}

// MatchAny matches keys accepted by at least one of matchers.
func MatchAny(matchers ...Matcher) Matcher {
	return func(key string) bool {
		for _, m := range matchers {
			if m != nil && m(key) {
				return true
			}
		}
		return false
	}
}
