package locator

import (
	"regexp"
	"strings"
)

var randomClassPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[a-z]-[a-z]-[a-z]-\d+$`),
	regexp.MustCompile(`(?i)^_[a-z0-9]{5,}$`),
	regexp.MustCompile(`(?i)^[a-z]{1,3}\d{3,}$`),
	regexp.MustCompile(`(?i)^(sc|css|jsx)-[a-z0-9]{4,}$`),
}

// hashSuffix matches word-suffix classes such as "item-7f3k". The suffix
// must carry a digit, otherwise "product-card" would be rejected too.
var hashSuffix = regexp.MustCompile(`(?i)^[a-z]+-([a-z0-9]{3,})$`)

var utilityClassPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(m|p|w|h|text|bg|flex|grid|border|rounded|shadow)-`),
	regexp.MustCompile(`^(active|hover|focus|disabled|visited):`),
	regexp.MustCompile(`--(hover|active|focus|visited|disabled|selected|playing|paused|loading|loaded)$`),
	regexp.MustCompile(`^(is|has|was)-`),
}

// anchorStatePattern rejects state classes when anchoring an ordered path.
var anchorStatePattern = regexp.MustCompile(`(?i)^(active|hover|focus|current|is-)`)

var hashLikeID = regexp.MustCompile(`(?i)^[a-z0-9]{8,}$`)

// DefaultGenericIDs are ids too common across sites to identify anything.
var DefaultGenericIDs = []string{"root", "app", "main", "content", "wrapper", "container"}

// IsRandomClassName reports whether a class looks machine generated.
func IsRandomClassName(name string) bool {
	if m := hashSuffix.FindStringSubmatch(name); m != nil && strings.ContainsAny(m[1], "0123456789") {
		return true
	}
	for _, p := range randomClassPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// IsUtilityClassName reports whether a class is a utility or state class.
func IsUtilityClassName(name string) bool {
	for _, p := range utilityClassPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// DefaultAcceptClass is the default class acceptance predicate.
func DefaultAcceptClass(name string) bool {
	return !IsRandomClassName(name) && !IsUtilityClassName(name)
}

// AcceptClassWithPrefixes extends DefaultAcceptClass with extra rejected
// utility prefixes, e.g. "tw-" or "u-".
func AcceptClassWithPrefixes(prefixes []string) func(string) bool {
	if len(prefixes) == 0 {
		return DefaultAcceptClass
	}
	return func(name string) bool {
		for _, p := range prefixes {
			if p != "" && strings.HasPrefix(name, p) {
				return false
			}
		}
		return DefaultAcceptClass(name)
	}
}

// DefaultAcceptTag accepts every tag name.
func DefaultAcceptTag(string) bool { return true }

// IsValidID reports whether id is stable enough to anchor on: not hash-like
// and not one of the generic names.
func IsValidID(id string, generic []string) bool {
	if id == "" || hashLikeID.MatchString(id) {
		return false
	}
	for _, g := range generic {
		if strings.EqualFold(id, g) {
			return false
		}
	}
	return true
}

// anchorClass returns the first class usable as an ordered-path anchor.
func anchorClass(classes []string) string {
	for _, c := range classes {
		if IsRandomClassName(c) || anchorStatePattern.MatchString(c) {
			continue
		}
		return c
	}
	return ""
}

// mainClass returns the longest class surviving the state and utility
// filters, or "" when none does.
func mainClass(classes []string) string {
	best := ""
	for _, c := range classes {
		if IsUtilityClassName(c) {
			continue
		}
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}
