package textscan

import (
	"regexp"
	"slices"
	"strings"
)

// TLDs recognized by the link matcher. The full IANA registry is overkill for
// chat; this is the set seen in practice, anchored the same way a generated
// registry matcher would be.
var linkTLDs = []string{
	"com", "net", "org", "edu", "gov", "mil", "int", "info", "biz", "name",
	"pro", "mobi", "asia", "tel", "travel", "museum", "coop", "aero", "jobs",
	"io", "co", "me", "tv", "gg", "fm", "am", "ws", "to", "cc", "ly", "gl",
	"be", "at", "ch", "de", "fr", "es", "it", "nl", "pl", "pt", "ru", "se",
	"no", "fi", "dk", "cz", "gr", "hu", "ie", "ro", "sk", "tr", "ua", "uk",
	"us", "ca", "mx", "br", "ar", "cl", "au", "nz", "jp", "kr", "cn", "in",
	"id", "za", "app", "dev", "page", "site", "online", "store", "shop",
	"blog", "news", "live", "stream", "chat", "club", "fun", "games", "xyz",
	"top", "win", "vip", "bet", "cash", "money", "link", "click", "email",
}

var linkRegex = regexp.MustCompile(buildLinkPattern(linkTLDs))

// Alternatives are ordered longest-first so a TLD never shadows another TLD
// it prefixes ("co" vs "com").
func buildLinkPattern(tlds []string) string {
	sorted := slices.Clone(tlds)
	slices.SortFunc(sorted, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return `(?i)\b(?:(?:https?|ftp)://)?(?:[a-z0-9][a-z0-9-]*\.)+(?:` +
		strings.Join(sorted, "|") + `)\b(?::\d{1,5})?(?:[/?#][^\s]*)?`
}

// ExtractLinks returns every URL-like substring of raw, in order of
// appearance. The scheme is optional, so bare domains ("google.com") match.
func ExtractLinks(raw string) []string {
	return linkRegex.FindAllString(raw, -1)
}

// LinkComparisonValue reduces one extracted link to the value compared
// against allowlists: the substring from the first `?` onward when present,
// otherwise the whole match.
func LinkComparisonValue(match string) string {
	if idx := strings.Index(match, "?"); idx >= 0 {
		return match[idx:]
	}
	return match
}
