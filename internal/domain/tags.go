package domain

import "strings"

// expandTags lowercases each tag and, for hyphenated tags, also emits the
// hyphen-split parts, so a rule matching on "cause" also matches the tag
// "root-cause". Matching is case-insensitive per the Profile Router's
// contract.
func expandTags(tags []string) []string {
	expanded := make([]string, 0, len(tags)*2)
	for _, t := range tags {
		lower := strings.ToLower(strings.TrimSpace(t))
		if lower == "" {
			continue
		}
		expanded = append(expanded, lower)
		if strings.Contains(lower, "-") {
			expanded = append(expanded, strings.Split(lower, "-")...)
		}
	}
	return expanded
}

// ContainsAny reports whether tagSet contains any of the given keywords.
func ContainsAny(tagSet []string, keywords ...string) bool {
	for _, tag := range tagSet {
		for _, kw := range keywords {
			if tag == kw {
				return true
			}
		}
	}
	return false
}
