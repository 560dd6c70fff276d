// Package router maps each intent to an agent-profile class from its tags
// and complexity. The router is pure and side-effect-free: it never
// branches on intent source shape, only on the normalized tag set and
// complexity tier (§9 "Dynamic tag parsing").
package router

import "github.com/joss/intentwave/internal/domain"

// rule is one entry in the precompiled priority table. match receives the
// intent's expanded, lowercased tag set.
type rule struct {
	profile domain.Profile
	match   func(tags []string, c domain.Complexity) bool
}

// table is the declared priority-ordered rule set from spec §4.4. First
// match wins. Precompiled once at package init; no runtime
// metaprogramming.
var table = []rule{
	{
		profile: domain.ProfileReviewer,
		match: func(tags []string, _ domain.Complexity) bool {
			return domain.ContainsAny(tags, "verify", "review")
		},
	},
	{
		profile: domain.ProfileBugInvestigator,
		match: func(tags []string, _ domain.Complexity) bool {
			return domain.ContainsAny(tags, "reproduce", "diagnose", "fix", "hotfix", "root-cause")
		},
	},
	{
		profile: domain.ProfileUnitTester,
		match: func(tags []string, c domain.Complexity) bool {
			if !domain.ContainsAny(tags, "test", "testing", "unit", "integration", "regression") {
				return false
			}
			return c == domain.Trivial || c == domain.Simple
		},
	},
	{
		profile: domain.ProfileTestEngineer,
		match: func(tags []string, _ domain.Complexity) bool {
			return domain.ContainsAny(tags, "test", "testing", "integration", "regression")
		},
	},
	{
		profile: domain.ProfileDocWriter,
		match: func(tags []string, _ domain.Complexity) bool {
			return domain.ContainsAny(tags, "docs", "document", "api-docs", "user-guide")
		},
	},
	{
		profile: domain.ProfilePlanner,
		match: func(tags []string, c domain.Complexity) bool {
			if c == domain.Epic {
				return true
			}
			return domain.ContainsAny(tags, "analysis", "analyze", "requirements", "research", "design")
		},
	},
}

// Route returns the profile an intent routes to, per the priority-ordered
// rule table. Priority 7 ("any other case") is the implicit fallback when
// no rule matches.
func Route(i domain.Intent) domain.Profile {
	tags := i.TagSet()
	for _, r := range table {
		if r.match(tags, i.Complexity) {
			return r.profile
		}
	}
	return domain.ProfileImplementer
}
