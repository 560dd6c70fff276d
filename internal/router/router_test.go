package router

import (
	"testing"

	"github.com/joss/intentwave/internal/domain"
)

func TestRoutePriorityOrder(t *testing.T) {
	cases := []struct {
		name    string
		tags    []string
		c       domain.Complexity
		profile domain.Profile
	}{
		{"review wins over everything", []string{"review", "fix"}, domain.Moderate, domain.ProfileReviewer},
		{"verify tag hyphen part matches", []string{"verify-output"}, domain.Simple, domain.ProfileReviewer},
		{"verify exact tag", []string{"verify"}, domain.Simple, domain.ProfileReviewer},
		{"bug investigator root-cause", []string{"root-cause"}, domain.Complex, domain.ProfileBugInvestigator},
		{"hotfix tag", []string{"hotfix"}, domain.Moderate, domain.ProfileBugInvestigator},
		{"unit tester trivial", []string{"unit"}, domain.Trivial, domain.ProfileUnitTester},
		{"unit tester simple", []string{"testing"}, domain.Simple, domain.ProfileUnitTester},
		{"test engineer moderate", []string{"integration"}, domain.Moderate, domain.ProfileTestEngineer},
		{"doc writer", []string{"docs"}, domain.Moderate, domain.ProfileDocWriter},
		{"doc writer hyphenated", []string{"api-docs"}, domain.Simple, domain.ProfileDocWriter},
		{"planner by tag", []string{"design"}, domain.Moderate, domain.ProfilePlanner},
		{"planner by epic complexity", []string{"anything"}, domain.Epic, domain.ProfilePlanner},
		{"implementer fallback", []string{"build-feature"}, domain.Moderate, domain.ProfileImplementer},
		{"implementer no tags", nil, domain.Trivial, domain.ProfileImplementer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			i := domain.Intent{ID: "x", Tags: tc.tags, Complexity: tc.c}
			if got := Route(i); got != tc.profile {
				t.Errorf("Route() = %s, want %s", got, tc.profile)
			}
		})
	}
}

func TestRouteIsPure(t *testing.T) {
	i := domain.Intent{ID: "x", Tags: []string{"regression"}, Complexity: domain.Complex}
	first := Route(i)
	second := Route(i)
	if first != second {
		t.Errorf("Route is not pure: %s != %s", first, second)
	}
}

func TestRouteCaseInsensitive(t *testing.T) {
	i := domain.Intent{ID: "x", Tags: []string{"REVIEW"}, Complexity: domain.Simple}
	if got := Route(i); got != domain.ProfileReviewer {
		t.Errorf("Route() = %s, want reviewer", got)
	}
}
