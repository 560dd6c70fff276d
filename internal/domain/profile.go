package domain

// Profile is one of the seven closed agent-role classifications an intent
// is routed to before binding to a concrete agent.
type Profile string

const (
	ProfileImplementer    Profile = "implementer"
	ProfileUnitTester      Profile = "unit-tester"
	ProfileTestEngineer    Profile = "test-engineer"
	ProfileDocWriter       Profile = "doc-writer"
	ProfileReviewer        Profile = "reviewer"
	ProfileBugInvestigator Profile = "bug-investigator"
	ProfilePlanner         Profile = "planner"
)

// AllProfiles lists the closed enumeration of seven profiles.
func AllProfiles() []Profile {
	return []Profile{
		ProfileImplementer,
		ProfileUnitTester,
		ProfileTestEngineer,
		ProfileDocWriter,
		ProfileReviewer,
		ProfileBugInvestigator,
		ProfilePlanner,
	}
}

// Valid reports whether p is one of the seven declared profiles.
func (p Profile) Valid() bool {
	for _, known := range AllProfiles() {
		if p == known {
			return true
		}
	}
	return false
}
