package overlay

import "fmt"

// Toggle is one mutable feature flag under a product.
type Toggle struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// ToggleSet is the mutable per-product feature flag list shown on the user
// detail page. Unlike the per-country attribute records, these are keyed by
// feature label and editable.
type ToggleSet struct {
	Product string
	toggles []Toggle
	state   map[string]bool
}

// NewToggleSet builds a set for a product, seeded with defaults. Unknown
// products get an empty set.
func NewToggleSet(product string) *ToggleSet {
	toggles := productToggles[product]
	s := &ToggleSet{
		Product: product,
		toggles: toggles,
		state:   make(map[string]bool, len(toggles)),
	}
	for _, t := range toggles {
		s.state[t.Label] = t.Default
	}
	return s
}

// ToggleProducts returns the products that carry a feature toggle list.
func ToggleProducts() []string {
	return []string{
		"Select",
		"Assess",
		"Profile Manager",
		"Content Library",
		"Organizational Data Collection",
		"Insight",
		"Pay Equity",
		"KF Architect",
	}
}

// Toggles returns the flag definitions in display order.
func (s *ToggleSet) Toggles() []Toggle {
	return append([]Toggle{}, s.toggles...)
}

// Labels returns the toggle labels in display order.
func (s *ToggleSet) Labels() []string {
	out := make([]string, len(s.toggles))
	for i, t := range s.toggles {
		out[i] = t.Label
	}
	return out
}

// Enabled reports a toggle's current value.
func (s *ToggleSet) Enabled(label string) bool {
	return s.state[label]
}

// Set updates a toggle. Unknown labels are rejected rather than created.
func (s *ToggleSet) Set(label string, enabled bool) error {
	if _, ok := s.state[label]; !ok {
		return fmt.Errorf("unknown toggle %q for product %s", label, s.Product)
	}
	s.state[label] = enabled
	return nil
}

// Flip inverts a toggle.
func (s *ToggleSet) Flip(label string) error {
	return s.Set(label, !s.state[label])
}

func on(label, desc string) Toggle  { return Toggle{Label: label, Description: desc, Default: true} }
func off(label, desc string) Toggle { return Toggle{Label: label, Description: desc, Default: false} }

// productToggles holds the per-product feature flag catalogs. Assess carries
// the full attribute list; everything defaults on except the four flags that
// ship disabled.
var productToggles = map[string][]Toggle{
	"Select": {
		on("Candidate List", "Access to candidate list."),
		on("Development", "Access to development features."),
		on("Professional", "Access to professional features."),
	},
	"Assess": {
		on("Potential", "This toggle only affects access in Assess."),
		on("Potential + Learning Agility", "This toggle only affects access in Assess."),
		on("Leadership", "This toggle only affects access in Assess."),
		on("Leadership + Learning Agility", "This toggle only affects access in Assess."),
		on("Leadership + Potential add On", "This toggle only affects access in Assess."),
		on("Leadership + Potential add on + Learning Agility", "This toggle only affects access in Assess."),
		on("Professional", "This toggle only affects access in Assess."),
		on("Professional + Learning Agility", "This toggle only affects access in Assess."),
		on("Market Insights", "This toggle also affects access in Select, Profile Manager and Content Library"),
		off("Learning Agility", "This toggle only affects access in Assess."),
		on("Grade", "This toggle also affects access in Select, Profile Manager and Content Library"),
		on("Salary Data", "This toggle also affects access in Select and Profile Manager."),
		on("Create Projects", "This toggle also affects access in Profile Manager."),
		on("Edit Project Settings", "This toggle only affects access in Assess."),
		on("Adjust Success Profile in an assessment project", "This toggle only affects access in Assess."),
		on("Save adjusted Success Profile for re-use in other projects", "This toggle affects access in Assess."),
		on("Edit Success Profiles", "This toggle affects access in Assess."),
		on("Collaborative Edit Success Profile", "This toggle only affects access in Assess."),
		on("Add Participants to a Project", "This toggle only affects access in Assess."),
		on("Search/view assessment participants across all User Groups", "This toggle affects access in Assess."),
		on("Update participant details", "This toggle only affects access in Assess."),
		on("Remove participants from a project", "This toggle only affects access in Assess."),
		on("Adjust participant feedback setting in an assessment project", "This toggle only affects access in Assess."),
		on("Create/Edit Email Templates", "This toggle only affects access in Assess."),
		on("Send email invites", "This toggle only affects access in Assess."),
		on("Send email reminders", "This toggle only affects access in Assess."),
		on("Receive email notifications when participants complete their assessments (default)", "This toggle affects access in Assess."),
		off("Compare Participant against multiple Success Profiles", "This toggle only affects access in Assess. It will not prevent access to downloads from Profile Manager or Content Library."),
		on("View Results/Download Reports", "This toggle only affects access in Assess."),
		off("Technical Skills Inventory", "This toggle only affects access in Assess."),
		off("The Inclusive Leader™ Situational Insight Tool", "This toggle only affects access in Assess."),
	},
	"Profile Manager": {
		on("Create Project", "Can create new projects."),
		on("Edit Project Settings", "Can edit project settings."),
	},
	"Content Library": {
		on("Access Content Library", "Access to content library."),
	},
	"Organizational Data Collection": {
		on("Access Org Data", "Access to organizational data collection."),
	},
	"Insight": {
		on("Access Insight", "Access to insight features."),
	},
	"Pay Equity": {
		on("Access Pay Equity", "Access to pay equity features."),
		on("View Reports", "Can view pay equity reports."),
	},
	"KF Architect": {
		on("Job Matching", "Enable job matching."),
		on("Add Job", "Allow adding jobs."),
	},
}
