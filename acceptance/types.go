// Package acceptance turns plain-text GWT (Given-When-Then) specs into
// scaffolded bdd suites.
//
// A spec file is parsed into a Feature, which can be stored as JSON or YAML
// and rendered into a Go test file whose scenario methods are filled in by
// hand. Regenerating keeps every method that has been filled in.
package acceptance

// Keywords that start a step.
const (
	KeywordGiven = "GIVEN"
	KeywordWhen  = "WHEN"
	KeywordThen  = "THEN"
	KeywordAnd   = "AND"
)

// Step is a single GIVEN, WHEN, or THEN statement of a scenario.
type Step struct {
	// Keyword is "GIVEN", "WHEN", or "THEN". An AND step carries the
	// keyword it continues.
	Keyword string `json:"keyword" yaml:"keyword"`
	// And is set when the step was written with AND.
	And bool `json:"and,omitempty" yaml:"and,omitempty"`
	// Text is the step description without the keyword.
	Text string `json:"text" yaml:"text"`
	// Line is the 1-based source line of the step.
	Line int `json:"line" yaml:"line"`
}

// Label returns the keyword the step was written with.
func (s Step) Label() string {
	if s.And {
		return KeywordAnd
	}
	return s.Keyword
}

// Scenario is a named sequence of steps.
type Scenario struct {
	// Description is the title from the ;=== header.
	Description string `json:"description" yaml:"description"`
	Steps       []Step `json:"steps" yaml:"steps"`
	// Line is the source line of the description.
	Line int `json:"line" yaml:"line"`
}

// Feature is a parsed spec file.
type Feature struct {
	SourceFile string     `json:"source_file" yaml:"source_file"`
	Scenarios  []Scenario `json:"scenarios" yaml:"scenarios"`
}
