package caoi

import (
	"fmt"
	"strings"
)

// Requirement is an expected outcome declared in a script with a
// `## Typechecker: Pass` or `## Typechecker: Fail` line.
type Requirement int

const (
	TypecheckerPass Requirement = iota
	TypecheckerFail
)

func (r Requirement) String() string {
	if r == TypecheckerFail {
		return "Typechecker: Fail"
	}

	return "Typechecker: Pass"
}

// ParseRequirements scans the annotation lines of a script. Unknown keywords
// and statuses are skipped and reported as warnings.
func ParseRequirements(script string) ([]Requirement, []string) {
	var (
		reqs     []Requirement
		warnings []string
	)

	for _, line := range strings.Split(script, "\n") {
		if !strings.HasPrefix(line, "##") {
			continue
		}

		parts := strings.Fields(strings.TrimPrefix(line, "##"))
		if len(parts) == 0 {
			continue
		}

		if parts[0] != "Typechecker:" {
			warnings = append(warnings, fmt.Sprintf("unknown requirement `%s`", parts[0]))
			continue
		}

		if len(parts) < 2 {
			warnings = append(warnings, "missing typechecker status")
			continue
		}

		switch parts[1] {
		case "Pass":
			reqs = append(reqs, TypecheckerPass)
		case "Fail":
			reqs = append(reqs, TypecheckerFail)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown typechecker status `%s`", parts[1]))
		}
	}

	return reqs, warnings
}

type RequirementResult struct {
	Requirement Requirement
	Passed      bool
}

// Evaluate checks each requirement against the type errors of a program.
func Evaluate(reqs []Requirement, errs []TypeError) []RequirementResult {
	results := make([]RequirementResult, 0, len(reqs))
	for _, req := range reqs {
		passed := len(errs) == 0
		if req == TypecheckerFail {
			passed = !passed
		}

		results = append(results, RequirementResult{Requirement: req, Passed: passed})
	}

	return results
}
