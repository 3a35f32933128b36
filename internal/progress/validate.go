package progress

import (
	"fmt"
	"strings"
)

// ValidateGraph checks a prerequisite graph (skill id -> prerequisite ids)
// for dangling references and cycles. A cyclic graph would leave the skills
// on the cycle permanently locked, so curricula are rejected at definition
// time instead of detecting cycles per request.
func ValidateGraph(prereqs map[string][]string) error {
	var errs []string

	for id, deps := range prereqs {
		for _, dep := range deps {
			if _, ok := prereqs[dep]; !ok {
				errs = append(errs, fmt.Sprintf("skill %q references unknown prerequisite %q", id, dep))
			}
		}
	}

	// Kahn's algorithm; anything left with in-degree > 0 sits on a cycle.
	inDegree := make(map[string]int, len(prereqs))
	dependents := make(map[string][]string)
	for id, deps := range prereqs {
		inDegree[id] = 0
		for _, dep := range deps {
			if _, ok := prereqs[dep]; ok {
				inDegree[id]++
				dependents[dep] = append(dependents[dep], id)
			}
		}
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited < len(prereqs) {
		var cycleNodes []string
		for id, deg := range inDegree {
			if deg > 0 {
				cycleNodes = append(cycleNodes, id)
			}
		}
		errs = append(errs, fmt.Sprintf("prerequisite cycle involving skills: %s", strings.Join(cycleNodes, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid prerequisite graph: %s", strings.Join(errs, "; "))
	}
	return nil
}
