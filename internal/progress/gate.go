package progress

// IsAvailable reports whether a skill with the given prerequisites can be
// started. A skill with no prerequisites is always available; otherwise every
// prerequisite id must appear in completedSkillIDs. What "completed" means
// (all of a skill's resources done) is the caller's job to compute — the gate
// only compares id sets.
func IsAvailable(prerequisites []string, completedSkillIDs Set) bool {
	for _, id := range prerequisites {
		if !completedSkillIDs.Contains(id) {
			return false
		}
	}
	return true
}
