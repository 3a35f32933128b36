package progress

import "testing"

func TestIsAvailable_NoPrerequisites(t *testing.T) {
	if !IsAvailable(nil, NewSet()) {
		t.Error("skill with no prerequisites must always be available")
	}
	if !IsAvailable([]string{}, NewSet("anything")) {
		t.Error("skill with empty prerequisites must always be available")
	}
}

func TestIsAvailable_RequiresEveryPrerequisite(t *testing.T) {
	prereqs := []string{"a", "b"}

	tests := []struct {
		name      string
		completed []string
		want      bool
	}{
		{"none completed", nil, false},
		{"partial", []string{"a"}, false},
		{"exact", []string{"a", "b"}, true},
		{"superset", []string{"a", "b", "c"}, true},
		{"unrelated only", []string{"c", "d"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAvailable(prereqs, NewSet(tt.completed...))
			if got != tt.want {
				t.Errorf("IsAvailable(%v, %v) = %v, want %v", prereqs, tt.completed, got, tt.want)
			}
		})
	}
}
