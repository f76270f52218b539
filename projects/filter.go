package projects

import "strings"

// StatusAll disables status filtering
const StatusAll = "all"

// Filter narrows a project list. Both conditions must hold.
type Filter struct {
	Search string // case-insensitive substring of name or location
	Status string // a Status, or "all"/"" for every status
}

func (f Filter) Matches(p Project) bool {
	if f.Status != "" && f.Status != StatusAll && string(p.Status) != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Location), term)
}

// Apply returns the matching projects, preserving order
func (f Filter) Apply(list []Project) []Project {
	out := make([]Project, 0, len(list))
	for _, p := range list {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
