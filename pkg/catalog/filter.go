package catalog

import (
	"sort"
	"strings"
)

// CategoryAll disables category filtering.
const CategoryAll = "All"

// Filter returns the alphabetically sorted names of symptoms whose name or any tag
// contains query (case-insensitive) and which belong to category. Names listed in
// exclude are left out, so a picker only offers symptoms not yet selected.
func (s *Store) Filter(query, category string, exclude []string) []string {
	q := strings.ToLower(query)
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	var out []string
	for _, sym := range s.symptoms {
		if _, ok := skip[sym.Name]; ok {
			continue
		}
		if category != "" && category != CategoryAll && sym.Category != category {
			continue
		}
		if !matchesQuery(sym.Name, sym.Tags, q) {
			continue
		}
		out = append(out, sym.Name)
	}
	sort.Strings(out)
	return out
}

func matchesQuery(name string, tags []string, q string) bool {
	if strings.Contains(strings.ToLower(name), q) {
		return true
	}
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
