package directory

import "strings"

// FilterSchools narrows an already-fetched school list by name and city
// substring, case-insensitively. Empty predicates match everything; records
// missing a field fail the corresponding non-empty predicate. Pure and
// order-preserving, so the school-within-district view can refine without
// another network call.
func FilterSchools(schools []SchoolRecord, name, city string) []SchoolRecord {
	nameQuery := strings.ToLower(name)
	cityQuery := strings.ToLower(city)

	if nameQuery == "" && cityQuery == "" {
		return schools
	}

	out := make([]SchoolRecord, 0, len(schools))
	for _, s := range schools {
		if !fieldMatches(s.Name, nameQuery) || !fieldMatches(s.City, cityQuery) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func fieldMatches(field *string, query string) bool {
	if query == "" {
		return true
	}
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), query)
}
