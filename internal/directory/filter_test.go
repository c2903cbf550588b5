package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func sampleSchools() []SchoolRecord {
	return []SchoolRecord{
		{NCESSCH: "1", LEAID: "d1", Name: strptr("Lincoln Elementary"), City: strptr("Austin")},
		{NCESSCH: "2", LEAID: "d1", Name: strptr("Washington Middle"), City: strptr("Dallas")},
		{NCESSCH: "3", LEAID: "d1", Name: strptr("Lincoln High"), City: strptr("Dallas")},
		{NCESSCH: "4", LEAID: "d1", Name: nil, City: strptr("Austin")},
	}
}

func TestFilterSchools_EmptyPredicatesReturnInput(t *testing.T) {
	schools := sampleSchools()

	out := FilterSchools(schools, "", "")

	assert.Equal(t, schools, out)
}

func TestFilterSchools_NameSubstring(t *testing.T) {
	out := FilterSchools(sampleSchools(), "lincoln", "")

	assert.Len(t, out, 2)
	assert.Equal(t, "1", out[0].NCESSCH)
	assert.Equal(t, "3", out[1].NCESSCH)
}

func TestFilterSchools_BothPredicates(t *testing.T) {
	out := FilterSchools(sampleSchools(), "lincoln", "dallas")

	assert.Len(t, out, 1)
	assert.Equal(t, "3", out[0].NCESSCH)
}

func TestFilterSchools_NilFieldFailsNonEmptyPredicate(t *testing.T) {
	out := FilterSchools(sampleSchools(), "lincoln", "austin")

	// Record 4 has a nil name, so it cannot match a non-empty name query.
	assert.Len(t, out, 1)
	assert.Equal(t, "1", out[0].NCESSCH)
}

func TestFilterSchools_CaseInsensitive(t *testing.T) {
	out := FilterSchools(sampleSchools(), "LINCOLN", "AusTIN")

	assert.Len(t, out, 1)
	assert.Equal(t, "1", out[0].NCESSCH)
}

func TestFilterSchools_NoMatches(t *testing.T) {
	out := FilterSchools(sampleSchools(), "nonexistent", "")

	assert.Empty(t, out)
}
