package favorites

// Storage keys. Each store owns its keys exclusively; nothing else reads or
// writes them.
const (
	keySavedDistricts    = "saved_districts"
	keySavedSchools      = "saved_schools"
	keyReviewedDistricts = "reviewed_districts"
	keyReviewedSchools   = "reviewed_schools"
	keySearchHistory     = "search_history"
)
