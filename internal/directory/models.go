package directory

// DistrictRecord is the attribute payload of one feature from the public
// school-district layer. LEAID is the identity key; OBJECTID is only stable
// within a single response and must never be used for identity comparisons.
type DistrictRecord struct {
	ObjectID int     `json:"OBJECTID"`
	LEAID    string  `json:"LEAID"`
	Name     string  `json:"NAME"`
	City     string  `json:"LCITY"`
	State    string  `json:"LSTATE"`
	County   string  `json:"NMCNTY15"`
	Lat      float64 `json:"LAT1516"`
	Lon      float64 `json:"LON1516"`
}

// SchoolRecord is the attribute payload of one feature from either school
// layer. NCESSCH is the identity key; LEAID links the school to its district.
// Everything else can be missing upstream, so the optional attributes are
// pointers.
type SchoolRecord struct {
	NCESSCH string   `json:"NCESSCH"`
	LEAID   string   `json:"LEAID"`
	Name    *string  `json:"NAME"`
	City    *string  `json:"CITY"`
	State   *string  `json:"STATE"`
	ZIP     *string  `json:"ZIP"`
	Lat     *float64 `json:"LAT"`
	Lon     *float64 `json:"LON"`
}

// HasLocation reports whether the record can be placed on a map. Records
// without coordinates are still listed, just not rendered as markers.
func (s SchoolRecord) HasLocation() bool {
	return s.Lat != nil && s.Lon != nil
}
