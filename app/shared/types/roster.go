package sharedtypes

// RosterField names a logical roster column the organizer can map.
type RosterField string

const (
	FieldFullName    RosterField = "full_name"
	FieldRank        RosterField = "rank"
	FieldRating      RosterField = "rating"
	FieldGender      RosterField = "gender"
	FieldDateOfBirth RosterField = "date_of_birth"
	FieldState       RosterField = "state"
	FieldCity        RosterField = "city"
	FieldClub        RosterField = "club"
	FieldSchool      RosterField = "school"
	FieldGroupLabel  RosterField = "group_label"
	FieldTypeLabel   RosterField = "type_label"

	// FieldFemaleSignal is the secondary gender-signal column. It is rarely
	// mapped by the organizer; imports usually fill it in from headerless
	// column detection.
	FieldFemaleSignal RosterField = "female_signal"
)

// ColumnMap maps logical roster fields to zero-based spreadsheet column
// indexes. Fields absent from the map were not mapped by the organizer.
type ColumnMap map[RosterField]int

// Col returns the mapped column index for field.
func (m ColumnMap) Col(field RosterField) (int, bool) {
	if m == nil {
		return 0, false
	}
	idx, ok := m[field]
	return idx, ok
}

// Has reports whether field was mapped.
func (m ColumnMap) Has(field RosterField) bool {
	_, ok := m.Col(field)
	return ok
}

// RowWarning attaches an import warning to the spreadsheet row it came from.
type RowWarning struct {
	Row     int    `json:"row"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}
