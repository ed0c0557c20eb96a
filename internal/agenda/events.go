package agenda

// EventIndex is a read-only lookup over the station's historical-date
// records. Missing months are not an error: lookups simply return nothing
// and the assignment engine degrades to the mandatory-theme rotation.
type EventIndex struct {
	efemerides      EfemeridesData
	conmemoraciones ConmemoracionesData
}

// NewEventIndex builds an index over the given per-month data. Either map
// may be nil.
func NewEventIndex(efemerides EfemeridesData, conmemoraciones ConmemoracionesData) *EventIndex {
	return &EventIndex{
		efemerides:      efemerides,
		conmemoraciones: conmemoraciones,
	}
}

// EventsOnDay returns the efemérides recorded for the given day of the
// given month, in input order. A day may carry zero, one or many.
func (idx *EventIndex) EventsOnDay(month string, day int) []Efemeride {
	var out []Efemeride
	for _, e := range idx.efemerides[month] {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}

// CommemorationOnDay returns the authoritative commemoration for the day,
// or nil when none exists. When data quality slips and a day carries
// duplicates, the first record wins.
func (idx *EventIndex) CommemorationOnDay(month string, day int) *Conmemoracion {
	for _, c := range idx.conmemoraciones[month] {
		if c.Day == day {
			record := c
			return &record
		}
	}
	return nil
}

// MonthEvents returns all efemérides recorded for the month.
func (idx *EventIndex) MonthEvents(month string) []Efemeride {
	return idx.efemerides[month]
}

// MonthCommemorations returns all commemorations recorded for the month.
func (idx *EventIndex) MonthCommemorations(month string) []Conmemoracion {
	return idx.conmemoraciones[month]
}
