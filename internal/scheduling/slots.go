package scheduling

// Slot buckets mirror the clinic's fixed consultation grid: 30-minute
// sessions in three blocks per day.
var slotBuckets = map[string][]string{
	"morning":   {"09:00", "09:30", "10:00", "10:30", "11:00"},
	"afternoon": {"12:00", "12:30", "13:00", "13:30", "14:00"},
	"evening":   {"15:00", "15:30", "16:00", "16:30", "17:00"},
}

// SlotBuckets returns the fixed time-of-day buckets.
func SlotBuckets() map[string][]string {
	out := make(map[string][]string, len(slotBuckets))
	for period, slots := range slotBuckets {
		out[period] = append([]string(nil), slots...)
	}
	return out
}

// ValidSlot reports whether label is one of the fixed slots.
func ValidSlot(label string) bool {
	for _, slots := range slotBuckets {
		for _, s := range slots {
			if s == label {
				return true
			}
		}
	}
	return false
}

// QuickPicks returns the seven-entry quick-pick strip. Thursday is
// blocked for ward rounds and the weekend entries are never bookable.
func QuickPicks() []QuickPick {
	return []QuickPick{
		{Date: "2024-02-10", Day: "10", Weekday: "Mon", Month: "Feb", Available: true},
		{Date: "2024-02-11", Day: "11", Weekday: "Tue", Month: "Feb", Available: true},
		{Date: "2024-02-12", Day: "12", Weekday: "Wed", Month: "Feb", Available: true},
		{Date: "2024-02-13", Day: "13", Weekday: "Thu", Month: "Feb", Available: false},
		{Date: "2024-02-14", Day: "14", Weekday: "Fri", Month: "Feb", Available: true},
		{Date: "2024-02-15", Day: "15", Weekday: "Sat", Month: "Feb", Available: false},
		{Date: "2024-02-16", Day: "16", Weekday: "Sun", Month: "Feb", Available: false},
	}
}

// quickPickAvailability reports whether date (YYYY-MM-DD) matches a
// quick-pick entry and, if so, whether that entry is bookable.
func quickPickAvailability(date string) (listed, available bool) {
	for _, qp := range QuickPicks() {
		if qp.Date == date {
			return true, qp.Available
		}
	}
	return false, false
}
