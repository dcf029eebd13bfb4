package booking

// WeeklyQuota is the maximum number of reservations one person may hold
// within a single Monday-Sunday week, counted at admission time.
const WeeklyQuota = 3

// Interval is a half-open [Start, End) time slot within a single day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Valid reports whether the interval's end is strictly after its start.
// Overnight spans are not representable.
func (i Interval) Valid() bool {
	return i.End > i.Start
}

// Overlaps applies the half-open overlap rule: [s1,e1) and [s2,e2) collide
// iff s1 < e2 && e1 > s2. Back-to-back intervals that merely touch (one
// ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// QuotaReached reports whether an existing reservation count already
// exhausts the weekly quota, before the candidate is added.
func QuotaReached(count int) bool {
	return count >= WeeklyQuota
}
