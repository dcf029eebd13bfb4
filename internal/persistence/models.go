package persistence

import "time"

// Person represents an identity that may own reservations.
type Person struct {
	ID        int64
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Space represents a bookable physical resource.
type Space struct {
	ID          int64
	Name        string
	Location    string
	Capacity    int
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reservation represents a booked half-open time slot for a space on a
// calendar date. Date is "YYYY-MM-DD"; StartTime and EndTime are canonical
// zero-padded "HH:MM", which keeps lexicographic SQL comparison correct.
type Reservation struct {
	ID        int64
	PersonID  int64
	SpaceID   int64
	Date      string
	StartTime string
	EndTime   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Person and Space are attached on reads that resolve the referenced
	// entities. They are ignored on writes.
	Person *Person
	Space  *Space
}

// WeekRange is an inclusive Monday-Sunday date span used for quota counting.
type WeekRange struct {
	Start string
	End   string
}

// PageRequest describes a bounded slice of a listing.
type PageRequest struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip for the request.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
