package holiday

import "time"

// Holiday is a calendar exception: the date carries no time component and is
// compared day-by-day.
type Holiday struct {
	ID    string
	Date  time.Time
	Title string
}
