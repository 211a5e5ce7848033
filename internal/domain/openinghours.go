package domain

// OpeningHour is the regular weekly schedule row for the venue.
// Weekday follows time.Weekday numbering: 0 = Sunday.
type OpeningHour struct {
	ID       int64  `json:"-"`
	Weekday  int    `json:"weekday" validate:"gte=0,lte=6"`
	Opens    string `json:"opens"`
	Closes   string `json:"closes"`
	IsClosed bool   `json:"is_closed"`
	Note     string `json:"note,omitempty"`
}

// OpeningException overrides the weekly schedule on a single date,
// e.g. public holidays or reduced hours.
type OpeningException struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Opens    *string `json:"opens"`
	Closes   *string `json:"closes"`
	IsClosed bool    `json:"is_closed"`
	Reason   string  `json:"reason,omitempty"`
}

// Default venue window used when no schedule row exists for a weekday.
const (
	DefaultOpens  = "08:00"
	DefaultCloses = "21:00"
)

// DefaultOpeningHours returns the fallback weekly schedule: open every
// day 08:00-21:00.
func DefaultOpeningHours() []OpeningHour {
	week := make([]OpeningHour, 7)
	for d := 0; d < 7; d++ {
		week[d] = OpeningHour{Weekday: d, Opens: DefaultOpens, Closes: DefaultCloses}
	}
	return week
}
