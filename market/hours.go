package market

import "time"

// TradingHours describes one exchange's sessions on a single calendar date.
//
// Nil session instants mean "no session of that kind on this date". Open and
// Close may be non-nil even when IsOpen is false (an exchange can run
// extended hours without a regular session), so callers must not treat a nil
// Open as equivalent to IsOpen == false.
type TradingHours struct {
	IsOpen bool
	Date   time.Time

	Open          *time.Time
	Close         *time.Time
	ExtendedOpen  *time.Time
	ExtendedClose *time.Time

	// Opaque references to the adjacent trading days' hours, as handed out
	// by the vendor. They are not dereferenced until a caller asks for the
	// neighboring day.
	NextTradingDayRef     string
	PreviousTradingDayRef string
}

// Market is the static identity of an exchange plus its hours for "today".
// Identity is the MIC code: two Markets with the same MIC are the same
// exchange. A Market is built fresh on every lookup and never cached.
type Market struct {
	MIC      string
	Name     string
	Acronym  string
	City     string
	Country  string
	Timezone string
	Website  string

	Today TradingHours
}

// Same reports whether m and other identify the same exchange.
func (m Market) Same(other Market) bool {
	return m.MIC == other.MIC
}
