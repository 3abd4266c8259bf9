package formatting

import "time"

// DateLayout is the day-first layout used in rendered documents and user-facing messages.
const DateLayout = "02/01/2006"

// FormatDate renders t as DD/MM/YYYY in t's own location. The zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
