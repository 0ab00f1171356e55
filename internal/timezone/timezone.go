package timezone

import "time"

const DefaultTimezone = "America/New_York"

// Layouts de data e hora de parede usados nas rotas e nos use cases.
const (
	DateLayout      = "2006-01-02"
	WallClockLayout = "2006-01-02 15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// ParseDate interpreta um "AAAA-MM-DD" como meia-noite no fuso dado.
func ParseDate(date, tz string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(tz))
}

// ParseWallClock interpreta data + "HH:MM" como hora de parede no fuso dado.
func ParseWallClock(date, hhmm, tz string) (time.Time, error) {
	return time.ParseInLocation(WallClockLayout, date+" "+hhmm, Location(tz))
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
