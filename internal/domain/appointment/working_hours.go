package appointment

import (
	"time"

	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// WithinWorkingHours valida se um intervalo cabe no expediente do dia,
// respeitando a pausa de almoço. Os horários são wall-clock ("15:04")
// resolvidos no dia e timezone de start.
func WithinWorkingHours(
	wh *models.WorkingHours,
	start time.Time,
	end time.Time,
) bool {

	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	loc := start.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart := parseHM(wh.LunchStart)
		lunchEnd := parseHM(wh.LunchEnd)

		if start.Before(lunchEnd) && end.After(lunchStart) {
			return false
		}
	}

	return true
}
