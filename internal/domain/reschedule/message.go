package reschedule

import (
	"fmt"
	"time"
)

// Template fixo do aviso de reagendamento.
func RescheduleMessage(
	clientName string,
	newStart time.Time,
	loc *time.Location,
) (subject string, body string) {

	local := newStart.In(loc)

	subject = "Appointment rescheduled"
	body = fmt.Sprintf(
		"Hi %s, your grooming appointment was rescheduled to %s at %s. Reply to this message if the new time does not work for you.",
		clientName,
		local.Format("Mon, Jan 2 2006"),
		local.Format("15:04"),
	)

	return subject, body
}
