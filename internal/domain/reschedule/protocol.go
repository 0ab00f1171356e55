package reschedule

import (
	"context"
	"sync"
	"time"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// ===============================
// Reschedule Protocol (FSM)
// ===============================

type State string

const (
	StateIdle                 State = "idle"
	StateDragInProgress       State = "drag_in_progress"
	StateAwaitingSeriesChoice State = "awaiting_series_choice"
	StateDropPending          State = "drop_pending_confirmation"
	StateConfirmed            State = "confirmed"
	StateNotifyPrompt         State = "notify_prompt"
	StateNotifySent           State = "notify_sent"
	StateNotifySkipped        State = "notify_skipped"
	StateCancelled            State = "cancelled"
)

// UpdateRequest é o pedido emitido quando a tentativa é confirmada.
type UpdateRequest struct {
	ShopID        uint
	GroomerID     uint
	AppointmentID uint
	NewStart      time.Time
	UpdateSeries  bool
}

type Updater interface {
	Reschedule(ctx context.Context, req UpdateRequest) error
}

// Notifier entrega a mensagem composta ao colaborador de mensageria.
// Fire-and-forget: nenhuma confirmação de entrega é observada aqui.
type Notifier interface {
	Send(ctx context.Context, phone string, email string, subject string, body string) error
}

// ===============================
// Coordinator
// ===============================

// Coordinator garante no máximo uma tentativa viva por agendamento.
type Coordinator struct {
	mu     sync.Mutex
	active map[uint]*Attempt

	updater  Updater
	notifier Notifier
}

func NewCoordinator(updater Updater, notifier Notifier) *Coordinator {
	return &Coordinator{
		active:   make(map[uint]*Attempt),
		updater:  updater,
		notifier: notifier,
	}
}

// Begin abre a tentativa: captura o agendamento de origem, o horário
// original e o dia de calendário exibido (no timezone do shop).
func (c *Coordinator) Begin(
	ap models.Appointment,
	day time.Time,
	loc *time.Location,
) (*Attempt, error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.active[ap.ID]; busy {
		return nil, httperr.ErrBusiness("reschedule_in_progress")
	}

	a := &Attempt{
		coord:         c,
		state:         StateDragInProgress,
		source:        ap,
		originalStart: ap.StartTime,
		day:           day,
		loc:           loc,
	}

	c.active[ap.ID] = a
	return a, nil
}

// Attempt devolve a tentativa viva do agendamento, se existir.
func (c *Coordinator) Attempt(appointmentID uint) (*Attempt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.active[appointmentID]
	return a, ok
}

func (c *Coordinator) release(id uint) {
	c.mu.Lock()
	delete(c.active, id)
	c.mu.Unlock()
}

// ===============================
// Attempt
// ===============================

// Attempt serializa as transições com um mutex próprio: a mesma tentativa
// é compartilhada entre requisições HTTP concorrentes.
type Attempt struct {
	mu    sync.Mutex
	coord *Coordinator
	state State

	source        models.Appointment
	originalStart time.Time

	day time.Time
	loc *time.Location

	hoverHour   int
	hoverMinute int

	candidate    time.Time
	updateSeries *bool
}

func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Attempt) Candidate() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.candidate
}

// Hover acompanha o alvo (hora, minuto) durante o arrasto.
func (a *Attempt) Hover(hour, minute int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateDragInProgress {
		return httperr.ErrBusiness("invalid_transition")
	}

	a.hoverHour = hour
	a.hoverMinute = minute
	return nil
}

// Drop combina o dia exibido com o par (hora, minuto) solto, no timezone
// local do shop. time.Date garante o round-trip: reexibir o instante no
// mesmo timezone reproduz hora e minuto soltos.
func (a *Attempt) Drop(hour, minute int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateDragInProgress {
		return httperr.ErrBusiness("invalid_transition")
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return httperr.ErrBusiness("invalid_date_or_time")
	}

	day := a.day.In(a.loc)
	a.candidate = time.Date(
		day.Year(), day.Month(), day.Day(),
		hour, minute, 0, 0,
		a.loc,
	)

	if a.source.IsRecurring {
		a.state = StateAwaitingSeriesChoice
		return nil
	}

	a.state = StateDropPending
	return nil
}

// ChooseSeries resolve a escolha única-vs-série. Obrigatória e explícita
// para ocorrência recorrente; nunca há default silencioso.
func (a *Attempt) ChooseSeries(updateSeries bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateAwaitingSeriesChoice {
		return httperr.ErrBusiness("invalid_transition")
	}

	a.updateSeries = &updateSeries
	a.state = StateDropPending
	return nil
}

// Confirm emite o update. Falha devolve a FSM para Idle sem mutação local.
func (a *Attempt) Confirm(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateDropPending {
		if a.state == StateAwaitingSeriesChoice {
			return httperr.ErrBusiness("series_choice_required")
		}
		return httperr.ErrBusiness("invalid_transition")
	}

	series := false
	if a.updateSeries != nil {
		series = *a.updateSeries
	}

	err := a.coord.updater.Reschedule(ctx, UpdateRequest{
		ShopID:        a.source.ShopID,
		GroomerID:     a.source.GroomerID,
		AppointmentID: a.source.ID,
		NewStart:      a.candidate,
		UpdateSeries:  series,
	})
	if err != nil {
		a.state = StateIdle
		a.coord.release(a.source.ID)
		return err
	}

	a.state = StateNotifyPrompt
	return nil
}

// Cancel desiste na confirmação: nada foi mutado.
func (a *Attempt) Cancel() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case StateDragInProgress, StateAwaitingSeriesChoice, StateDropPending:
		a.state = StateCancelled
		a.coord.release(a.source.ID)
		return nil
	}
	return httperr.ErrBusiness("invalid_transition")
}

// Notify fecha o protocolo: envia a mensagem composta ou descarta o prompt.
// Os dois caminhos terminam a tentativa e liberam o guard.
func (a *Attempt) Notify(ctx context.Context, send bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateNotifyPrompt {
		return httperr.ErrBusiness("invalid_transition")
	}

	defer a.coord.release(a.source.ID)

	if !send {
		a.state = StateNotifySkipped
		return nil
	}

	subject, body := RescheduleMessage(
		a.source.Client.Name,
		a.candidate,
		a.loc,
	)

	// fire-and-forget: erro de entrega não desfaz o reagendamento
	_ = a.coord.notifier.Send(
		ctx,
		a.source.Client.Phone,
		a.source.Client.Email,
		subject,
		body,
	)

	a.state = StateNotifySent
	return nil
}
