package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/domain/reschedule"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/httpresp"
	"github.com/PawshSuite/groom-scheduler/internal/middleware"
	"github.com/PawshSuite/groom-scheduler/internal/timezone"
	appointmentuc "github.com/PawshSuite/groom-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo domain.Repository

	createUC       *appointmentuc.CreateAppointment
	editUC         *appointmentuc.EditAppointment
	deleteUC       *appointmentuc.DeleteAppointment
	confirmUC      *appointmentuc.ConfirmAppointment
	completeUC     *appointmentuc.CompleteAppointment
	cancelUC       *appointmentuc.CancelAppointment
	noShowUC       *appointmentuc.MarkNoShow
	checkoutUC     *appointmentuc.Checkout
	dayViewUC      *appointmentuc.DayView
	listWeekUC     *appointmentuc.ListWeek
	availabilityUC *appointmentuc.GetAvailability

	drags *reschedule.Coordinator
}

type AppointmentHandlerDeps struct {
	Repo domain.Repository

	Create       *appointmentuc.CreateAppointment
	Edit         *appointmentuc.EditAppointment
	Delete       *appointmentuc.DeleteAppointment
	Confirm      *appointmentuc.ConfirmAppointment
	Complete     *appointmentuc.CompleteAppointment
	Cancel       *appointmentuc.CancelAppointment
	NoShow       *appointmentuc.MarkNoShow
	Checkout     *appointmentuc.Checkout
	DayView      *appointmentuc.DayView
	ListWeek     *appointmentuc.ListWeek
	Availability *appointmentuc.GetAvailability

	Drags *reschedule.Coordinator
}

func NewAppointmentHandler(deps AppointmentHandlerDeps) *AppointmentHandler {
	return &AppointmentHandler{
		repo:           deps.Repo,
		createUC:       deps.Create,
		editUC:         deps.Edit,
		deleteUC:       deps.Delete,
		confirmUC:      deps.Confirm,
		completeUC:     deps.Complete,
		cancelUC:       deps.Cancel,
		noShowUC:       deps.NoShow,
		checkoutUC:     deps.Checkout,
		dayViewUC:      deps.DayView,
		listWeekUC:     deps.ListWeek,
		availabilityUC: deps.Availability,
		drags:          deps.Drags,
	}
}

// writeBusiness traduz código de negócio em status HTTP + mensagem.
func writeBusiness(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno ao processar a requisição.")
		return
	}

	messages := map[string]string{
		"client_required":         "Selecione um cliente antes de salvar o agendamento.",
		"client_not_found":        "Cliente não encontrado.",
		"pet_required":            "Informe pelo menos um pet com nome.",
		"service_not_found":       "Serviço não encontrado no catálogo.",
		"item_not_found":          "Item não encontrado no catálogo.",
		"invalid_date_or_time":    "Data ou horário inválidos.",
		"invalid_date":            "Data inválida (use AAAA-MM-DD).",
		"too_soon":                "O horário está dentro da antecedência mínima do pet shop.",
		"invalid_recurrence":      "Recorrência inválida: valor entre 1 e 365 e unidade day, week, month ou year.",
		"appointment_not_found":   "Agendamento não encontrado.",
		"series_choice_required":  "Informe se a alteração vale só para esta ocorrência ou para a série inteira.",
		"invalid_state":           "O status atual do agendamento não permite essa operação.",
		"reschedule_in_progress":  "Já existe um reagendamento em andamento para este agendamento.",
		"invalid_transition":      "Operação fora de ordem no fluxo de reagendamento.",
		"no_active_reschedule":    "Nenhum reagendamento em andamento para este agendamento.",
	}

	msg, known := messages[be.Code]
	if !known {
		msg = "Não foi possível completar a operação."
	}

	switch be.Code {
	case "client_not_found", "service_not_found", "item_not_found",
		"appointment_not_found", "no_active_reschedule":
		httperr.NotFound(c, be.Code, msg)
	case "reschedule_in_progress":
		httperr.Conflict(c, be.Code, msg)
	default:
		httperr.BadRequest(c, be.Code, msg)
	}
}

func ids(c *gin.Context) (shopID, groomerID uint) {
	return c.MustGet(middleware.ContextShopID).(uint),
		c.MustGet(middleware.ContextUserID).(uint)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CRUD
// ======================================================

type CreateAppointmentRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Notes    string `json:"notes"`

	Pets           []appointmentuc.PetBookingInput `json:"pets"`
	PriceOverrides []appointmentuc.PriceOverride   `json:"price_overrides"`

	Recurring *appointmentuc.RecurringInput `json:"recurring"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	shopID, groomerID := ids(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), appointmentuc.CreateAppointmentInput{
		ShopID:         shopID,
		GroomerID:      groomerID,
		ClientID:       req.ClientID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		Pets:           req.Pets,
		PriceOverrides: req.PriceOverrides,
		Recurring:      req.Recurring,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

type EditAppointmentRequest struct {
	Notes          *string                         `json:"notes"`
	Pets           []appointmentuc.PetBookingInput `json:"pets"`
	PriceOverrides []appointmentuc.PriceOverride   `json:"price_overrides"`
	UpdateSeries   *bool                           `json:"update_series"`
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	shopID, groomerID := ids(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	ap, err := h.editUC.Execute(c.Request.Context(), appointmentuc.EditAppointmentInput{
		ShopID:         shopID,
		GroomerID:      groomerID,
		AppointmentID:  id,
		Notes:          req.Notes,
		Pets:           req.Pets,
		PriceOverrides: req.PriceOverrides,
		UpdateSeries:   req.UpdateSeries,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	shopID, groomerID := ids(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var deleteSeries *bool
	if raw, present := c.GetQuery("series"); present {
		v := raw == "true"
		deleteSeries = &v
	}

	err := h.deleteUC.Execute(c.Request.Context(), appointmentuc.DeleteAppointmentInput{
		ShopID:        shopID,
		GroomerID:     groomerID,
		AppointmentID: id,
		DeleteSeries:  deleteSeries,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.runStatus(c, func(shopID, groomerID, id uint) (any, error) {
		return h.confirmUC.Execute(c.Request.Context(), shopID, groomerID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.runStatus(c, func(shopID, groomerID, id uint) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), shopID, groomerID, id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.runStatus(c, func(shopID, groomerID, id uint) (any, error) {
		return h.cancelUC.Execute(c.Request.Context(), shopID, groomerID, id)
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.runStatus(c, func(shopID, groomerID, id uint) (any, error) {
		return h.noShowUC.Execute(c.Request.Context(), shopID, groomerID, id)
	})
}

func (h *AppointmentHandler) runStatus(
	c *gin.Context,
	exec func(shopID, groomerID, id uint) (any, error),
) {
	shopID, groomerID := ids(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := exec(shopID, groomerID, id)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *AppointmentHandler) Checkout(c *gin.Context) {
	shopID, groomerID := ids(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	inv, err := h.checkoutUC.Execute(c.Request.Context(), shopID, groomerID, id)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// ======================================================
// CALENDAR
// ======================================================

func (h *AppointmentHandler) DayView(c *gin.Context) {
	shopID, groomerID := ids(c)

	zoom, _ := strconv.ParseFloat(c.DefaultQuery("zoom", "1"), 64)
	columnWidth, _ := strconv.ParseFloat(c.Query("column_width"), 64)

	view, err := h.dayViewUC.Execute(c.Request.Context(), appointmentuc.DayViewInput{
		ShopID:      shopID,
		GroomerID:   groomerID,
		Date:        c.Query("date"),
		Zoom:        zoom,
		ColumnWidth: columnWidth,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *AppointmentHandler) Week(c *gin.Context) {
	shopID, groomerID := ids(c)

	list, err := h.listWeekUC.Execute(
		c.Request.Context(),
		groomerID,
		shopID,
		c.Query("start"),
	)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	shopID, groomerID := ids(c)

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Informe o serviço desejado.")
		return
	}

	shop, err := h.repo.GetShopByID(c.Request.Context(), shopID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	date, err := timezone.ParseDate(c.Query("date"), shop.Timezone)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida (use AAAA-MM-DD).")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		ShopID:    shopID,
		GroomerID: groomerID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// DRAG RESCHEDULE
// ======================================================

// O fluxo de arrastar-e-soltar é um protocolo com estado do lado do
// servidor: begin abre a tentativa, hover acompanha o alvo, drop fixa o
// candidato, series resolve única-vs-série, confirm persiste e notify
// fecha com (ou sem) mensagem ao cliente.

type BeginDragRequest struct {
	// Dia de calendário exibido quando o arrasto começou.
	Date string `json:"date" binding:"required"`
}

func (h *AppointmentHandler) BeginDrag(c *gin.Context) {
	shopID, groomerID := ids(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req BeginDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	ap, err := h.repo.GetAppointmentForGroomer(c.Request.Context(), id, groomerID)
	if err != nil {
		writeBusiness(c, httperr.ErrBusiness("appointment_not_found"))
		return
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		writeBusiness(c, err)
		return
	}

	shop, err := h.repo.GetShopByID(c.Request.Context(), shopID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	loc := timezone.Location(shop.Timezone)

	day, err := time.ParseInLocation(timezone.DateLayout, req.Date, loc)
	if err != nil {
		writeBusiness(c, httperr.ErrBusiness("invalid_date"))
		return
	}

	attempt, err := h.drags.Begin(*ap, day, loc)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{"state": attempt.State()})
}

type DragTargetRequest struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (h *AppointmentHandler) HoverDrag(c *gin.Context) {
	h.withAttempt(c, func(a *reschedule.Attempt) error {
		var req DragTargetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return httperr.ErrBusiness("invalid_date_or_time")
		}
		return a.Hover(req.Hour, req.Minute)
	})
}

func (h *AppointmentHandler) DropDrag(c *gin.Context) {
	h.withAttempt(c, func(a *reschedule.Attempt) error {
		var req DragTargetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return httperr.ErrBusiness("invalid_date_or_time")
		}
		return a.Drop(req.Hour, req.Minute)
	})
}

type SeriesChoiceRequest struct {
	UpdateSeries bool `json:"update_series"`
}

func (h *AppointmentHandler) ChooseSeriesDrag(c *gin.Context) {
	h.withAttempt(c, func(a *reschedule.Attempt) error {
		var req SeriesChoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return httperr.ErrBusiness("invalid_request")
		}
		return a.ChooseSeries(req.UpdateSeries)
	})
}

func (h *AppointmentHandler) ConfirmDrag(c *gin.Context) {
	h.withAttempt(c, func(a *reschedule.Attempt) error {
		return a.Confirm(c.Request.Context())
	})
}

func (h *AppointmentHandler) CancelDrag(c *gin.Context) {
	h.withAttempt(c, func(a *reschedule.Attempt) error {
		return a.Cancel()
	})
}

type NotifyRequest struct {
	Send bool `json:"send"`
}

func (h *AppointmentHandler) NotifyDrag(c *gin.Context) {
	h.withAttempt(c, func(a *reschedule.Attempt) error {
		var req NotifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return httperr.ErrBusiness("invalid_request")
		}
		return a.Notify(c.Request.Context(), req.Send)
	})
}

func (h *AppointmentHandler) withAttempt(
	c *gin.Context,
	step func(a *reschedule.Attempt) error,
) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	attempt, found := h.drags.Attempt(id)
	if !found {
		writeBusiness(c, httperr.ErrBusiness("no_active_reschedule"))
		return
	}

	if err := step(attempt); err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{"state": attempt.State()})
}
