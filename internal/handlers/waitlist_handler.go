package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/httpresp"
	"github.com/PawshSuite/groom-scheduler/internal/middleware"
	"github.com/PawshSuite/groom-scheduler/internal/models"
	appointmentuc "github.com/PawshSuite/groom-scheduler/internal/usecase/appointment"
)

type WaitlistHandler struct {
	db       *gorm.DB
	createUC *appointmentuc.CreateAppointment
}

func NewWaitlistHandler(db *gorm.DB, createUC *appointmentuc.CreateAppointment) *WaitlistHandler {
	return &WaitlistHandler{db: db, createUC: createUC}
}

type WaitlistRequest struct {
	ClientID      uint       `json:"client_id" binding:"required"`
	PetName       string     `json:"pet_name"`
	ServiceID     *uint      `json:"service_id"`
	PreferredFrom *time.Time `json:"preferred_from"`
	PreferredTo   *time.Time `json:"preferred_to"`
	Notes         string     `json:"notes"`
}

func (h *WaitlistHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	query := h.db.
		Preload("Client").
		Where("shop_id = ?", shopID).
		Order("created_at ASC")

	// Por padrão só entradas abertas; ?status=all traz o histórico.
	switch c.Query("status") {
	case "all":
	case "":
		query = query.Where("status = ?", "open")
	default:
		query = query.Where("status = ?", c.Query("status"))
	}

	var entries []models.WaitlistEntry
	if err := query.Find(&entries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_waitlist", "Erro ao listar a fila de espera.")
		return
	}

	httpresp.List(c, entries)
}

func (h *WaitlistHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	var client models.Client
	if err := h.db.Where("id = ? AND shop_id = ?", req.ClientID, shopID).First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	if req.PreferredFrom != nil && req.PreferredTo != nil && req.PreferredTo.Before(*req.PreferredFrom) {
		httperr.BadRequest(c, "invalid_window", "A janela de preferência está invertida.")
		return
	}

	entry := models.WaitlistEntry{
		ShopID:        shopID,
		ClientID:      req.ClientID,
		PetName:       req.PetName,
		ServiceID:     req.ServiceID,
		PreferredFrom: req.PreferredFrom,
		PreferredTo:   req.PreferredTo,
		Notes:         req.Notes,
		Status:        "open",
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_waitlist_entry", "Erro ao adicionar à fila de espera.")
		return
	}

	httpresp.Created(c, entry)
}

// Book cria o agendamento a partir da entrada e fecha a fila.
func (h *WaitlistHandler) Book(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	groomerID := c.MustGet(middleware.ContextUserID).(uint)

	var entry models.WaitlistEntry
	err := h.db.
		Where("id = ? AND shop_id = ? AND status = ?", c.Param("id"), shopID, "open").
		First(&entry).Error
	if err != nil {
		httperr.NotFound(c, "waitlist_entry_not_found", "Entrada não encontrada ou já resolvida.")
		return
	}

	var req struct {
		Date  string `json:"date" binding:"required"`
		Time  string `json:"time" binding:"required"`
		Notes string `json:"notes"`

		Pets           []appointmentuc.PetBookingInput `json:"pets"`
		PriceOverrides []appointmentuc.PriceOverride   `json:"price_overrides"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	pets := req.Pets
	if len(pets) == 0 && entry.PetName != "" {
		booking := appointmentuc.PetBookingInput{PetName: entry.PetName}
		if entry.ServiceID != nil {
			booking.ServiceIDs = []uint{*entry.ServiceID}
		}
		pets = []appointmentuc.PetBookingInput{booking}
	}

	ap, err := h.createUC.Execute(c.Request.Context(), appointmentuc.CreateAppointmentInput{
		ShopID:         shopID,
		GroomerID:      groomerID,
		ClientID:       entry.ClientID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		Pets:           pets,
		PriceOverrides: req.PriceOverrides,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	if err := h.db.Model(&entry).Update("status", "booked").Error; err != nil {
		httperr.Internal(c, "failed_to_update_waitlist_entry", "Agendamento criado, mas houve erro ao fechar a entrada da fila.")
		return
	}

	httpresp.Created(c, gin.H{
		"appointment": ap,
		"waitlist_id": entry.ID,
	})
}

// Resolve fecha a entrada sem agendar: "removed" quando o cliente desistiu.
func (h *WaitlistHandler) Resolve(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req struct {
		Status string `json:"status" binding:"required,oneof=booked removed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status deve ser 'booked' ou 'removed'.")
		return
	}

	result := h.db.
		Model(&models.WaitlistEntry{}).
		Where("id = ? AND shop_id = ? AND status = ?", c.Param("id"), shopID, "open").
		Update("status", req.Status)
	if result.Error != nil {
		httperr.Internal(c, "failed_to_update_waitlist_entry", "Erro ao atualizar a fila de espera.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "waitlist_entry_not_found", "Entrada não encontrada ou já resolvida.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *WaitlistHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	result := h.db.
		Where("id = ? AND shop_id = ?", c.Param("id"), shopID).
		Delete(&models.WaitlistEntry{})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_waitlist_entry", "Erro ao remover da fila de espera.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "waitlist_entry_not_found", "Entrada não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
