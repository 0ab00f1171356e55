package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/httpresp"
	"github.com/PawshSuite/groom-scheduler/internal/middleware"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayRequest struct {
	Weekday    int    `json:"weekday" binding:"gte=0,lte=6"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
	Active     bool   `json:"active"`
}

func (h *WorkingHoursHandler) List(c *gin.Context) {
	groomerID := c.MustGet(middleware.ContextUserID).(uint)

	var hours []models.WorkingHours
	err := h.db.
		Where("groomer_id = ?", groomerID).
		Order("weekday ASC").
		Find(&hours).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_working_hours", "Erro ao buscar horários de trabalho.")
		return
	}

	httpresp.List(c, hours)
}

// Replace substitui a grade inteira da semana do groomer logado.
// Enviar sempre a semana completa evita estados parciais.
func (h *WorkingHoursHandler) Replace(c *gin.Context) {
	groomerID := c.MustGet(middleware.ContextUserID).(uint)

	var req []WorkingDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	seen := map[int]bool{}
	for _, day := range req {
		if seen[day.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Cada dia da semana deve aparecer uma única vez.")
			return
		}
		seen[day.Weekday] = true

		if day.Active {
			if !hhmmRe.MatchString(day.StartTime) || !hhmmRe.MatchString(day.EndTime) {
				httperr.BadRequest(c, "invalid_time_format", "Horários devem estar no formato HH:MM.")
				return
			}
			if day.StartTime >= day.EndTime {
				httperr.BadRequest(c, "invalid_time_range", "Início deve ser antes do fim do expediente.")
				return
			}
			if day.LunchStart != "" || day.LunchEnd != "" {
				if !hhmmRe.MatchString(day.LunchStart) || !hhmmRe.MatchString(day.LunchEnd) {
					httperr.BadRequest(c, "invalid_time_format", "Horário de almoço deve estar no formato HH:MM.")
					return
				}
				if day.LunchStart >= day.LunchEnd {
					httperr.BadRequest(c, "invalid_time_range", "Início do almoço deve ser antes do fim.")
					return
				}
			}
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("groomer_id = ?", groomerID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		for _, day := range req {
			row := models.WorkingHours{
				GroomerID:  groomerID,
				Weekday:    day.Weekday,
				StartTime:  day.StartTime,
				EndTime:    day.EndTime,
				LunchStart: day.LunchStart,
				LunchEnd:   day.LunchEnd,
				Active:     day.Active,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários de trabalho.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
