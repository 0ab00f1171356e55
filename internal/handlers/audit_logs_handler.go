package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/httpresp"
	"github.com/PawshSuite/groom-scheduler/internal/middleware"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List pagina os eventos do pet shop, mais recentes primeiro.
// Filtros opcionais: ?action= e ?entity=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	query := h.db.Model(&models.AuditLog{}).Where("shop_id = ?", shopID)

	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_count_audit_logs", "Erro ao contar os registros de auditoria.")
		return
	}

	var logs []models.AuditLog
	err := query.
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&logs).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Erro ao listar os registros de auditoria.")
		return
	}

	httpresp.Page(c, logs, total, page, perPage)
}
