package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/httpresp"
	"github.com/PawshSuite/groom-scheduler/internal/middleware"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

type ItemHandler struct {
	db *gorm.DB
}

func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{db: db}
}

type ItemRequest struct {
	Name   string  `json:"name" binding:"required"`
	Price  float64 `json:"price" binding:"gte=0"`
	Stock  int     `json:"stock"`
	Active *bool   `json:"active"`
}

func (h *ItemHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	query := h.db.Where("shop_id = ?", shopID).Order("name ASC")
	if c.Query("all") != "true" {
		query = query.Where("active = ?", true)
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_items", "Erro ao listar itens.")
		return
	}

	httpresp.List(c, items)
}

func (h *ItemHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	item := models.Item{
		ShopID: shopID,
		Name:   req.Name,
		Price:  req.Price,
		Stock:  req.Stock,
		Active: true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_item", "Erro ao cadastrar item.")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var item models.Item
	err := h.db.
		Where("id = ? AND shop_id = ?", c.Param("id"), shopID).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "item_not_found", "Item não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_item", "Erro ao buscar item.")
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Stock = req.Stock
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Erro ao atualizar item.")
		return
	}

	httpresp.OK(c, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	result := h.db.
		Model(&models.Item{}).
		Where("id = ? AND shop_id = ?", c.Param("id"), shopID).
		Update("active", false)
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_item", "Erro ao desativar item.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "item_not_found", "Item não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
