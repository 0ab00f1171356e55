package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/httpresp"
	"github.com/PawshSuite/groom-scheduler/internal/media"
	"github.com/PawshSuite/groom-scheduler/internal/middleware"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

const maxPhotoUploadBytes = 8 << 20 // 8 MB

type PetHandler struct {
	db     *gorm.DB
	photos *media.PhotoStore
}

func NewPetHandler(db *gorm.DB, photos *media.PhotoStore) *PetHandler {
	return &PetHandler{db: db, photos: photos}
}

type PetRequest struct {
	Name     string  `json:"name" binding:"required"`
	Species  string  `json:"species"`
	Breed    string  `json:"breed"`
	WeightKg float64 `json:"weight_kg"`
	Notes    string  `json:"notes"`
}

// findClientPet garante que o pet pertence a um cliente do pet shop logado.
func (h *PetHandler) findClientPet(c *gin.Context, shopID uint) (*models.Pet, bool) {
	var pet models.Pet
	err := h.db.
		Joins("JOIN clients ON clients.id = pets.client_id").
		Where("pets.id = ? AND clients.shop_id = ?", c.Param("id"), shopID).
		First(&pet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "pet_not_found", "Pet não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_pet", "Erro ao buscar pet.")
		return nil, false
	}
	return &pet, true
}

func (h *PetHandler) ListByClient(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var client models.Client
	err := h.db.
		Where("id = ? AND shop_id = ?", c.Param("clientId"), shopID).
		First(&client).Error
	if err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var pets []models.Pet
	if err := h.db.Where("client_id = ?", client.ID).Order("name ASC").Find(&pets).Error; err != nil {
		httperr.Internal(c, "failed_to_list_pets", "Erro ao listar pets.")
		return
	}

	httpresp.List(c, pets)
}

func (h *PetHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var client models.Client
	err := h.db.
		Where("id = ? AND shop_id = ?", c.Param("clientId"), shopID).
		First(&client).Error
	if err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	pet := models.Pet{
		ClientID: client.ID,
		Name:     req.Name,
		Species:  req.Species,
		Breed:    req.Breed,
		WeightKg: req.WeightKg,
		Notes:    req.Notes,
	}

	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "failed_to_create_pet", "Erro ao cadastrar pet.")
		return
	}

	c.JSON(http.StatusCreated, pet)
}

func (h *PetHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	pet, ok := h.findClientPet(c, shopID)
	if !ok {
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	pet.Name = req.Name
	pet.Species = req.Species
	pet.Breed = req.Breed
	pet.WeightKg = req.WeightKg
	pet.Notes = req.Notes

	if err := h.db.Save(pet).Error; err != nil {
		httperr.Internal(c, "failed_to_update_pet", "Erro ao atualizar pet.")
		return
	}

	httpresp.OK(c, pet)
}

func (h *PetHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	pet, ok := h.findClientPet(c, shopID)
	if !ok {
		return
	}

	if err := h.db.Delete(pet).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_pet", "Erro ao remover pet.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UploadPhoto recebe multipart, redimensiona e publica no bucket.
func (h *PetHandler) UploadPhoto(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	if h.photos == nil || !h.photos.Enabled() {
		httperr.BadRequest(c, "photos_disabled", "Upload de fotos não está configurado neste ambiente.")
		return
	}

	pet, ok := h.findClientPet(c, shopID)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie o arquivo no campo 'photo'.")
		return
	}
	if file.Size > maxPhotoUploadBytes {
		httperr.BadRequest(c, "photo_too_large", "A foto deve ter no máximo 8 MB.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Erro ao ler o arquivo enviado.")
		return
	}
	defer src.Close()

	url, err := h.photos.UploadPetPhoto(c.Request.Context(), pet.ID, src)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Erro ao processar a foto. Envie um JPEG ou PNG válido.")
		return
	}

	pet.PhotoURL = url
	if err := h.db.Model(pet).Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo", "Foto enviada, mas houve erro ao salvar a URL.")
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url, "pet_id": strconv.Itoa(int(pet.ID))})
}
