package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/httpresp"
	"github.com/waggytails/walk-scheduler/internal/middleware"
	"github.com/waggytails/walk-scheduler/internal/models"
	"github.com/waggytails/walk-scheduler/internal/storage"
)

type DogHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewDogHandler(db *gorm.DB, uploader *storage.Uploader) *DogHandler {
	return &DogHandler{db: db, uploader: uploader}
}

type CreateDogRequest struct {
	Name  string `json:"name" binding:"required"`
	Breed string `json:"breed"`
	Size  string `json:"size"`
	Note  string `json:"note"`
}

func (h *DogHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid dog data.")
		return
	}

	dog := models.Dog{
		OwnerID: ownerID,
		Name:    req.Name,
		Breed:   req.Breed,
		Size:    req.Size,
		Note:    req.Note,
	}

	if err := h.db.Create(&dog).Error; err != nil {
		httperr.Internal(c, "failed_to_create_dog", "Could not save the dog.")
		return
	}

	httpresp.Created(c, dog)
}

func (h *DogHandler) List(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	var dogs []models.Dog
	if err := h.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&dogs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_dogs", "Could not load dogs.")
		return
	}

	httpresp.List(c, dogs)
}

func (h *DogHandler) UploadPhoto(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	dogID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_dog_id", "Invalid dog id.")
		return
	}

	var dog models.Dog
	if err := h.db.Where("id = ? AND owner_id = ?", dogID, ownerID).First(&dog).Error; err != nil {
		httperr.NotFound(c, "dog_not_found", "Dog not found.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Photo file is required.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadImage(
		c.Request.Context(),
		fmt.Sprintf("dogs/%d/%d", ownerID, dog.ID),
		file,
	)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store the photo.")
		return
	}

	dog.PhotoURL = url
	h.db.Save(&dog)

	httpresp.OK(c, dog)
}
