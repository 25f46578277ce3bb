package controllers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rleomotos-api/middleware"
	"rleomotos-api/services"
	"rleomotos-api/utils"
)

type MotorcycleController struct {
	motorcycles *services.MotorcycleService
	uploadDir   string
}

func NewMotorcycleController(motorcycles *services.MotorcycleService, uploadDir string) *MotorcycleController {
	return &MotorcycleController{motorcycles: motorcycles, uploadDir: uploadDir}
}

func (mc *MotorcycleController) List(c *gin.Context) {
	var filters services.MotorcycleFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	motorcycles, err := mc.motorcycles.FindAll(filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, motorcycles)
}

func (mc *MotorcycleController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	motorcycle, err := mc.motorcycles.FindOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, motorcycle)
}

func (mc *MotorcycleController) Create(c *gin.Context) {
	var input services.MotorcycleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	motorcycle, err := mc.motorcycles.Create(input, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, motorcycle)
}

func (mc *MotorcycleController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// The body is decoded twice: once into the typed input and once into a
	// raw key set, so an absent field can be told apart from explicit null.
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}

	var input services.MotorcycleInput
	if err := json.Unmarshal(body, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var rawKeys map[string]json.RawMessage
	if err := json.Unmarshal(body, &rawKeys); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	present := func(key string) bool {
		_, ok := rawKeys[key]
		return ok
	}

	motorcycle, err := mc.motorcycles.Update(id, input, present, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, motorcycle)
}

func (mc *MotorcycleController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := mc.motorcycles.Remove(id, middleware.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Motorcycle deleted successfully", nil)
}

type addPhotosRequest struct {
	URLs []string `json:"urls"`
}

// AddPhotos accepts multipart uploads (field "photos") and/or raw URLs and
// attaches them to the motorcycle in one ordered batch.
func (mc *MotorcycleController) AddPhotos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var urls []string
	contentType := c.GetHeader("Content-Type")

	if strings.Contains(contentType, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
			return
		}

		urls = append(urls, form.Value["urls"]...)

		for _, file := range form.File["photos"] {
			saved, err := mc.saveUpload(c, id, file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
				return
			}
			urls = append(urls, saved)
		}
	} else {
		var req addPhotosRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		urls = req.URLs
	}

	if len(urls) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photos provided"})
		return
	}

	motorcycle, err := mc.motorcycles.AddPhotos(id, urls)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, motorcycle)
}

func (mc *MotorcycleController) RemovePhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	photoID, ok := pathID(c, "photoId")
	if !ok {
		return
	}

	if err := mc.motorcycles.RemovePhoto(id, photoID); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Photo removed successfully", nil)
}

// saveUpload stores the file under a per-motorcycle directory with a
// timestamp + random suffix so names never collide.
func (mc *MotorcycleController) saveUpload(c *gin.Context, motorcycleID uint, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(mc.uploadDir, "motorcycles", fmt.Sprintf("%d", motorcycleID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d-%s%s",
		time.Now().UnixMilli(),
		strings.Split(uuid.NewString(), "-")[0],
		filepath.Ext(file.Filename),
	)
	dest := filepath.Join(dir, name)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		return "", err
	}
	return filepath.ToSlash(dest), nil
}
