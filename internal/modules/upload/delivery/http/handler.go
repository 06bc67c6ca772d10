package handler

import (
	"net/http"
	"os"

	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/response"
	"github.com/torcriss/CocoReddit-sub000/pkg/storage"
	"github.com/gin-gonic/gin"
)

// maxUploadSize caps post images at 10 MiB.
const maxUploadSize = 10 << 20

type UploadHandler struct {
	fileStorage storage.ImageStorage
}

func NewUploadHandler(fileStorage storage.ImageStorage) *UploadHandler {
	return &UploadHandler{fileStorage: fileStorage}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	if _, err := response.GetIdentity(c); err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.Validation("file is required"))
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.Error(c, apperror.Validation("file exceeds the 10MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	folder := os.Getenv("CLOUDINARY_UPLOAD_FOLDER")
	if folder == "" {
		folder = "cocoreddit"
	}

	url, err := h.fileStorage.UploadImage(c.Request.Context(), file, folder, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
