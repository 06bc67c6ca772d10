package handler

import (
	"net/http"

	savedDto "github.com/torcriss/CocoReddit-sub000/internal/modules/saved/dto"
	saved "github.com/torcriss/CocoReddit-sub000/internal/modules/saved/service"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SavedPostHandler struct {
	service saved.SavedPostService
}

func NewSavedPostHandler(service saved.SavedPostService) *SavedPostHandler {
	return &SavedPostHandler{service: service}
}

func (h *SavedPostHandler) ToggleSave(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid post id"))
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.ToggleSave(c.Request.Context(), ident.UserID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SavedPostHandler) ListSaved(c *gin.Context) {
	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.ListSaved(c.Request.Context(), ident.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SavedStatus answers the toggle state for rendering; anonymous viewers get a
// stable {saved:false} rather than an error.
func (h *SavedPostHandler) SavedStatus(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid post id"))
		return
	}

	var userID *uuid.UUID
	if ident := response.OptionalIdentity(c); ident != nil {
		userID = &ident.UserID
	}

	isSaved, err := h.service.IsSaved(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, savedDto.SavedStatusResponse{PostID: postID, Saved: isSaved})
}
