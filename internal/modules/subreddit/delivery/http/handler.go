package handler

import (
	"net/http"

	subredditDto "github.com/torcriss/CocoReddit-sub000/internal/modules/subreddit/dto"
	subreddit "github.com/torcriss/CocoReddit-sub000/internal/modules/subreddit/service"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/response"
	"github.com/torcriss/CocoReddit-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type SubredditHandler struct {
	service subreddit.SubredditService
}

func NewSubredditHandler(service subreddit.SubredditService) *SubredditHandler {
	return &SubredditHandler{service: service}
}

func (h *SubredditHandler) CreateSubreddit(c *gin.Context) {
	var req subredditDto.CreateSubredditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.CreateSubreddit(c.Request.Context(), ident, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *SubredditHandler) GetAllSubreddits(c *gin.Context) {
	subreddits, err := h.service.GetAllSubreddits(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": subreddits})
}

func (h *SubredditHandler) GetSubredditByName(c *gin.Context) {
	resp, err := h.service.GetSubredditByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SubredditHandler) ToggleMembership(c *gin.Context) {
	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.ToggleMembership(c.Request.Context(), ident.UserID, c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
