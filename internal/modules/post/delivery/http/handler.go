package handler

import (
	"fmt"
	"net/http"

	postDto "github.com/torcriss/CocoReddit-sub000/internal/modules/post/dto"
	post "github.com/torcriss/CocoReddit-sub000/internal/modules/post/service"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	commonDto "github.com/torcriss/CocoReddit-sub000/pkg/dto"
	"github.com/torcriss/CocoReddit-sub000/pkg/ratelimiter"
	"github.com/torcriss/CocoReddit-sub000/pkg/response"
	"github.com/torcriss/CocoReddit-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	service post.PostService
}

func NewPostHandler(service post.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req postDto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), ident, req)
	if err != nil {
		if rateLimitErr, ok := err.(*ratelimiter.RateLimitError); ok {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitErr.Message})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	var filter commonDto.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.GetPosts(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid post id"))
		return
	}

	resp, err := h.service.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
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

	if err := h.service.DeletePost(c.Request.Context(), ident, postID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

func (h *PostHandler) GetMyPosts(c *gin.Context) {
	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	posts, err := h.service.GetPostsByAuthor(c.Request.Context(), ident)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts})
}
