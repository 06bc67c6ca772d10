package handler

import (
	"fmt"
	"net/http"

	commentDto "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/dto"
	comment "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/service"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/ratelimiter"
	"github.com/torcriss/CocoReddit-sub000/pkg/response"
	"github.com/torcriss/CocoReddit-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req commentDto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.CreateComment(c.Request.Context(), ident, req)
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

func (h *CommentHandler) EditComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid comment id"))
		return
	}

	var req commentDto.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.EditComment(c.Request.Context(), ident, commentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid comment id"))
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.SoftDeleteComment(c.Request.Context(), ident, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) GetCommentsForPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid post id"))
		return
	}

	resp, err := h.service.GetCommentsForPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) GetMyComments(c *gin.Context) {
	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := h.service.GetCommentsByAuthor(c.Request.Context(), ident)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comments})
}
