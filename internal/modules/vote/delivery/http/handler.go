package handler

import (
	"net/http"

	voteDto "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/dto"
	vote "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/service"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/response"
	"github.com/torcriss/CocoReddit-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	service vote.VoteService
}

func NewVoteHandler(service vote.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

func (h *VoteHandler) CastVote(c *gin.Context) {
	var req voteDto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.CastVote(c.Request.Context(), ident, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
