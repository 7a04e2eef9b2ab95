package handler

import (
	"net/http"

	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

type CommentCreateReq struct {
	CardID   uint64  `json:"card_id" binding:"required"`
	ParentID *uint64 `json:"parent_id"`
	Body     string  `json:"body" binding:"required"`
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	comment, err := h.svc.Create(currentUserID(c), req.CardID, req.ParentID, req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": comment.ID})
}

func (h *CommentHandler) ListByCard(c *gin.Context) {
	list, err := h.svc.ListByCard(currentUserID(c), pathID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
