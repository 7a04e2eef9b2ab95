package handler

import (
	"net/http"

	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type LabelHandler struct {
	svc *service.LabelService
}

type LabelCreateReq struct {
	WorkspaceID uint64 `json:"workspace_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color"`
}

type LabelUpdateReq struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func NewLabelHandler(svc *service.LabelService) *LabelHandler {
	return &LabelHandler{svc: svc}
}

func (h *LabelHandler) Create(c *gin.Context) {
	var req LabelCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	l, err := h.svc.Create(currentUserID(c), req.WorkspaceID, req.Name, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": l.ID})
}

func (h *LabelHandler) ListByWorkspace(c *gin.Context) {
	list, err := h.svc.ListByWorkspace(currentUserID(c), pathID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *LabelHandler) Update(c *gin.Context) {
	var req LabelUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	l, err := h.svc.Update(currentUserID(c), pathID(c, "id"), req.Name, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *LabelHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Attach is idempotent; attaching twice is still a 200.
func (h *LabelHandler) Attach(c *gin.Context) {
	labelID, err := parseID(c.Param("labelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid label id"})
		return
	}
	if err := h.svc.Attach(currentUserID(c), pathID(c, "id"), labelID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *LabelHandler) Detach(c *gin.Context) {
	labelID, err := parseID(c.Param("labelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid label id"})
		return
	}
	if err := h.svc.Detach(currentUserID(c), pathID(c, "id"), labelID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *LabelHandler) ListByCard(c *gin.Context) {
	list, err := h.svc.ListByCard(currentUserID(c), pathID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
