package handler

import (
	"net/http"

	"flowdeck/internal/model"
	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	svc *service.BoardService
}

type BoardCreateReq struct {
	WorkspaceID uint64 `json:"workspace_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Mode        string `json:"mode"`
}

type BoardUpdateReq struct {
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	IsPinned *bool  `json:"is_pinned"`
}

func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

func (h *BoardHandler) Create(c *gin.Context) {
	var req BoardCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	b, err := h.svc.Create(currentUserID(c), req.WorkspaceID, req.Name, model.BoardMode(req.Mode))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": b.ID, "name": b.Name, "key_slug": b.KeySlug})
}

func (h *BoardHandler) Get(c *gin.Context) {
	b, lists, err := h.svc.Get(currentUserID(c), pathID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": b, "lists": lists})
}

func (h *BoardHandler) ListByWorkspace(c *gin.Context) {
	trashed := c.Query("trashed") == "true"
	list, err := h.svc.ListByWorkspace(currentUserID(c), pathID(c, "id"), trashed)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *BoardHandler) Update(c *gin.Context) {
	var req BoardUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	b, err := h.svc.Update(currentUserID(c), pathID(c, "id"), req.Name, model.BoardMode(req.Mode), req.IsPinned)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BoardHandler) Trash(c *gin.Context) {
	if err := h.svc.Trash(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "trashed"})
}

func (h *BoardHandler) Restore(c *gin.Context) {
	if err := h.svc.Restore(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "restored"})
}

func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
