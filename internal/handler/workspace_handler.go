package handler

import (
	"net/http"
	"strconv"

	"flowdeck/internal/model"
	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	svc *service.WorkspaceService
}

type WorkspaceCreateReq struct {
	Name       string `json:"name" binding:"required"`
	Visibility string `json:"visibility"`
}

type MemberRoleReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

func NewWorkspaceHandler(svc *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{svc: svc}
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req WorkspaceCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	w, err := h.svc.Create(currentUserID(c), req.Name, model.Visibility(req.Visibility))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": w.ID, "name": w.Name, "visibility": w.Visibility})
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	id := pathID(c, "id")
	w, err := h.svc.Get(currentUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkspaceHandler) ListMine(c *gin.Context) {
	list, err := h.svc.ListMine(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	list, err := h.svc.ListMembers(currentUserID(c), pathID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *WorkspaceHandler) ChangeRole(c *gin.Context) {
	var req MemberRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	err := h.svc.ChangeRole(currentUserID(c), pathID(c, "id"), req.UserID, model.Role(req.Role))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}
	if err := h.svc.RemoveMember(currentUserID(c), pathID(c, "id"), targetID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *WorkspaceHandler) Leave(c *gin.Context) {
	if err := h.svc.Leave(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func pathID(c *gin.Context, name string) uint64 {
	id, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return id
}

func parseID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
