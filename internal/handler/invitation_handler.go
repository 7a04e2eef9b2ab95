package handler

import (
	"net/http"

	"flowdeck/internal/model"
	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	svc *service.InvitationService
}

type InviteReq struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

func NewInvitationHandler(svc *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{svc: svc}
}

func (h *InvitationHandler) Invite(c *gin.Context) {
	var req InviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	inv, err := h.svc.Invite(currentUserID(c), pathID(c, "id"), req.Email, model.Role(req.Role))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": inv.ID, "status": inv.Status})
}

func (h *InvitationHandler) ListMine(c *gin.Context) {
	list, err := h.svc.ListPending(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	if err := h.svc.Accept(currentUserID(c), currentEmail(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "accepted"})
}

func (h *InvitationHandler) Reject(c *gin.Context) {
	if err := h.svc.Reject(currentEmail(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "rejected"})
}
