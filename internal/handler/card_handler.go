package handler

import (
	"net/http"
	"time"

	"flowdeck/internal/model"
	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	svc *service.CardService
}

type CardCreateReq struct {
	BoardID     uint64     `json:"board_id" binding:"required"`
	ListID      uint64     `json:"list_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
}

type CardUpdateReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
}

type CardMoveReq struct {
	ListID   uint64 `json:"list_id" binding:"required"`
	OrderIdx *int   `json:"order_idx" binding:"required"`
}

type CardAssignReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

func NewCardHandler(svc *service.CardService) *CardHandler {
	return &CardHandler{svc: svc}
}

func (h *CardHandler) Create(c *gin.Context) {
	var req CardCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	card, err := h.svc.Create(currentUserID(c), req.BoardID, req.ListID, service.CardInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": card.ID, "key_seq": card.KeySeq, "order_idx": card.OrderIdx})
}

func (h *CardHandler) Get(c *gin.Context) {
	card, err := h.svc.Get(currentUserID(c), pathID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) ListByList(c *gin.Context) {
	list, err := h.svc.ListByList(currentUserID(c), pathID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CardHandler) Update(c *gin.Context) {
	var req CardUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	card, err := h.svc.Update(currentUserID(c), pathID(c, "id"), service.CardInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) Move(c *gin.Context) {
	var req CardMoveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.Move(currentUserID(c), pathID(c, "id"), req.ListID, *req.OrderIdx); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CardHandler) Reorder(c *gin.Context) {
	var req ReorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.Reorder(currentUserID(c), pathID(c, "id"), req.updates()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CardHandler) Trash(c *gin.Context) {
	if err := h.svc.Trash(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "trashed"})
}

func (h *CardHandler) Restore(c *gin.Context) {
	if err := h.svc.Restore(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "restored"})
}

func (h *CardHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(currentUserID(c), pathID(c, "id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *CardHandler) Assign(c *gin.Context) {
	var req CardAssignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.Assign(currentUserID(c), pathID(c, "id"), req.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CardHandler) Unassign(c *gin.Context) {
	targetID, err := parseID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}
	if err := h.svc.Unassign(currentUserID(c), pathID(c, "id"), targetID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
