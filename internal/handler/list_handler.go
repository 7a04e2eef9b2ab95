package handler

import (
	"net/http"

	"flowdeck/internal/repository/mysql"
	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	svc *service.ListService
}

type ListCreateReq struct {
	BoardID uint64 `json:"board_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type ListUpdateReq struct {
	Name   string `json:"name"`
	IsDone *bool  `json:"is_done"`
}

type ReorderReq struct {
	Items []struct {
		ID       uint64 `json:"id" binding:"required"`
		OrderIdx int    `json:"order_idx"`
	} `json:"items" binding:"required"`
}

func (r *ReorderReq) updates() []mysql.OrderUpdate {
	updates := make([]mysql.OrderUpdate, len(r.Items))
	for i, item := range r.Items {
		updates[i] = mysql.OrderUpdate{ID: item.ID, OrderIdx: item.OrderIdx}
	}
	return updates
}

func NewListHandler(svc *service.ListService) *ListHandler {
	return &ListHandler{svc: svc}
}

func (h *ListHandler) Create(c *gin.Context) {
	var req ListCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	list, err := h.svc.Create(currentUserID(c), req.BoardID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": list.ID, "order_idx": list.OrderIdx})
}

func (h *ListHandler) Update(c *gin.Context) {
	var req ListUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	list, err := h.svc.Update(currentUserID(c), pathID(c, "id"), req.Name, req.IsDone)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Reorder applies a full re-sequencing of the board's lists.
func (h *ListHandler) Reorder(c *gin.Context) {
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

// Delete removes a list; ?move_cards_to= names the list that takes its cards.
func (h *ListHandler) Delete(c *gin.Context) {
	var moveTo *uint64
	if v := c.Query("move_cards_to"); v != "" {
		id, err := parseID(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid move_cards_to"})
			return
		}
		moveTo = &id
	}
	if err := h.svc.Delete(currentUserID(c), pathID(c, "id"), moveTo); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
