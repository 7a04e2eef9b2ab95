package handler

import (
	"errors"
	"net/http"

	"flowdeck/internal/repository/mysql"
	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
)

// fail maps domain errors onto HTTP statuses; everything unknown is a 500.
func fail(c *gin.Context, err error) {
	var hasChildren *mysql.HasChildrenError
	switch {
	case errors.As(err, &hasChildren):
		c.JSON(http.StatusConflict, gin.H{
			"msg":      "list still holds cards",
			"children": hasChildren.Count,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
	case errors.Is(err, service.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"msg": "not a workspace member"})
	case errors.Is(err, service.ErrInsufficientRole):
		c.JSON(http.StatusForbidden, gin.H{"msg": "insufficient role"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"msg": "conflict"})
	case errors.Is(err, service.ErrState):
		c.JSON(http.StatusConflict, gin.H{"msg": "invalid lifecycle state"})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, mysql.ErrCrossScopeReorder),
		errors.Is(err, mysql.ErrDuplicateOrder),
		errors.Is(err, mysql.ErrPartialReorder),
		errors.Is(err, mysql.ErrTargetScopeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

func currentUserID(c *gin.Context) uint64 {
	v, _ := c.Get("user_id")
	id, _ := v.(uint64)
	return id
}

func currentEmail(c *gin.Context) string {
	v, _ := c.Get("email")
	email, _ := v.(string)
	return email
}
