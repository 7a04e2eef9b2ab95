package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotMember        = errors.New("not a workspace member")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("invalid input")
	ErrState            = errors.New("invalid lifecycle state")
)

// asNotFound translates the ORM's record-not-found into the domain error and
// passes everything else through.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
