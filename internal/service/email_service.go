package service

import (
	"errors"

	"flowdeck/internal/pkg"
	redisrepo "flowdeck/internal/repository/redis"
)

const (
	CodeScopeRegister = "register"
	CodeScopeReset    = "reset"
)

// EmailService issues and checks the one-time verification codes used by
// registration and password reset.
type EmailService struct {
	codes  *redisrepo.CodeRepository
	mailer pkg.Mailer
}

func NewEmailService(codes *redisrepo.CodeRepository, mailer pkg.Mailer) *EmailService {
	return &EmailService{codes: codes, mailer: mailer}
}

func (s *EmailService) SendCode(scope, email string) error {
	if scope != CodeScopeRegister && scope != CodeScopeReset {
		return ErrValidation
	}
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.codes.SetCode(scope, email, code); err != nil {
		return err
	}
	subject := "Flowdeck verification code"
	html := pkg.EmailCodeHTML(scope, code, redisrepo.DefaultEmailCodeTTL)
	if err := s.mailer(email, subject, html); err != nil {
		// do not leave a live code behind when the mail never went out
		_ = s.codes.DeleteCode(scope, email)
		return err
	}
	return nil
}

// VerifyCode checks and consumes the code; it is one-time on success. A
// missing or expired code is a failed check, not an infrastructure error.
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.codes.GetCode(scope, email)
	if errors.Is(err, redisrepo.ErrCodeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err := s.codes.DeleteCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
