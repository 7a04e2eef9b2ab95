package service

import (
	"errors"

	"flowdeck/internal/model"
	"flowdeck/internal/pkg"
	"flowdeck/internal/repository/mysql"
	redisrepo "flowdeck/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     *mysql.UserRepository
	sessions *redisrepo.SessionRepository
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, sessions *redisrepo.SessionRepository, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		sessions: sessions,
		emailSvc: emailSvc,
	}
}

func (s *UserService) Register(username, password, email, code string) error {
	if username == "" || password == "" || email == "" {
		return ErrValidation
	}
	ok, err := s.emailSvc.VerifyCode(CodeScopeRegister, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Create(&model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	})
}

// Login issues a token pair and pins the access token in redis, so a later
// login elsewhere invalidates this session.
func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrValidation
	}
	pair, err := pkg.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.AddUserToken(user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.sessions.DeleteUserToken(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

func (s *UserService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return asNotFound(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	// kill the live session so the new password is required everywhere
	return s.Logout(userID)
}

// ResetPassword is the forgotten-password flow, gated by an emailed code.
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(CodeScopeReset, email, code)
	if err != nil || !ok {
		return ErrValidation
	}
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return asNotFound(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

func (s *UserService) Get(userID uint64) (*model.User, error) {
	u, err := s.repo.FindByID(userID)
	return u, asNotFound(err)
}

func (s *UserService) UpdateDigestPrefs(userID uint64, enabled bool, freq model.DigestFrequency) error {
	switch freq {
	case model.DigestNever, model.DigestHourly, model.DigestDaily, model.DigestWeekly:
	default:
		return ErrValidation
	}
	return s.repo.UpdateDigestPrefs(userID, enabled, freq)
}
