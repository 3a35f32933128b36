package service

import (
	"errors"

	"github.com/riaz37/portfolio-backend/internal/config"
	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/internal/repository"
	"github.com/riaz37/portfolio-backend/internal/util"
	"github.com/riaz37/portfolio-backend/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Config:   cfg,
	}
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return &LoginResponse{Token: token, User: user}, nil
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.Member,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin bootstraps the admin account from config on startup. No-op when
// the account already exists or no admin credentials are configured.
func (s *AuthService) EnsureAdmin() error {
	if s.Config.Admin.Email == "" || s.Config.Admin.Password == "" {
		return nil
	}

	if _, err := s.UserRepo.FindByEmail(s.Config.Admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Config.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     "Admin",
		Email:    s.Config.Admin.Email,
		Password: string(hashed),
		Role:     model.Admin,
	}
	if err := s.UserRepo.Create(admin); err != nil {
		return err
	}
	logger.Log.Info("admin account created", zap.String("email", admin.Email))
	return nil
}
