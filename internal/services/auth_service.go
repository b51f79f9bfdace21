package services

import (
	"time"

	"xconfess_backend/internal/auth"
	"xconfess_backend/internal/email"
	"xconfess_backend/internal/logger"
	"xconfess_backend/internal/models"
	"xconfess_backend/internal/repositories"
	"xconfess_backend/internal/services/dto"

	"xconfess_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const resetTokenTTL = 15 * time.Minute

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	// RequestPasswordReset always succeeds from the caller's perspective so
	// the endpoint does not leak which emails are registered.
	RequestPasswordReset(req *dto.RequestPasswordResetRequest) error
	ResetPassword(req *dto.ResetPasswordRequest) error
	GetUser(userID string) (*models.User, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	emailSender email.Sender
}

func NewAuthService(userRepo repositories.UserRepository, emailSender email.Sender) AuthService {
	return &authService{
		userRepo:    userRepo,
		emailSender: emailSender,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if err == repositories.ErrUserAlreadyExists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	// Best-effort welcome mail, registration already succeeded.
	if err := s.emailSender.SendWelcome(user.Email, user.Username); err != nil {
		logger.Error("failed to send welcome email", "recipient", user.Email, "error", err)
	}

	return buildUserResponse(user), nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrUserDeactivated
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        buildUserResponse(user),
	}, nil
}

func (s *authService) RequestPasswordReset(req *dto.RequestPasswordResetRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			// Do not reveal whether the address is registered
			return nil
		}
		return err
	}

	token := uuid.NewString()
	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = token
	user.ResetTokenExp = &exp

	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordReset(user.Email, user.Username, token); err != nil {
		logger.Error("failed to send password reset email", "recipient", user.Email, "error", err)
	}

	return nil
}

func (s *authService) ResetPassword(req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByResetToken(req.Token)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrInvalidToken
		}
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil

	return s.userRepo.Update(user)
}

func (s *authService) GetUser(userID string) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
