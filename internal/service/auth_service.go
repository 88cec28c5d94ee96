package service

import (
	"errors"

	"github.com/google/uuid"

	"go-topup-store/internal/model"
	"go-topup-store/internal/repository"
	"go-topup-store/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// CredentialVerifier checks an operator's credentials and returns the
// account on success. Keeping this behind an interface means the login flow
// never depends on how credentials are stored; a hard-coded pair can never
// sneak back in as the verification mechanism.
type CredentialVerifier interface {
	Verify(email, password string) (*model.User, error)
}

type repoCredentialVerifier struct {
	userRepo repository.UserRepository
}

// NewCredentialVerifier returns the default verifier: bcrypt hashes stored
// on operator accounts in the database.
func NewCredentialVerifier(userRepo repository.UserRepository) CredentialVerifier {
	return &repoCredentialVerifier{userRepo: userRepo}
}

func (v *repoCredentialVerifier) Verify(email, password string) (*model.User, error) {
	user, err := v.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	verifier CredentialVerifier
	userRepo repository.UserRepository
}

func NewAuthService(verifier CredentialVerifier, userRepo repository.UserRepository) AuthService {
	return &authService{
		verifier: verifier,
		userRepo: userRepo,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.verifier.Verify(email, password)
	if err != nil {
		return nil, err
	}

	roleCode := ""
	if user.Role != nil {
		roleCode = user.Role.Code
	}

	// Single session: rotating the token version invalidates older tokens.
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, roleCode, user.GetPrivilegeCodes(), newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	user, err := s.verifier.Verify(email, oldPassword)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ErrWrongPassword
		}
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	return s.userRepo.Update(user)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, errors.New("session expired (logged in on another device)")
	}

	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}
