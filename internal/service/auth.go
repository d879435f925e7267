package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
	"github.com/pollify/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

type AuthService interface {
	Register(request dto.RegisterRequest) (model.User, error)
	Login(request dto.LoginRequest) (model.User, error)
	GetUser(id uint) (model.User, error)
	EnsureAdmin()
}

type authService struct {
	userRepository repository.UserRepository
	config         dto.Config
}

func newAuthService(userRepository repository.UserRepository, config dto.Config) AuthService {
	return &authService{
		userRepository: userRepository,
		config:         config,
	}
}

func (a *authService) Register(request dto.RegisterRequest) (model.User, error) {
	username := strings.TrimSpace(request.Username)
	email := strings.TrimSpace(request.Email)
	if username == "" || email == "" || request.Password == "" {
		return model.User{}, fmt.Errorf("%w: username, email and password are required", dto.ErrValidation)
	}

	if _, err := a.userRepository.GetByUsername(username); err == nil {
		return model.User{}, fmt.Errorf("%w: username already exists", dto.ErrValidation)
	} else if !errors.Is(err, dto.ErrNotFound) {
		return model.User{}, err
	}

	if _, err := a.userRepository.GetByEmail(email); err == nil {
		return model.User{}, fmt.Errorf("%w: email already registered", dto.ErrValidation)
	} else if !errors.Is(err, dto.ErrNotFound) {
		return model.User{}, err
	}

	user := model.User{
		Username: username,
		Email:    email,
	}
	if err := user.SetPassword(request.Password); err != nil {
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}

	created, err := a.userRepository.Create(user)
	if err != nil {
		return model.User{}, err
	}

	logrus.Infof("Registered user %s", created.Username)
	return created, nil
}

func (a *authService) Login(request dto.LoginRequest) (model.User, error) {
	user, err := a.userRepository.GetByUsername(strings.TrimSpace(request.Username))
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return model.User{}, fmt.Errorf("%w: invalid username or password", dto.ErrNotAuthorized)
		}
		return model.User{}, err
	}

	if !user.CheckPassword(request.Password) {
		return model.User{}, fmt.Errorf("%w: invalid username or password", dto.ErrNotAuthorized)
	}

	return user, nil
}

func (a *authService) GetUser(id uint) (model.User, error) {
	return a.userRepository.GetByID(id)
}

// EnsureAdmin creates the bootstrap admin account on startup if it does not
// exist yet. Failure is logged and swallowed: the process keeps serving
// without an admin account.
func (a *authService) EnsureAdmin() {
	if a.config.AdminUsername == "" || a.config.AdminPassword == "" {
		return
	}

	if _, err := a.userRepository.GetByUsername(a.config.AdminUsername); err == nil {
		logrus.Info("Admin user already exists")
		return
	} else if !errors.Is(err, dto.ErrNotFound) {
		logrus.Errorf("Failed to look up admin user: %v", err)
		return
	}

	admin := model.User{
		Username: a.config.AdminUsername,
		Email:    a.config.AdminEmail,
		IsAdmin:  true,
	}
	if err := admin.SetPassword(a.config.AdminPassword); err != nil {
		logrus.Errorf("Failed to hash admin password: %v", err)
		return
	}

	if _, err := a.userRepository.Create(admin); err != nil {
		logrus.Errorf("Failed to create admin user: %v", err)
		return
	}

	logrus.Infof("Admin user created (username: %s)", a.config.AdminUsername)
}
