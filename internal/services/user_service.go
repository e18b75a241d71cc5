package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskheroes/task-heroes-api/internal/models"
	"github.com/taskheroes/task-heroes-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("El nombre de usuario ya esta en uso")
	ErrInvalidCredentials   = errors.New("Usuario o contraseña incorrectos")
	ErrUserNotFound         = errors.New("Usuario no encontrado")
	ErrFirstUserNoPassword  = errors.New("El primer usuario debe tener contraseña")
	ErrOnlyFirstUserAdmin   = errors.New("Solo el primer usuario puede ser administrador")
	ErrNonAdminWithPassword = errors.New("Los usuarios no administradores no deben tener contraseña")
	ErrAdminAlreadyExists   = errors.New("Ya existe un administrador")
	ErrAdminNoPoints        = errors.New("Los administradores no pueden acumular puntos")
	ErrNotEnoughPoints      = errors.New("El usuario no tiene suficientes puntos para restar")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user management business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents the required information to create a new user.
type CreateUserInput struct {
	Username string
	Password string
	Admin    bool
}

// CreateUser registers a new household member. The very first account
// created becomes the admin and must carry a password; every later
// account is a passwordless non-admin.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	count, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	firstUser := count == 0

	user := &models.User{Username: username}

	if firstUser {
		if input.Password == "" {
			return nil, ErrFirstUserNoPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.Admin = true
		user.PasswordHash = string(hashed)
	} else {
		if input.Admin {
			return nil, ErrOnlyFirstUserAdmin
		}
		if input.Password != "" {
			return nil, ErrNonAdminWithPassword
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the user. Non-admin accounts
// hold no credential and log in by username alone; the admin account
// requires a password match.
func (s *UserService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.HasPassword() {
		return user, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves every user.
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.userRepo.List()
}

// UpdateUserInput holds the updatable user fields. Points are never
// updated here; they only move through task completion and redemption.
type UpdateUserInput struct {
	Username string
	Password string
	Admin    bool
}

// UpdateUser updates username, role and credential. At most one admin
// may exist, and only the admin may hold a password.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	if other, err := s.userRepo.FindByUsername(username); err == nil && other.ID != id {
		return nil, ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if input.Admin && !user.Admin {
		adminExists, err := s.userRepo.AdminExists(id)
		if err != nil {
			return nil, fmt.Errorf("failed to check admins: %w", err)
		}
		if adminExists {
			return nil, ErrAdminAlreadyExists
		}
	}

	if !input.Admin && input.Password != "" {
		return nil, ErrNonAdminWithPassword
	}

	user.Username = username
	user.Admin = input.Admin

	if input.Admin {
		if input.Password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, ErrFailedToHashPassword
			}
			user.PasswordHash = string(hashed)
		}
	} else {
		user.PasswordHash = ""
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// AddPoints credits points to a non-admin user.
func (s *UserService) AddPoints(id uint64, points int) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if user.Admin {
		return nil, ErrAdminNoPoints
	}

	user.AddPoints(points)
	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// SubtractPoints debits points from a non-admin user. The user must
// hold at least the debited amount.
func (s *UserService) SubtractPoints(id uint64, points int) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if user.Admin {
		return nil, ErrAdminNoPoints
	}
	if user.Points < points {
		return nil, ErrNotEnoughPoints
	}

	user.SubtractPoints(points)
	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}
