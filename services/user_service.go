package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/repositories"
	"estate-api/utils"
)

// UserService maneja las cuentas del back-office y emite tokens
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, id uint) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// EnsureAdmin crea el admin inicial salvo que el username ya exista
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type userService struct {
	repo repositories.UserRepository
	jwt  *utils.JWTManager
}

// NewUserService crea el servicio de usuarios; firma los tokens con jwt
func NewUserService(repo repositories.UserRepository, jwt *utils.JWTManager) UserService {
	return &userService{repo: repo, jwt: jwt}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.checkUnique(ctx, 0, username, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = domain.RoleAgent
	}
	user := &domain.User{
		Username: username,
		Email:    email,
		Password: hash,
		FullName: strings.TrimSpace(req.FullName),
		Role:     role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == user.Username {
		username = ""
	}
	if email == user.Email {
		email = ""
	}
	if err := s.checkUnique(ctx, id, username, email); err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if req.FullName != "" {
		user.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		if user.Password, err = utils.HashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return translate(s.repo.Delete(ctx, id))
}

// Login acepta username o email. Para quien llama, un usuario inexistente y una
// contraseña incorrecta dan el mismo error.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.TrimSpace(req.UsernameOrEmail)

	var (
		user *domain.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.repo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *user}, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if _, err := s.CreateUser(ctx, dto.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
		FullName: "Administrator",
		Role:     domain.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("error creating bootstrap admin: %w", err)
	}
	log.Info().Str("username", username).Msg("Bootstrap admin created")
	return nil
}

// checkUnique rechaza un username o email que ya tiene otro usuario. Los
// valores vacíos no se verifican.
func (s *userService) checkUnique(ctx context.Context, self uint, username, email string) error {
	if username != "" {
		if err := taken(self, "username", func() (*domain.User, error) { return s.repo.GetByUsername(ctx, username) }); err != nil {
			return err
		}
	}
	if email != "" {
		if err := taken(self, "email", func() (*domain.User, error) { return s.repo.GetByEmail(ctx, email) }); err != nil {
			return err
		}
	}
	return nil
}

func taken(self uint, field string, lookup func() (*domain.User, error)) error {
	existing, err := lookup()
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return fmt.Errorf("%w: %s", ErrConflict, field)
	}
	return nil
}
