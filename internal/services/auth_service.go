package services

import (
	"context"
	"strings"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/errors"
	"github.com/rafabene/automarket-backend/internal/domain/ports"
	"github.com/rafabene/automarket-backend/internal/domain/repositories"
	"github.com/rafabene/automarket-backend/internal/domain/valueobjects"
	"github.com/rafabene/automarket-backend/internal/infrastructure/auth"
)

// AuthService contém a lógica de registro, login e resolução de identidade
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register cria um novo usuário com papel comum e emite o token de acesso
func (s *AuthService) Register(ctx context.Context, email, password string) (*entities.User, string, error) {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, "", errors.ErrInvalidArgument
	}

	if len(password) < 6 {
		return nil, "", errors.ErrInvalidArgument
	}

	existing, err := s.userRepo.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", errors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &entities.User{
		Email:        normalized,
		PasswordHash: hash,
		Role:         entities.RoleUser,
	}

	if err := user.Validate(); err != nil {
		return nil, "", errors.ErrInvalidArgument
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login autentica um usuário por email e senha e emite o token de acesso.
// Email inexistente e senha errada retornam o mesmo erro — sem vazar
// quais contas existem.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	normalized := strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Resolve verifica a credencial e resolve o usuário vivo correspondente.
// A identidade embutida no token é reconferida contra o banco a cada
// chamada — nunca cacheada — então um papel revogado ou uma conta
// removida param de valer imediatamente. Token inválido e usuário
// inexistente produzem o mesmo ErrUnauthenticated: o chamador não
// distingue "token ruim" de "token órfão", para não vazar existência
// de contas.
func (s *AuthService) Resolve(ctx context.Context, bearer string) (*entities.User, error) {
	claims, err := s.tokens.Validate(bearer)
	if err != nil {
		return nil, errors.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUnauthenticated
	}

	return user, nil
}
