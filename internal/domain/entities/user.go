package entities

import (
	"errors"
	"time"

	"github.com/rafabene/automarket-backend/internal/domain/valueobjects"
)

// User representa um usuário do sistema
type User struct {
	ID           string
	Email        valueobjects.Email
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPrivileged verifica se o usuário pode moderar anúncios
func (u *User) IsPrivileged() bool {
	return u.Role.IsPrivileged()
}

// Summary retorna a projeção pública do usuário, usada ao expandir
// o dono de um anúncio em respostas (ListingView)
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Email: u.Email.String(),
		Role:  u.Role,
	}
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}

// UserSummary é a projeção de um usuário exposta junto a um anúncio.
// Nunca carrega o hash de senha.
type UserSummary struct {
	ID    string
	Email string
	Role  Role
}
