package errors

import "errors"

// Erros de autenticação e autorização
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUnauthenticated    = errors.New("error.unauthenticated")
	ErrForbidden          = errors.New("error.forbidden")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
)

// Erros de domínio
// Nota: Estes são códigos de erro (message IDs para i18n).
var (
	ErrUserNotFound    = errors.New("error.user_not_found")
	ErrListingNotFound = errors.New("error.listing_not_found")
	ErrInvalidArgument = errors.New("error.invalid_argument")

	// ErrConflict está reservado para locking otimista futuro.
	// A política atual de moderação concorrente é last-write-wins,
	// então este erro nunca é retornado hoje.
	ErrConflict = errors.New("error.conflict")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
