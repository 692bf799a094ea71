package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/errors"
	"github.com/rafabene/automarket-backend/internal/infrastructure/i18n"
	"github.com/rafabene/automarket-backend/internal/services"
)

// CurrentUserContextKey é a chave do usuário autenticado no contexto do Gin
const CurrentUserContextKey = "current_user"

// AuthMiddleware resolve a identidade do chamador a cada requisição.
// A resolução sempre passa pelo AuthService: o token é verificado e o
// usuário é relido do banco — nada de identidade cacheada entre
// requisições.
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth exige uma credencial válida. Credencial ausente, inválida
// ou apontando para um usuário que não existe mais: sempre 401, com a
// mesma resposta — sem diferenciar os casos.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := extractBearer(c)
		if bearer == "" {
			abortUnauthorized(c)
			return
		}

		user, err := m.authService.Resolve(c.Request.Context(), bearer)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(CurrentUserContextKey, user)
		c.Next()
	}
}

// OptionalAuth resolve a identidade quando uma credencial é enviada,
// mas deixa a requisição seguir anônima quando não há credencial.
// Uma credencial presente porém inválida ainda é rejeitada.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := extractBearer(c)
		if bearer == "" {
			c.Next()
			return
		}

		user, err := m.authService.Resolve(c.Request.Context(), bearer)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(CurrentUserContextKey, user)
		c.Next()
	}
}

// RequirePrivileged exige credencial válida de admin ou moderador.
// Não privilegiado recebe 403 na mesma forma, exista o recurso ou não.
func (m *AuthMiddleware) RequirePrivileged() gin.HandlerFunc {
	requireAuth := m.RequireAuth()

	return func(c *gin.Context) {
		requireAuth(c)
		if c.IsAborted() {
			return
		}

		user, ok := CurrentUser(c)
		if !ok || !user.IsPrivileged() {
			abortForbidden(c)
			return
		}

		c.Next()
	}
}

// CurrentUser extrai o usuário autenticado do contexto (nil se anônimo)
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, exists := c.Get(CurrentUserContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*entities.User)
	return user, ok
}

// extractBearer retorna o token do header Authorization, ou vazio
func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// As respostas de erro abaixo são montadas aqui (e não via dto) para o
// middleware não depender do pacote dto, que por sua vez depende deste.

func abortUnauthorized(c *gin.Context) {
	abortWithProblem(c, http.StatusUnauthorized, "unauthenticated",
		errors.ProblemTypeUnauthorized, "error.unauthorized.title", "error.unauthorized.detail")
}

func abortForbidden(c *gin.Context) {
	abortWithProblem(c, http.StatusForbidden, "forbidden",
		errors.ProblemTypeForbidden, "error.forbidden.title", "error.forbidden.detail")
}

func abortWithProblem(c *gin.Context, status int, kind, problemType, titleKey, detailKey string) {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	title := titleKey
	detail := detailKey
	if value, exists := c.Get(I18nServiceContextKey); exists {
		if service, ok := value.(*i18n.Service); ok {
			lang, _ := c.Get(LanguageContextKey)
			langStr, _ := lang.(string)
			title = service.T(langStr, titleKey)
			detail = service.T(langStr, detailKey)
		}
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success":  false,
		"kind":     kind,
		"type":     baseURL + problemType,
		"title":    title,
		"status":   status,
		"detail":   detail,
		"instance": c.Request.URL.Path,
	})
}
