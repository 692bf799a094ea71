package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/automarket-backend/internal/domain/errors"
	"github.com/rafabene/automarket-backend/internal/handlers/dto"
	"github.com/rafabene/automarket-backend/internal/handlers/middleware"
	"github.com/rafabene/automarket-backend/internal/services"
)

// AuthHandler lida com requisições HTTP de registro e login
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register cria uma nova conta de usuário
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, dto.ConflictErrorResponseI18n(c, "error.email_already_exists"))
		case errs.Is(err, errors.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		default:
			c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(c, "auth.registered", dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}))
}

// Login autentica um usuário existente
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errs.Is(err, errors.ErrInvalidCredentials) {
			response := dto.NewErrorResponseI18n(
				c,
				dto.KindUnauthenticated,
				errors.ProblemTypeUnauthorized,
				"error.unauthorized.title",
				"error.invalid_credentials",
				http.StatusUnauthorized,
			)
			c.JSON(http.StatusUnauthorized, response)
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "auth.logged_in", dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}))
}

// Me retorna o usuário autenticado da requisição corrente
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "", dto.ToUserResponse(user)))
}
