package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/errors"
	"github.com/rafabene/automarket-backend/internal/domain/repositories"
	"github.com/rafabene/automarket-backend/internal/handlers/dto"
	"github.com/rafabene/automarket-backend/internal/handlers/middleware"
	"github.com/rafabene/automarket-backend/internal/services"
)

// ListingHandler lida com requisições HTTP relacionadas a anúncios
type ListingHandler struct {
	listingService *services.ListingService
}

// NewListingHandler cria um novo ListingHandler
func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// Create cria um novo anúncio para o usuário autenticado
func (h *ListingHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	view, err := h.listingService.Create(c.Request.Context(), user, req.ToDraft(), req.PhotoURLs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(c, "listing.created", gin.H{
		"listing": dto.ToListingResponse(view),
	}))
}

// List retorna a vitrine pública (somente anúncios aprovados)
func (h *ListingHandler) List(c *gin.Context) {
	views, err := h.listingService.ListApproved(c.Request.Context(), paginationFilters(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "", gin.H{
		"listings": dto.ToListingResponses(views),
	}))
}

// Get retorna um anúncio pelo id, respeitando a visibilidade
func (h *ListingHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	view, err := h.listingService.GetByID(c.Request.Context(), user, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "", gin.H{
		"listing": dto.ToListingResponse(view),
	}))
}

// Mine retorna os anúncios do usuário autenticado, em qualquer status
func (h *ListingHandler) Mine(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	listings, err := h.listingService.ListOwn(c.Request.Context(), user, paginationFilters(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "", gin.H{
		"listings": dto.ToOwnListingResponses(listings),
	}))
}

// Pending retorna a fila de moderação (privilegiados)
func (h *ListingHandler) Pending(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	views, err := h.listingService.ListPending(c.Request.Context(), user, paginationFilters(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "", gin.H{
		"listings": dto.ToListingResponses(views),
	}))
}

// Update aplica um patch de conteúdo a um anúncio.
// Um privilegiado pode enviar status junto: edição + moderação viram
// uma transição única com o mesmo carimbo de auditoria.
func (h *ListingHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	patch, decision, note := req.ToPatch()

	view, err := h.listingService.Edit(c.Request.Context(), user, id, patch, decision, note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "listing.updated", gin.H{
		"listing": dto.ToListingResponse(view),
	}))
}

// Moderate aprova ou rejeita um anúncio
func (h *ListingHandler) Moderate(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	var req dto.ModerateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestErrorResponseI18n(c, "error.invalid_decision"))
		return
	}

	view, err := h.listingService.Moderate(c.Request.Context(), user, id, entities.ListingStatus(req.Decision), req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "listing.moderated", gin.H{
		"listing": dto.ToListingResponse(view),
	}, map[string]interface{}{"Decision": req.Decision}))
}

// Delete remove um anúncio (privilegiados)
func (h *ListingHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	if err := h.listingService.Delete(c.Request.Context(), user, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "listing.deleted", nil))
}

// DeletePhoto remove uma referência de foto de um anúncio
func (h *ListingHandler) DeletePhoto(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")
	photoRef := c.Param("photoRef")

	listing, err := h.listingService.DeletePhoto(c.Request.Context(), user, id, photoRef)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(c, "listing.photo_deleted", gin.H{
		"photo_urls": listing.Photos.Refs(),
	}))
}

// respondError converte a taxonomia de erros do domínio nas respostas
// HTTP correspondentes. A ordem dos casos importa só para leitura — os
// sentinelas são disjuntos.
func (h *ListingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errors.ErrListingNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundErrorResponseI18n(c, "Listing"))
	case errs.Is(err, errors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ForbiddenErrorResponseI18n(c))
	case errs.Is(err, errors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c))
	case errs.Is(err, errors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
	case errs.Is(err, errors.ErrConflict):
		c.JSON(http.StatusConflict, dto.ConflictErrorResponseI18n(c, "error.conflict.title"))
	default:
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
	}
}

// paginationFilters extrai page e page_size da query string
func paginationFilters(c *gin.Context) repositories.ListingFilters {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	return repositories.ListingFilters{
		Page:     page,
		PageSize: pageSize,
	}
}
