package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/errors"
	"github.com/rafabene/automarket-backend/internal/domain/policy"
	"github.com/rafabene/automarket-backend/internal/domain/ports"
	"github.com/rafabene/automarket-backend/internal/domain/repositories"
	"github.com/rafabene/automarket-backend/internal/domain/valueobjects"
)

// ListingService orquestra o ciclo de vida dos anúncios.
// Toda mutação passa por: autorização (policy) → transição (entidade)
// → persistência (repository), nessa ordem, dentro de uma requisição.
type ListingService struct {
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
	uow         ports.UnitOfWork
	logger      ports.Logger
	now         func() time.Time
}

// NewListingService cria um novo ListingService
func NewListingService(
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		uow:         uow,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// actorOf converte o usuário autenticado (ou nil) no actor da policy
func actorOf(user *entities.User) *policy.Actor {
	if user == nil {
		return nil
	}
	return &policy.Actor{ID: user.ID, Role: user.Role}
}

// Create cria um anúncio para o usuário autenticado.
// Anúncios de usuários comuns entram na fila de moderação (pending);
// anúncios de admin/moderador nascem aprovados.
func (s *ListingService) Create(ctx context.Context, actor *entities.User, draft entities.Listing, photoRefs []string) (*entities.ListingView, error) {
	if !policy.Authorize(actorOf(actor), policy.ActionCreateListing, nil) {
		return nil, errors.ErrUnauthenticated
	}

	photos, err := valueobjects.NewPhotoSet(photoRefs)
	if err != nil {
		return nil, errors.ErrInvalidArgument
	}
	draft.Photos = photos

	listing, err := entities.NewListing(actor, draft)
	if err != nil {
		return nil, errors.ErrInvalidArgument
	}

	if err := s.listingRepo.Insert(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info("listing created",
		"listing_id", listing.ID,
		"owner_id", listing.OwnerID,
		"status", listing.Status,
	)

	owner := actor.Summary()
	return &entities.ListingView{Listing: *listing, Owner: &owner}, nil
}

// GetByID retorna um anúncio respeitando a regra de visibilidade.
// Anúncios aprovados são públicos; pending/rejected só aparecem para o
// dono ou para um privilegiado. Negação vira ErrListingNotFound de
// propósito — a resposta não distingue "não existe" de "existe mas você
// não pode ver".
func (s *ListingService) GetByID(ctx context.Context, actor *entities.User, id string) (*entities.ListingView, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.ErrListingNotFound
	}

	if !policy.Authorize(actorOf(actor), policy.ActionViewListing, listing) {
		return nil, errors.ErrListingNotFound
	}

	return s.expandOwner(ctx, listing)
}

// ListApproved retorna a vitrine pública: somente anúncios aprovados,
// mais recentes primeiro. Não exige autenticação.
func (s *ListingService) ListApproved(ctx context.Context, filters repositories.ListingFilters) ([]*entities.ListingView, error) {
	listings, err := s.listingRepo.FindByStatus(ctx, entities.StatusApproved, filters)
	if err != nil {
		return nil, err
	}

	return s.expandOwners(ctx, listings)
}

// ListOwn retorna os anúncios do próprio usuário, em qualquer status.
// Retorna a forma não expandida (ListingRef): o dono já sabe quem é.
func (s *ListingService) ListOwn(ctx context.Context, actor *entities.User, filters repositories.ListingFilters) ([]*entities.Listing, error) {
	if !policy.Authorize(actorOf(actor), policy.ActionListOwn, nil) {
		return nil, errors.ErrUnauthenticated
	}

	return s.listingRepo.FindByOwner(ctx, actor.ID, filters)
}

// ListPending retorna a fila de moderação. Somente privilegiados.
func (s *ListingService) ListPending(ctx context.Context, actor *entities.User, filters repositories.ListingFilters) ([]*entities.ListingView, error) {
	if !policy.Authorize(actorOf(actor), policy.ActionListPending, nil) {
		return nil, errors.ErrForbidden
	}

	listings, err := s.listingRepo.FindByStatus(ctx, entities.StatusPending, filters)
	if err != nil {
		return nil, err
	}

	return s.expandOwners(ctx, listings)
}

// Edit aplica um patch de conteúdo a um anúncio.
// Edição de conteúdo nunca muda status nem o carimbo de moderação — nem
// reabre nem fecha moderação implicitamente. Exceção: um privilegiado
// que envie decision junto executa edição + moderação como transição
// única e atômica, com o mesmo carimbo de auditoria de Moderate.
func (s *ListingService) Edit(ctx context.Context, actor *entities.User, id string, patch repositories.ListingPatch, decision *entities.ListingStatus, note *string) (*entities.ListingView, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.ErrListingNotFound
	}

	if !policy.Authorize(actorOf(actor), policy.ActionEditContent, listing) {
		return nil, errors.ErrForbidden
	}

	// O carimbo de moderação é montado aqui, nunca aceito do chamador
	patch.Moderation = nil

	// Nota de moderação nunca é persistida sem uma decisão junto
	if note != nil && decision == nil {
		return nil, errors.ErrInvalidArgument
	}

	if decision != nil {
		if !policy.Authorize(actorOf(actor), policy.ActionEditModerationFields, listing) {
			return nil, errors.ErrForbidden
		}
		if !decision.IsDecision() {
			return nil, errors.ErrInvalidArgument
		}
		patch.Moderation = &repositories.ModerationStamp{
			Status:      *decision,
			Note:        note,
			ModeratedBy: actor.ID,
			ModeratedAt: s.now(),
		}
	}

	// Validate-then-write: o patch é aplicado numa cópia em memória e
	// validado por inteiro antes de qualquer escrita
	preview := *listing
	patch.ApplyTo(&preview)
	if err := preview.Validate(); err != nil {
		return nil, errors.ErrInvalidArgument
	}

	var updated *entities.Listing
	apply := func(txCtx context.Context) error {
		updated, err = s.listingRepo.Update(txCtx, id, patch)
		if err != nil {
			return err
		}
		if updated == nil {
			return errors.ErrListingNotFound
		}
		return nil
	}

	if patch.Moderation != nil {
		// Transição combinada: conteúdo e decisão commitam juntos
		if err := s.uow.WithTransaction(ctx, apply); err != nil {
			return nil, err
		}
	} else {
		if err := apply(ctx); err != nil {
			return nil, err
		}
	}

	s.logger.Info("listing updated",
		"listing_id", id,
		"actor_id", actor.ID,
		"moderated", patch.Moderation != nil,
	)

	return s.expandOwner(ctx, updated)
}

// Moderate aplica uma decisão de moderação (approved ou rejected).
// Re-moderar um anúncio já decidido é permitido — última decisão vence.
// Decisão malformada falha antes de qualquer escrita.
func (s *ListingService) Moderate(ctx context.Context, actor *entities.User, id string, decision entities.ListingStatus, note *string) (*entities.ListingView, error) {
	if !policy.Authorize(actorOf(actor), policy.ActionEditModerationFields, nil) {
		return nil, errors.ErrForbidden
	}

	if !decision.IsDecision() {
		return nil, errors.ErrInvalidArgument
	}

	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.ErrListingNotFound
	}

	// A transição é validada na entidade antes de persistir
	preview := *listing
	if err := preview.Moderate(decision, note, actor.ID, s.now()); err != nil {
		return nil, errors.ErrInvalidArgument
	}

	patch := repositories.ListingPatch{
		Moderation: &repositories.ModerationStamp{
			Status:      decision,
			Note:        note,
			ModeratedBy: actor.ID,
			ModeratedAt: *preview.ModeratedAt,
		},
	}

	updated, err := s.listingRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.ErrListingNotFound
	}

	s.logger.Info("listing moderated",
		"listing_id", id,
		"decision", decision,
		"moderator_id", actor.ID,
	)

	return s.expandOwner(ctx, updated)
}

// Delete remove um anúncio. Somente privilegiados — a negação vem antes
// da checagem de existência, então o 403 não revela se o id existe.
func (s *ListingService) Delete(ctx context.Context, actor *entities.User, id string) error {
	if !policy.Authorize(actorOf(actor), policy.ActionDeleteListing, nil) {
		return errors.ErrForbidden
	}

	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if listing == nil {
		return errors.ErrListingNotFound
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("listing deleted", "listing_id", id, "actor_id", actor.ID)
	return nil
}

// DeletePhoto remove uma referência de foto de um anúncio.
// Se era a última foto, o placeholder entra no lugar — o conjunto nunca
// fica vazio. O status de moderação não muda.
func (s *ListingService) DeletePhoto(ctx context.Context, actor *entities.User, id, photoRef string) (*entities.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.ErrListingNotFound
	}

	if !policy.Authorize(actorOf(actor), policy.ActionDeletePhoto, listing) {
		return nil, errors.ErrForbidden
	}

	// A rota captura a referência como caminho, então ela chega com a
	// barra inicial ("/uploads/x.jpg"). Referências gravadas sem a barra
	// ainda são alcançáveis pela forma aparada.
	ref := photoRef
	if !listing.Photos.Contains(ref) {
		if trimmed := strings.TrimPrefix(ref, "/"); listing.Photos.Contains(trimmed) {
			ref = trimmed
		}
	}

	remaining := listing.Photos.Remove(ref)
	patch := repositories.ListingPatch{Photos: &remaining}

	updated, err := s.listingRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.ErrListingNotFound
	}

	s.logger.Info("listing photo deleted",
		"listing_id", id,
		"actor_id", actor.ID,
		"remaining", updated.Photos.Len(),
	)

	return updated, nil
}

// expandOwner monta a ListingView resolvendo o resumo do dono
func (s *ListingService) expandOwner(ctx context.Context, listing *entities.Listing) (*entities.ListingView, error) {
	view := &entities.ListingView{Listing: *listing}

	owner, err := s.userRepo.FindByID(ctx, listing.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		summary := owner.Summary()
		view.Owner = &summary
	}

	return view, nil
}

func (s *ListingService) expandOwners(ctx context.Context, listings []*entities.Listing) ([]*entities.ListingView, error) {
	views := make([]*entities.ListingView, 0, len(listings))
	for _, listing := range listings {
		view, err := s.expandOwner(ctx, listing)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
