// Package policy concentra as regras de autorização por posse e papel.
// Toda decisão de "quem pode o quê" sobre anúncios vive aqui, numa
// função pura — nada de consultar storage além do target recebido.
package policy

import "github.com/rafabene/automarket-backend/internal/domain/entities"

// Action enumera as operações sujeitas a autorização
type Action string

const (
	ActionCreateListing        Action = "listing.create"
	ActionViewListing          Action = "listing.view"
	ActionListApproved         Action = "listing.list_approved"
	ActionListOwn              Action = "listing.list_own"
	ActionListPending          Action = "listing.list_pending"
	ActionEditContent          Action = "listing.edit_content"
	ActionEditModerationFields Action = "listing.edit_moderation"
	ActionDeleteListing        Action = "listing.delete"
	ActionDeletePhoto          Action = "listing.delete_photo"
)

// Actor identifica quem executa a ação. Um actor nil representa uma
// requisição não autenticada.
type Actor struct {
	ID   string
	Role entities.Role
}

// IsPrivileged verifica se o actor tem papel de moderação
func (a *Actor) IsPrivileged() bool {
	return a != nil && a.Role.IsPrivileged()
}

// isOwner verifica se o actor é o dono do anúncio alvo
func (a *Actor) isOwner(target *entities.Listing) bool {
	return a != nil && target != nil && a.ID == target.OwnerID
}

// Authorize decide se o actor pode executar a ação sobre o alvo.
// Negar é o default: qualquer combinação não listada explicitamente
// resulta em false. A função é pura e sem efeitos colaterais.
func Authorize(actor *Actor, action Action, target *entities.Listing) bool {
	switch action {
	case ActionCreateListing:
		// Qualquer usuário autenticado pode anunciar
		return actor != nil

	case ActionListApproved:
		// Listagem pública: o filtro de status fica na query, não aqui
		return true

	case ActionViewListing:
		if target != nil && target.Status == entities.StatusApproved {
			return true
		}
		return actor.IsPrivileged() || actor.isOwner(target)

	case ActionListOwn:
		return actor != nil

	case ActionListPending:
		return actor.IsPrivileged()

	case ActionEditContent, ActionDeletePhoto:
		return actor.IsPrivileged() || actor.isOwner(target)

	case ActionEditModerationFields, ActionDeleteListing:
		return actor.IsPrivileged()
	}

	return false
}
