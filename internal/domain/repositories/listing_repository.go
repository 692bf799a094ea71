package repositories

import (
	"context"
	"time"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/valueobjects"
)

// ListingRepository define a interface para persistência de anúncios
type ListingRepository interface {
	Insert(ctx context.Context, listing *entities.Listing) error
	FindByID(ctx context.Context, id string) (*entities.Listing, error)
	FindByStatus(ctx context.Context, status entities.ListingStatus, filters ListingFilters) ([]*entities.Listing, error)
	FindByOwner(ctx context.Context, ownerID string, filters ListingFilters) ([]*entities.Listing, error)

	// Update aplica o patch num único UPDATE. O par moderatedBy/moderatedAt
	// do carimbo é gravado junto com o status na mesma escrita — uma falha
	// no meio do caminho nunca deixa só metade do carimbo persistida.
	Update(ctx context.Context, id string, patch ListingPatch) (*entities.Listing, error)

	Delete(ctx context.Context, id string) error
}

// ListingFilters contém filtros de paginação para listagens
type ListingFilters struct {
	Page     int // Página (começa em 1)
	PageSize int // Itens por página (default: 20, max: 100)
}

// ListingPatch enumera explicitamente cada campo mutável de um anúncio.
// Campos nil não são tocados. Substitui o merge dinâmico de payload:
// permissões de conteúdo vs. moderação são verificadas campo a campo
// no service, nunca confiando na forma do payload do chamador.
type ListingPatch struct {
	Brand        *string
	Model        *string
	Year         *int
	Price        *int64
	Description  *string
	Contacts     *string
	EngineVolume *float64
	Mileage      *int
	OwnersCount  *int
	IsDamaged    *bool
	Transmission *entities.Transmission
	FuelType     *entities.FuelType
	Color        *string
	Photos       *valueobjects.PhotoSet

	// Moderation, quando presente, grava status + nota + carimbo na mesma
	// escrita (transição combinada EditContent+Moderate de um privilegiado).
	Moderation *ModerationStamp
}

// ModerationStamp é o conjunto de campos de auditoria gravados por uma
// decisão de moderação. Sempre aplicado por inteiro.
type ModerationStamp struct {
	Status      entities.ListingStatus
	Note        *string
	ModeratedBy string
	ModeratedAt time.Time
}

// HasContent verifica se o patch altera algum campo de conteúdo
func (p ListingPatch) HasContent() bool {
	return p.Brand != nil || p.Model != nil || p.Year != nil || p.Price != nil ||
		p.Description != nil || p.Contacts != nil || p.EngineVolume != nil ||
		p.Mileage != nil || p.OwnersCount != nil || p.IsDamaged != nil ||
		p.Transmission != nil || p.FuelType != nil || p.Color != nil || p.Photos != nil
}

// ApplyTo aplica o patch sobre uma cópia em memória do anúncio, para
// validação antes da escrita (validate-then-write)
func (p ListingPatch) ApplyTo(listing *entities.Listing) {
	if p.Brand != nil {
		listing.Brand = *p.Brand
	}
	if p.Model != nil {
		listing.Model = *p.Model
	}
	if p.Year != nil {
		listing.Year = *p.Year
	}
	if p.Price != nil {
		listing.Price = *p.Price
	}
	if p.Description != nil {
		listing.Description = *p.Description
	}
	if p.Contacts != nil {
		listing.Contacts = *p.Contacts
	}
	if p.EngineVolume != nil {
		listing.EngineVolume = *p.EngineVolume
	}
	if p.Mileage != nil {
		listing.Mileage = *p.Mileage
	}
	if p.OwnersCount != nil {
		listing.OwnersCount = *p.OwnersCount
	}
	if p.IsDamaged != nil {
		listing.IsDamaged = *p.IsDamaged
	}
	if p.Transmission != nil {
		listing.Transmission = *p.Transmission
	}
	if p.FuelType != nil {
		listing.FuelType = *p.FuelType
	}
	if p.Color != nil {
		listing.Color = *p.Color
	}
	if p.Photos != nil {
		listing.Photos = *p.Photos
	}
	if p.Moderation != nil {
		listing.Status = p.Moderation.Status
		listing.ModerationNote = p.Moderation.Note
		moderatedBy := p.Moderation.ModeratedBy
		moderatedAt := p.Moderation.ModeratedAt
		listing.ModeratedBy = &moderatedBy
		listing.ModeratedAt = &moderatedAt
	}
}
