package dto

import (
	"time"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/repositories"
)

// CreateListingRequest representa a requisição para criar um anúncio.
// A validação de formato fica nas binding tags; regras de negócio
// (faixas, invariantes) são revalidadas na entidade.
type CreateListingRequest struct {
	Brand        string   `json:"brand" binding:"required,max=100"`
	Model        string   `json:"model" binding:"required,max=100"`
	Year         int      `json:"year" binding:"required,min=1900"`
	Price        int64    `json:"price" binding:"required,gt=0"`
	Description  string   `json:"description" binding:"required,max=1000"`
	Contacts     string   `json:"contacts" binding:"required,max=255"`
	EngineVolume float64  `json:"engine_volume" binding:"required,gte=0.5,lte=10"`
	Mileage      int      `json:"mileage" binding:"gte=0"`
	OwnersCount  int      `json:"owners_count" binding:"required,min=1,max=20"`
	IsDamaged    bool     `json:"is_damaged"`
	Transmission string   `json:"transmission" binding:"required,oneof=manual automatic robot variator"`
	FuelType     string   `json:"fuel_type" binding:"required,oneof=gasoline diesel hybrid electric lpg"`
	Color        string   `json:"color" binding:"required,max=50"`
	PhotoURLs    []string `json:"photo_urls" binding:"max=10"`
}

// ToDraft converte a requisição no rascunho da entidade
func (r CreateListingRequest) ToDraft() entities.Listing {
	return entities.Listing{
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		Price:        r.Price,
		Description:  r.Description,
		Contacts:     r.Contacts,
		EngineVolume: r.EngineVolume,
		Mileage:      r.Mileage,
		OwnersCount:  r.OwnersCount,
		IsDamaged:    r.IsDamaged,
		Transmission: entities.Transmission(r.Transmission),
		FuelType:     entities.FuelType(r.FuelType),
		Color:        r.Color,
	}
}

// UpdateListingRequest representa a requisição de atualização parcial.
// Cada campo mutável é enumerado explicitamente — não há merge dinâmico
// de payload. Status exige actor privilegiado, e moderation_note só é
// aceita acompanhada de status; qualquer outra combinação é rejeitada
// antes de tocar o banco.
type UpdateListingRequest struct {
	Brand        *string  `json:"brand" binding:"omitempty,max=100"`
	Model        *string  `json:"model" binding:"omitempty,max=100"`
	Year         *int     `json:"year" binding:"omitempty,min=1900"`
	Price        *int64   `json:"price" binding:"omitempty,gt=0"`
	Description  *string  `json:"description" binding:"omitempty,max=1000"`
	Contacts     *string  `json:"contacts" binding:"omitempty,max=255"`
	EngineVolume *float64 `json:"engine_volume" binding:"omitempty,gte=0.5,lte=10"`
	Mileage      *int     `json:"mileage" binding:"omitempty,gte=0"`
	OwnersCount  *int     `json:"owners_count" binding:"omitempty,min=1,max=20"`
	IsDamaged    *bool    `json:"is_damaged"`
	Transmission *string  `json:"transmission" binding:"omitempty,oneof=manual automatic robot variator"`
	FuelType     *string  `json:"fuel_type" binding:"omitempty,oneof=gasoline diesel hybrid electric lpg"`
	Color        *string  `json:"color" binding:"omitempty,max=50"`

	Status         *string `json:"status" binding:"omitempty,moderation_decision"`
	ModerationNote *string `json:"moderation_note" binding:"omitempty,max=500"`
}

// ToPatch converte a requisição no patch tipado de conteúdo.
// Os campos de moderação são retornados separados: o service decide se
// o actor pode usá-los.
func (r UpdateListingRequest) ToPatch() (repositories.ListingPatch, *entities.ListingStatus, *string) {
	patch := repositories.ListingPatch{
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		Price:        r.Price,
		Description:  r.Description,
		Contacts:     r.Contacts,
		EngineVolume: r.EngineVolume,
		Mileage:      r.Mileage,
		OwnersCount:  r.OwnersCount,
		IsDamaged:    r.IsDamaged,
		Color:        r.Color,
	}

	if r.Transmission != nil {
		transmission := entities.Transmission(*r.Transmission)
		patch.Transmission = &transmission
	}
	if r.FuelType != nil {
		fuelType := entities.FuelType(*r.FuelType)
		patch.FuelType = &fuelType
	}

	var decision *entities.ListingStatus
	if r.Status != nil {
		status := entities.ListingStatus(*r.Status)
		decision = &status
	}

	return patch, decision, r.ModerationNote
}

// ModerateListingRequest representa a requisição de moderação
type ModerateListingRequest struct {
	Decision string  `json:"decision" binding:"required,moderation_decision"`
	Note     *string `json:"note" binding:"omitempty,max=500"`
}

// ListingOwnerResponse é o resumo do dono embutido na forma expandida
type ListingOwnerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ListingResponse é a forma expandida de um anúncio (ListingView)
type ListingResponse struct {
	ID             string                `json:"id"`
	Brand          string                `json:"brand"`
	Model          string                `json:"model"`
	Year           int                   `json:"year"`
	Price          int64                 `json:"price"`
	Description    string                `json:"description"`
	Contacts       string                `json:"contacts"`
	EngineVolume   float64               `json:"engine_volume"`
	Mileage        int                   `json:"mileage"`
	OwnersCount    int                   `json:"owners_count"`
	IsDamaged      bool                  `json:"is_damaged"`
	Transmission   string                `json:"transmission"`
	FuelType       string                `json:"fuel_type"`
	Color          string                `json:"color"`
	PhotoURLs      []string              `json:"photo_urls"`
	Status         string                `json:"status"`
	ModerationNote *string               `json:"moderation_note,omitempty"`
	ModeratedBy    *string               `json:"moderated_by,omitempty"`
	ModeratedAt    *time.Time            `json:"moderated_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Owner          *ListingOwnerResponse `json:"owner,omitempty"`
}

// OwnListingResponse é a forma não expandida (ListingRef), usada na
// listagem dos próprios anúncios — só carrega o id cru do dono
type OwnListingResponse struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Brand          string     `json:"brand"`
	Model          string     `json:"model"`
	Year           int        `json:"year"`
	Price          int64      `json:"price"`
	Description    string     `json:"description"`
	Contacts       string     `json:"contacts"`
	EngineVolume   float64    `json:"engine_volume"`
	Mileage        int        `json:"mileage"`
	OwnersCount    int        `json:"owners_count"`
	IsDamaged      bool       `json:"is_damaged"`
	Transmission   string     `json:"transmission"`
	FuelType       string     `json:"fuel_type"`
	Color          string     `json:"color"`
	PhotoURLs      []string   `json:"photo_urls"`
	Status         string     `json:"status"`
	ModerationNote *string    `json:"moderation_note,omitempty"`
	ModeratedAt    *time.Time `json:"moderated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToListingResponse converte uma ListingView para ListingResponse
func ToListingResponse(view *entities.ListingView) ListingResponse {
	response := ListingResponse{
		ID:             view.ID,
		Brand:          view.Brand,
		Model:          view.Model,
		Year:           view.Year,
		Price:          view.Price,
		Description:    view.Description,
		Contacts:       view.Contacts,
		EngineVolume:   view.EngineVolume,
		Mileage:        view.Mileage,
		OwnersCount:    view.OwnersCount,
		IsDamaged:      view.IsDamaged,
		Transmission:   string(view.Transmission),
		FuelType:       string(view.FuelType),
		Color:          view.Color,
		PhotoURLs:      view.Photos.Refs(),
		Status:         string(view.Status),
		ModerationNote: view.ModerationNote,
		ModeratedBy:    view.ModeratedBy,
		ModeratedAt:    view.ModeratedAt,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}

	if view.Owner != nil {
		response.Owner = &ListingOwnerResponse{
			ID:    view.Owner.ID,
			Email: view.Owner.Email,
			Role:  string(view.Owner.Role),
		}
	}

	return response
}

// ToListingResponses converte uma lista de ListingView
func ToListingResponses(views []*entities.ListingView) []ListingResponse {
	responses := make([]ListingResponse, len(views))
	for i, view := range views {
		responses[i] = ToListingResponse(view)
	}
	return responses
}

// ToOwnListingResponse converte um Listing (forma não expandida)
func ToOwnListingResponse(listing *entities.Listing) OwnListingResponse {
	return OwnListingResponse{
		ID:             listing.ID,
		OwnerID:        listing.OwnerID,
		Brand:          listing.Brand,
		Model:          listing.Model,
		Year:           listing.Year,
		Price:          listing.Price,
		Description:    listing.Description,
		Contacts:       listing.Contacts,
		EngineVolume:   listing.EngineVolume,
		Mileage:        listing.Mileage,
		OwnersCount:    listing.OwnersCount,
		IsDamaged:      listing.IsDamaged,
		Transmission:   string(listing.Transmission),
		FuelType:       string(listing.FuelType),
		Color:          listing.Color,
		PhotoURLs:      listing.Photos.Refs(),
		Status:         string(listing.Status),
		ModerationNote: listing.ModerationNote,
		ModeratedAt:    listing.ModeratedAt,
		CreatedAt:      listing.CreatedAt,
		UpdatedAt:      listing.UpdatedAt,
	}
}

// ToOwnListingResponses converte uma lista de Listing
func ToOwnListingResponses(listings []*entities.Listing) []OwnListingResponse {
	responses := make([]OwnListingResponse, len(listings))
	for i, listing := range listings {
		responses[i] = ToOwnListingResponse(listing)
	}
	return responses
}
