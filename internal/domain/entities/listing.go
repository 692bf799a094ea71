package entities

import (
	"errors"
	"time"

	"github.com/rafabene/automarket-backend/internal/domain/valueobjects"
)

// ListingStatus representa o estado de moderação de um anúncio
type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

// IsValid verifica se o status é um dos valores conhecidos
func (s ListingStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsDecision verifica se o status é uma decisão de moderação válida.
// "pending" nunca é uma decisão — a moderação só aprova ou rejeita.
func (s ListingStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// Transmission representa o tipo de câmbio do veículo
type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
	TransmissionRobot     Transmission = "robot"
	TransmissionVariator  Transmission = "variator"
)

// IsValid verifica se o câmbio é um dos valores conhecidos
func (t Transmission) IsValid() bool {
	switch t {
	case TransmissionManual, TransmissionAutomatic, TransmissionRobot, TransmissionVariator:
		return true
	}
	return false
}

// FuelType representa o tipo de combustível do veículo
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
	FuelLPG      FuelType = "lpg"
)

// IsValid verifica se o combustível é um dos valores conhecidos
func (f FuelType) IsValid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelHybrid, FuelElectric, FuelLPG:
		return true
	}
	return false
}

const (
	maxDescriptionLength    = 1000
	maxModerationNoteLength = 500
	minListingYear          = 1900
)

var (
	ErrInvalidModerationDecision = errors.New("moderation decision must be approved or rejected")
	ErrInvalidListingData        = errors.New("invalid listing data")
)

// Listing representa um anúncio de veículo.
// O campo OwnerID é sempre o id cru do dono (forma não expandida).
// Quando a resposta precisa dos dados do dono, use ListingView.
type Listing struct {
	ID      string
	OwnerID string

	Brand        string
	Model        string
	Year         int
	Price        int64
	Description  string
	Contacts     string
	EngineVolume float64
	Mileage      int
	OwnersCount  int
	IsDamaged    bool
	Transmission Transmission
	FuelType     FuelType
	Color        string

	Photos valueobjects.PhotoSet

	Status         ListingStatus
	ModerationNote *string
	ModeratedBy    *string
	ModeratedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListingView é a forma expandida de um anúncio, com o resumo do dono
// já resolvido. Consumidores devem declarar qual das duas formas esperam
// ao invés de inspecionar o tipo em runtime.
type ListingView struct {
	Listing
	Owner *UserSummary
}

// NewListing cria um anúncio para o dono informado.
// Anúncios de usuários comuns nascem pendentes de moderação; anúncios
// criados por admin ou moderador nascem aprovados — quem modera já
// passou pela mesma barreira de confiança que a fila de moderação impõe.
func NewListing(owner *User, draft Listing) (*Listing, error) {
	listing := draft
	listing.OwnerID = owner.ID
	listing.ModerationNote = nil
	listing.ModeratedBy = nil
	listing.ModeratedAt = nil

	if owner.IsPrivileged() {
		listing.Status = StatusApproved
	} else {
		listing.Status = StatusPending
	}

	if err := listing.Validate(); err != nil {
		return nil, err
	}

	return &listing, nil
}

// Moderate aplica uma decisão de moderação.
// Válido de qualquer estado atual, inclusive re-moderar um anúncio já
// aprovado ou rejeitado — não existe decisão final travada. A nota
// anterior é substituída (ou limpa, quando note é nil), e o carimbo
// moderatedBy/moderatedAt é sempre gravado em par.
func (l *Listing) Moderate(decision ListingStatus, note *string, moderatorID string, now time.Time) error {
	if !decision.IsDecision() {
		return ErrInvalidModerationDecision
	}

	if note != nil && len(*note) > maxModerationNoteLength {
		return ErrInvalidListingData
	}

	l.Status = decision
	l.ModerationNote = note
	l.ModeratedBy = &moderatorID
	l.ModeratedAt = &now
	return nil
}

// RemovePhoto retira uma referência de foto do anúncio.
// Se era a última, o placeholder entra no lugar. O status de moderação
// nunca muda por remoção de foto.
func (l *Listing) RemovePhoto(ref string) {
	l.Photos = l.Photos.Remove(ref)
}

// HasModerationStamp verifica se o carimbo de moderação está presente.
// Invariante: ModeratedBy e ModeratedAt são ambos presentes ou ambos
// ausentes — nunca apenas um deles.
func (l *Listing) HasModerationStamp() bool {
	return l.ModeratedBy != nil && l.ModeratedAt != nil
}

// Validate valida regras de negócio da entidade Listing
func (l *Listing) Validate() error {
	if l.Brand == "" || l.Model == "" {
		return ErrInvalidListingData
	}

	if l.Year < minListingYear || l.Year > time.Now().Year()+1 {
		return ErrInvalidListingData
	}

	if l.Price <= 0 {
		return ErrInvalidListingData
	}

	if l.Description == "" || len(l.Description) > maxDescriptionLength {
		return ErrInvalidListingData
	}

	if l.Contacts == "" {
		return ErrInvalidListingData
	}

	if l.EngineVolume < 0.5 || l.EngineVolume > 10 {
		return ErrInvalidListingData
	}

	if l.Mileage < 0 {
		return ErrInvalidListingData
	}

	if l.OwnersCount < 1 || l.OwnersCount > 20 {
		return ErrInvalidListingData
	}

	if !l.Transmission.IsValid() || !l.FuelType.IsValid() {
		return ErrInvalidListingData
	}

	if l.Color == "" {
		return ErrInvalidListingData
	}

	if !l.Status.IsValid() {
		return ErrInvalidListingData
	}

	if (l.ModeratedBy == nil) != (l.ModeratedAt == nil) {
		return ErrInvalidListingData
	}

	if l.ModerationNote != nil && len(*l.ModerationNote) > maxModerationNoteLength {
		return ErrInvalidListingData
	}

	return nil
}
