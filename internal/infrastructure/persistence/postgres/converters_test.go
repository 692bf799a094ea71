package postgres

import (
	"testing"
	"time"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/valueobjects"
)

func listingFixture(t *testing.T) *entities.Listing {
	t.Helper()

	photos, err := valueobjects.NewPhotoSet([]string{"/uploads/frente.jpg", "/uploads/tras.jpg"})
	if err != nil {
		t.Fatalf("erro inesperado ao criar fotos: %v", err)
	}

	return &entities.Listing{
		ID:           "listing-1",
		OwnerID:      "user-1",
		Brand:        "Kia",
		Model:        "Rio",
		Year:         2019,
		Price:        1350000,
		Description:  "Bem conservado",
		Contacts:     "+7 900 222-33-44",
		EngineVolume: 1.6,
		Mileage:      78000,
		OwnersCount:  2,
		Transmission: entities.TransmissionAutomatic,
		FuelType:     entities.FuelGasoline,
		Color:        "azul",
		Photos:       photos,
		Status:       entities.StatusPending,
	}
}

func TestListingToModel(t *testing.T) {
	repo := &ListingRepository{}

	t.Run("timestamps zero ficam zero no model", func(t *testing.T) {
		// Na criação a entidade ainda não tem timestamps: o model precisa
		// chegar no insert com 0 para o autoCreateTime/autoUpdateTime do
		// GORM preencher. Um Unix() de time.Time zero (-62135596800) é
		// diferente de zero e desligaria o preenchimento automático.
		listing := listingFixture(t)

		model, err := repo.toModel(listing)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}

		if model.CreatedAt != 0 {
			t.Errorf("created_at deveria ser 0 para autoCreateTime, obteve %d", model.CreatedAt)
		}
		if model.UpdatedAt != 0 {
			t.Errorf("updated_at deveria ser 0 para autoUpdateTime, obteve %d", model.UpdatedAt)
		}
	})

	t.Run("timestamps preenchidos são preservados", func(t *testing.T) {
		listing := listingFixture(t)
		listing.CreatedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		listing.UpdatedAt = time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

		model, err := repo.toModel(listing)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}

		if model.CreatedAt != listing.CreatedAt.Unix() {
			t.Errorf("created_at incorreto: %d", model.CreatedAt)
		}
		if model.UpdatedAt != listing.UpdatedAt.Unix() {
			t.Errorf("updated_at incorreto: %d", model.UpdatedAt)
		}
	})

	t.Run("ida e volta preserva a entidade", func(t *testing.T) {
		listing := listingFixture(t)
		listing.CreatedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		listing.UpdatedAt = listing.CreatedAt
		note := "revisar fotos"
		moderatedBy := "mod-1"
		moderatedAt := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
		listing.Status = entities.StatusRejected
		listing.ModerationNote = &note
		listing.ModeratedBy = &moderatedBy
		listing.ModeratedAt = &moderatedAt

		model, err := repo.toModel(listing)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}

		got, err := repo.toEntity(model)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}

		if !got.CreatedAt.Equal(listing.CreatedAt) || !got.UpdatedAt.Equal(listing.UpdatedAt) {
			t.Errorf("timestamps não sobreviveram: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
		}
		if got.Status != entities.StatusRejected || got.ModerationNote == nil || *got.ModerationNote != note {
			t.Error("decisão de moderação não sobreviveu")
		}
		if got.ModeratedBy == nil || *got.ModeratedBy != moderatedBy || got.ModeratedAt == nil || !got.ModeratedAt.Equal(moderatedAt) {
			t.Error("carimbo de moderação não sobreviveu")
		}
		if got.Photos.Len() != 2 || !got.Photos.Contains("/uploads/frente.jpg") {
			t.Errorf("fotos não sobreviveram: %v", got.Photos.Refs())
		}
	})
}

func TestUserToModel(t *testing.T) {
	repo := &UserRepository{}

	email, err := valueobjects.NewEmail("fulano@example.com")
	if err != nil {
		t.Fatalf("erro inesperado ao criar email: %v", err)
	}

	user := &entities.User{
		ID:           "user-1",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         entities.RoleUser,
	}

	t.Run("timestamps zero ficam zero no model", func(t *testing.T) {
		model := repo.toModel(user)

		if model.CreatedAt != 0 || model.UpdatedAt != 0 {
			t.Errorf("timestamps deveriam ser 0 para o GORM preencher, obteve %d/%d", model.CreatedAt, model.UpdatedAt)
		}
	})

	t.Run("ida e volta preserva a entidade", func(t *testing.T) {
		stamped := *user
		stamped.CreatedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		stamped.UpdatedAt = stamped.CreatedAt

		got, err := repo.toEntity(repo.toModel(&stamped))
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}

		if got.Email.String() != "fulano@example.com" || got.Role != entities.RoleUser {
			t.Errorf("campos não sobreviveram: %+v", got)
		}
		if !got.CreatedAt.Equal(stamped.CreatedAt) {
			t.Errorf("created_at não sobreviveu: %v", got.CreatedAt)
		}
	})
}
