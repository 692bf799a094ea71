package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/repositories"
	"github.com/rafabene/automarket-backend/internal/domain/valueobjects"
)

// ListingRepository implementa repositories.ListingRepository
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository cria um novo ListingRepository
func NewListingRepository(db *gorm.DB) repositories.ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Insert(ctx context.Context, listing *entities.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}

	model, err := r.toModel(listing)
	if err != nil {
		return err
	}

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	listing.CreatedAt = time.Unix(model.CreatedAt, 0)
	listing.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*entities.Listing, error) {
	var model ListingModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *ListingRepository) FindByStatus(ctx context.Context, status entities.ListingStatus, filters repositories.ListingFilters) ([]*entities.Listing, error) {
	var models []*ListingModel

	db := r.getDB(ctx)
	query := db.WithContext(ctx).Model(&ListingModel{}).
		Where("status = ?", string(status)).
		Order("created_at DESC")

	query = applyPagination(query, filters)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID string, filters repositories.ListingFilters) ([]*entities.Listing, error) {
	var models []*ListingModel

	db := r.getDB(ctx)
	query := db.WithContext(ctx).Model(&ListingModel{}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")

	query = applyPagination(query, filters)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

// Update aplica o patch num único UPDATE. Status, nota e o par
// moderatedBy/moderatedAt vão todos na mesma escrita: o carimbo de
// auditoria nunca fica persistido pela metade.
func (r *ListingRepository) Update(ctx context.Context, id string, patch repositories.ListingPatch) (*entities.Listing, error) {
	columns, err := patchColumns(patch)
	if err != nil {
		return nil, err
	}

	db := r.getDB(ctx)

	if len(columns) > 0 {
		columns["updated_at"] = time.Now().Unix()

		result := db.WithContext(ctx).Model(&ListingModel{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}

	return r.FindByID(ctx, id)
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	return db.WithContext(ctx).Where("id = ?", id).Delete(&ListingModel{}).Error
}

// applyPagination aplica os limites de página do jeito padrão do projeto
func applyPagination(query *gorm.DB, filters repositories.ListingFilters) *gorm.DB {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize
	return query.Limit(pageSize).Offset(offset)
}

// patchColumns converte o patch tipado nas colunas do UPDATE
func patchColumns(patch repositories.ListingPatch) (map[string]interface{}, error) {
	columns := map[string]interface{}{}

	if patch.Brand != nil {
		columns["brand"] = *patch.Brand
	}
	if patch.Model != nil {
		columns["model"] = *patch.Model
	}
	if patch.Year != nil {
		columns["year"] = *patch.Year
	}
	if patch.Price != nil {
		columns["price"] = *patch.Price
	}
	if patch.Description != nil {
		columns["description"] = *patch.Description
	}
	if patch.Contacts != nil {
		columns["contacts"] = *patch.Contacts
	}
	if patch.EngineVolume != nil {
		columns["engine_volume"] = *patch.EngineVolume
	}
	if patch.Mileage != nil {
		columns["mileage"] = *patch.Mileage
	}
	if patch.OwnersCount != nil {
		columns["owners_count"] = *patch.OwnersCount
	}
	if patch.IsDamaged != nil {
		columns["is_damaged"] = *patch.IsDamaged
	}
	if patch.Transmission != nil {
		columns["transmission"] = string(*patch.Transmission)
	}
	if patch.FuelType != nil {
		columns["fuel_type"] = string(*patch.FuelType)
	}
	if patch.Color != nil {
		columns["color"] = *patch.Color
	}
	if patch.Photos != nil {
		encoded, err := encodePhotos(*patch.Photos)
		if err != nil {
			return nil, err
		}
		columns["photos"] = encoded
	}
	if patch.Moderation != nil {
		columns["status"] = string(patch.Moderation.Status)
		columns["moderation_note"] = patch.Moderation.Note
		columns["moderated_by"] = patch.Moderation.ModeratedBy
		columns["moderated_at"] = patch.Moderation.ModeratedAt.Unix()
	}

	return columns, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *ListingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

func encodePhotos(photos valueobjects.PhotoSet) (string, error) {
	data, err := json.Marshal(photos.Refs())
	if err != nil {
		return "", fmt.Errorf("failed to encode photos: %w", err)
	}
	return string(data), nil
}

func decodePhotos(encoded string) (valueobjects.PhotoSet, error) {
	var refs []string
	if err := json.Unmarshal([]byte(encoded), &refs); err != nil {
		return valueobjects.PhotoSet{}, fmt.Errorf("failed to decode photos: %w", err)
	}
	return valueobjects.NewPhotoSet(refs)
}

// Conversores
func (r *ListingRepository) toModel(listing *entities.Listing) (*ListingModel, error) {
	photos, err := encodePhotos(listing.Photos)
	if err != nil {
		return nil, err
	}

	var moderatedAt *int64
	if listing.ModeratedAt != nil {
		ts := listing.ModeratedAt.Unix()
		moderatedAt = &ts
	}

	model := &ListingModel{
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
		Photos:         photos,
		Status:         string(listing.Status),
		ModerationNote: listing.ModerationNote,
		ModeratedBy:    listing.ModeratedBy,
		ModeratedAt:    moderatedAt,
	}

	// Um time.Time zero precisa virar 0 no model: qualquer outro valor
	// impede o autoCreateTime/autoUpdateTime de preencher no insert
	if !listing.CreatedAt.IsZero() {
		model.CreatedAt = listing.CreatedAt.Unix()
	}
	if !listing.UpdatedAt.IsZero() {
		model.UpdatedAt = listing.UpdatedAt.Unix()
	}

	return model, nil
}

func (r *ListingRepository) toEntity(model *ListingModel) (*entities.Listing, error) {
	photos, err := decodePhotos(model.Photos)
	if err != nil {
		return nil, err
	}

	var moderatedAt *time.Time
	if model.ModeratedAt != nil {
		ts := time.Unix(*model.ModeratedAt, 0)
		moderatedAt = &ts
	}

	return &entities.Listing{
		ID:             model.ID,
		OwnerID:        model.OwnerID,
		Brand:          model.Brand,
		Model:          model.Model,
		Year:           model.Year,
		Price:          model.Price,
		Description:    model.Description,
		Contacts:       model.Contacts,
		EngineVolume:   model.EngineVolume,
		Mileage:        model.Mileage,
		OwnersCount:    model.OwnersCount,
		IsDamaged:      model.IsDamaged,
		Transmission:   entities.Transmission(model.Transmission),
		FuelType:       entities.FuelType(model.FuelType),
		Color:          model.Color,
		Photos:         photos,
		Status:         entities.ListingStatus(model.Status),
		ModerationNote: model.ModerationNote,
		ModeratedBy:    model.ModeratedBy,
		ModeratedAt:    moderatedAt,
		CreatedAt:      time.Unix(model.CreatedAt, 0),
		UpdatedAt:      time.Unix(model.UpdatedAt, 0),
	}, nil
}

func (r *ListingRepository) toEntities(models []*ListingModel) ([]*entities.Listing, error) {
	listings := make([]*entities.Listing, 0, len(models))

	for _, model := range models {
		listing, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}
