package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
	"github.com/rafabene/automarket-backend/internal/domain/ports"
	"github.com/rafabene/automarket-backend/internal/domain/repositories"
)

// memUserRepo é uma implementação em memória de UserRepository para testes
type memUserRepo struct {
	users map[string]*entities.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entities.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email.String() == email {
			found := *user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) delete(id string) {
	delete(r.users, id)
}

// memListingRepo é uma implementação em memória de ListingRepository.
// A ordem de listagem é a inversa da inserção (mais recentes primeiro),
// como no banco real.
type memListingRepo struct {
	listings map[string]*entities.Listing
	order    []string
	seq      int
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{listings: make(map[string]*entities.Listing)}
}

func (r *memListingRepo) Insert(_ context.Context, listing *entities.Listing) error {
	if listing.ID == "" {
		r.seq++
		listing.ID = fmt.Sprintf("listing-%d", r.seq)
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt

	stored := *listing
	r.listings[listing.ID] = &stored
	r.order = append(r.order, listing.ID)
	return nil
}

func (r *memListingRepo) FindByID(_ context.Context, id string) (*entities.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, nil
	}
	found := *listing
	return &found, nil
}

func (r *memListingRepo) FindByStatus(_ context.Context, status entities.ListingStatus, filters repositories.ListingFilters) ([]*entities.Listing, error) {
	var result []*entities.Listing
	for i := len(r.order) - 1; i >= 0; i-- {
		listing, ok := r.listings[r.order[i]]
		if ok && listing.Status == status {
			found := *listing
			result = append(result, &found)
		}
	}
	return paginate(result, filters), nil
}

func (r *memListingRepo) FindByOwner(_ context.Context, ownerID string, filters repositories.ListingFilters) ([]*entities.Listing, error) {
	var result []*entities.Listing
	for i := len(r.order) - 1; i >= 0; i-- {
		listing, ok := r.listings[r.order[i]]
		if ok && listing.OwnerID == ownerID {
			found := *listing
			result = append(result, &found)
		}
	}
	return paginate(result, filters), nil
}

func (r *memListingRepo) Update(_ context.Context, id string, patch repositories.ListingPatch) (*entities.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, nil
	}

	patch.ApplyTo(listing)
	listing.UpdatedAt = time.Now()

	updated := *listing
	return &updated, nil
}

func (r *memListingRepo) Delete(_ context.Context, id string) error {
	delete(r.listings, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func paginate(listings []*entities.Listing, filters repositories.ListingFilters) []*entities.Listing {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(listings) {
		return nil
	}
	end := start + pageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}

// nopUnitOfWork executa a função diretamente, sem transação real
type nopUnitOfWork struct{}

func (nopUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (nopUnitOfWork) Commit(context.Context) error                       { return nil }
func (nopUnitOfWork) Rollback(context.Context) error                     { return nil }
func (nopUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// nopLogger descarta tudo
type nopLogger struct{}

func (l nopLogger) Info(string, ...any)      {}
func (l nopLogger) Error(string, ...any)     {}
func (l nopLogger) Debug(string, ...any)     {}
func (l nopLogger) Warn(string, ...any)      {}
func (l nopLogger) With(...any) ports.Logger { return l }
