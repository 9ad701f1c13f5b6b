package services

import (
	"context"
	"time"
	"vendora_server/database"
	"vendora_server/lib"
	"vendora_server/structs"
	"vendora_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// StoreService covers vendor onboarding and the menu the order flow
// validates against.
type StoreService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewStoreService(logger *gecho.Logger, db *database.DB) *StoreService {
	return &StoreService{
		logger: logger,
		db:     db,
	}
}

// CreateStore onboards a vendor. A duplicate email or slug is a conflict:
// each vendor onboards once.
func (ss *StoreService) CreateStore(ctx context.Context, req *structs.CreateStoreRequest) (*tables.Store, error) {
	store := &tables.Store{
		Id:        uuid.New(),
		Name:      req.Name,
		Slug:      req.Slug,
		Email:     req.Email,
		UpiId:     req.UpiId,
		UpiName:   req.UpiName,
		CreatedAt: time.Now(),
	}

	created, err := database.Query[tables.Store](ss.db).Insert(ctx, store)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	ss.logger.Info("Store created",
		gecho.Field("store_id", created.Id),
		gecho.Field("slug", created.Slug))
	return created, nil
}

func (ss *StoreService) GetStoreByEmail(ctx context.Context, email string) (*tables.Store, error) {
	store, err := database.Query[tables.Store](ss.db).
		Where("email", email).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if store == nil {
		return nil, lib.ErrNotFound
	}
	return store, nil
}

func (ss *StoreService) GetStoreBySlug(ctx context.Context, slug string) (*tables.Store, error) {
	store, err := database.Query[tables.Store](ss.db).
		Where("slug", slug).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if store == nil {
		return nil, lib.ErrNotFound
	}
	return store, nil
}

func (ss *StoreService) CreateMenuItem(ctx context.Context, req *structs.CreateMenuItemRequest) (*tables.MenuItem, error) {
	item := &tables.MenuItem{
		Id:          uuid.New(),
		StoreId:     req.StoreId,
		Name:        req.Name,
		Price:       req.Price,
		IsAvailable: true,
		CreatedAt:   time.Now(),
	}

	created, err := database.Query[tables.MenuItem](ss.db).Insert(ctx, item)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return created, nil
}

func (ss *StoreService) GetMenuByStore(ctx context.Context, storeId uuid.UUID) ([]tables.MenuItem, error) {
	items, err := database.Query[tables.MenuItem](ss.db).
		Where("store_id", storeId).
		OrderBy("created_at", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return items, nil
}

// SetMenuItemAvailability toggles whether an item can be ordered. Existing
// orders keep their snapshots either way.
func (ss *StoreService) SetMenuItemAvailability(ctx context.Context, menuItemId uuid.UUID, available bool) error {
	rows, err := database.Query[tables.MenuItem](ss.db).
		Where("id", menuItemId).
		Update(ctx, map[string]any{"is_available": available})
	if err != nil {
		return lib.MapPgError(err)
	}
	if rows == 0 {
		return lib.ErrNotFound
	}
	return nil
}
