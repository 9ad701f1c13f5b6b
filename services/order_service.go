package services

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
	"vendora_server/database"
	"vendora_server/lib"
	"vendora_server/realtime"
	"vendora_server/structs"
	"vendora_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type OrderService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
	feed   *FeedService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	feed *FeedService,
) *OrderService {
	return &OrderService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		feed:   feed,
	}
}

// CreateOrderFromRequest creates an order with line-item snapshots in a
// single transaction and announces it on the store's change feed. The
// returned store carries the vendor's UPI handle for the payment handoff.
func (os *OrderService) CreateOrderFromRequest(ctx context.Context, req *structs.CreateOrderRequest) (order *tables.Order, store *tables.Store, err error) {
	store, err = os.GetStoreById(ctx, req.StoreId)
	if err != nil {
		return nil, nil, err
	}

	// Validate every requested item against the live menu: it must exist, be
	// available, and belong to the order's store.
	itemIds := make([]any, 0, len(req.Items))
	for _, item := range req.Items {
		itemIds = append(itemIds, item.MenuItemId)
	}

	menuItems, err := database.Query[tables.MenuItem](os.db).
		WhereIn("id", itemIds).
		Where("store_id", req.StoreId).
		All(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}

	menuMap := make(map[uuid.UUID]*tables.MenuItem, len(menuItems))
	for i := range menuItems {
		menuMap[menuItems[i].Id] = &menuItems[i]
	}

	total, err := validateOrderItems(req.Items, menuMap)
	if err != nil {
		return nil, nil, err
	}

	if total != req.TotalAmount {
		return nil, nil, fmt.Errorf("%w: total amount %d does not match item sum %d", lib.ErrInvalidInput, req.TotalAmount, total)
	}

	customerId, err := os.resolveCustomer(ctx, req.CustomerPhone, req.CustomerName)
	if err != nil {
		return nil, nil, err
	}

	tx, err := os.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}

	defer func() {
		if p := recover(); p != nil {
			os.logger.Error(fmt.Sprintf("panic in CreateOrderFromRequest: %v", p),
				gecho.Field("stack_trace", string(debug.Stack())))
			tx.Rollback()
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	orderId := uuid.New()
	orderNumber := lib.GenerateOrderNumber()

	order = &tables.Order{
		Id:            orderId,
		OrderNumber:   orderNumber,
		StoreId:       store.Id,
		CustomerId:    customerId,
		Status:        tables.OrderStatusPendingPayment,
		TotalAmount:   total,
		PaymentMethod: "UPI",
		Version:       1,
		CreatedAt:     time.Now(),
	}

	_, err = tx.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}

	orderItems := make([]*tables.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		menuItem := menuMap[item.MenuItemId]

		orderItems = append(orderItems, &tables.OrderItem{
			Id:         uuid.New(),
			OrderId:    orderId,
			MenuItemId: menuItem.Id,
			Quantity:   item.Quantity,
			UnitPrice:  menuItem.Price,
			LineTotal:  menuItem.Price * int64(item.Quantity),
			ItemName:   menuItem.Name,
		})
	}

	_, err = tx.NewInsert().Model(&orderItems).Exec(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}

	order.Items = orderItems

	// Announce the new order. Subscribers hold only ids; they hydrate the
	// full order themselves.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if pubErr := os.feed.Publish(pubCtx, store.Id, realtime.ChangeEvent{
			EventType: realtime.EventInsert,
			StoreId:   store.Id,
			OrderId:   orderId,
			Version:   order.Version,
		}); pubErr != nil {
			os.logger.Error("Failed to publish order insert event",
				gecho.Field("error", pubErr),
				gecho.Field("order_id", orderId))
		}
	}()

	os.logger.Info("Order created",
		gecho.Field("order_id", orderId),
		gecho.Field("order_number", orderNumber),
		gecho.Field("store_id", store.Id),
		gecho.Field("total_amount", total))
	return order, store, nil
}

// validateOrderItems checks every requested line against the live menu: the
// item must exist, be available, belong to the store, and still carry the
// price the client saw. Returns the authoritative total in paise.
func validateOrderItems(items []structs.OrderItemRequest, menu map[uuid.UUID]*tables.MenuItem) (int64, error) {
	var total int64
	for _, item := range items {
		menuItem, exists := menu[item.MenuItemId]
		if !exists {
			return 0, fmt.Errorf("%w: menu item %s not found for store", lib.ErrInvalidInput, item.MenuItemId)
		}
		if !menuItem.IsAvailable {
			return 0, fmt.Errorf("%w: menu item %s is not available", lib.ErrInvalidInput, menuItem.Name)
		}
		if item.Price != menuItem.Price {
			return 0, fmt.Errorf("%w: price of %s has changed", lib.ErrInvalidInput, menuItem.Name)
		}
		total += menuItem.Price * int64(item.Quantity)
	}
	return total, nil
}

// resolveCustomer finds or creates the customer record for a phone number.
// Phone is a soft key: the oldest match wins. A name supplied on a later
// order backfills a previously nameless record.
func (os *OrderService) resolveCustomer(ctx context.Context, phone, name string) (*uuid.UUID, error) {
	if phone == "" {
		return nil, nil
	}

	customer, err := database.Query[tables.Customer](os.db).
		Where("phone", phone).
		OrderBy("created_at", database.ASC).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if customer == nil {
		created, err := database.Query[tables.Customer](os.db).Insert(ctx, &tables.Customer{
			Id:        uuid.New(),
			Phone:     phone,
			Name:      name,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		return &created.Id, nil
	}

	if customer.Name == "" && name != "" {
		_, err = database.Query[tables.Customer](os.db).
			Where("id", customer.Id).
			Update(ctx, map[string]any{"name": name})
		if err != nil {
			os.logger.Warn("Failed to backfill customer name",
				gecho.Field("error", err),
				gecho.Field("customer_id", customer.Id))
		}
	}

	return &customer.Id, nil
}

// GetOrderById retrieves an order by primary key with all relations. Used by
// the merger to hydrate insert events.
func (os *OrderService) GetOrderById(ctx context.Context, orderId uuid.UUID) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("o.id", orderId).
		With("Items").
		With("Customer").
		With("Store").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

// OrderById implements realtime.Hydrator.
func (os *OrderService) OrderById(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	return os.GetOrderById(ctx, id)
}

// GetOrderByNumber retrieves an order by its business key with all relations.
func (os *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("o.order_number", orderNumber).
		With("Items").
		With("Customer").
		With("Store").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

// GetOrdersByStore retrieves the full order collection for a store, newest
// first. This is the seed fetch for the dashboard view.
func (os *OrderService) GetOrdersByStore(ctx context.Context, storeId uuid.UUID) ([]*tables.Order, error) {
	orders, err := database.Query[tables.Order](os.db).
		Where("o.store_id", storeId).
		With("Items").
		With("Customer").
		OrderBy("o.created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	result := make([]*tables.Order, len(orders))
	for i := range orders {
		result[i] = &orders[i]
	}
	return result, nil
}

// OrdersByStore implements OrderSource.
func (os *OrderService) OrdersByStore(ctx context.Context, storeId uuid.UUID) ([]*tables.Order, error) {
	return os.GetOrdersByStore(ctx, storeId)
}

// GetStoreById retrieves a store by primary key.
func (os *OrderService) GetStoreById(ctx context.Context, storeId uuid.UUID) (*tables.Store, error) {
	store, err := database.Query[tables.Store](os.db).
		Where("id", storeId).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if store == nil {
		return nil, lib.ErrNotFound
	}
	return store, nil
}
