package services

import (
	"context"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/app/repositories"
	"github.com/vyshnav-v/food-delivery/pkg/apperr"
	"github.com/vyshnav-v/food-delivery/pkg/collection"
	"github.com/vyshnav-v/food-delivery/pkg/event"
	"github.com/vyshnav-v/food-delivery/pkg/logger"
	"github.com/vyshnav-v/food-delivery/pkg/metrics"
)

// The order service talks to the other collections through these narrow
// interfaces so the placement workflow can be tested against fakes.

// ProductStore is the slice of the product repository the order workflow needs.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (models.Product, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	RefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error)
}

// OrderStore is the slice of the order repository the service needs.
type OrderStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	Create(ctx context.Context, o *models.Order) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter bson.M, sort query.Sort, p query.Params) ([]models.Order, int64, error)
	StatusStats(ctx context.Context, filter bson.M) ([]query.OrderStatusGroup, error)
}

// UserStore is the slice of the user repository the service needs.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	SearchIDs(ctx context.Context, term string) ([]primitive.ObjectID, error)
	RefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error)
}

// OrderService implements order listing, placement, and status management.
type OrderService struct {
	orders   OrderStore
	products ProductStore
	users    UserStore
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
		users:    repositories.NewUserRepository(),
	}
}

// OrderPage is one page of the order list with its status summary.
type OrderPage struct {
	Orders     []models.PopulatedOrder
	Pagination query.Pagination
	Stats      query.OrderStats
}

// List returns a filtered, sorted page of orders. A search term is first
// resolved against users (name, email, mobile) and against order IDs; the
// status summary is computed over the same filter as the page.
func (s *OrderService) List(ctx context.Context, q url.Values) (OrderPage, error) {
	params := query.ParseParams(q)
	filters := query.ParseOrderFilters(q)
	sort := query.ResolveSort(params.Sort, params.Order, query.OrderSortFields)

	var matched []primitive.ObjectID
	if filters.Search != "" {
		ids, err := s.users.SearchIDs(ctx, filters.Search)
		if err != nil {
			return OrderPage{}, apperr.Internal("Failed to fetch orders", err)
		}
		matched = ids
	}
	filter := filters.Build(matched)

	orders, total, err := s.orders.List(ctx, filter, sort, params)
	if err != nil {
		return OrderPage{}, apperr.Internal("Failed to fetch orders", err)
	}
	groups, err := s.orders.StatusStats(ctx, filter)
	if err != nil {
		return OrderPage{}, apperr.Internal("Failed to fetch orders", err)
	}
	populated, err := s.populate(ctx, orders)
	if err != nil {
		return OrderPage{}, apperr.Internal("Failed to fetch orders", err)
	}

	return OrderPage{
		Orders:     populated,
		Pagination: query.NewPagination(total, params),
		Stats:      query.FoldOrderStats(groups),
	}, nil
}

// Get returns a single populated order.
func (s *OrderService) Get(ctx context.Context, id string) (models.PopulatedOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.PopulatedOrder{}, apperr.Validation("Invalid order id")
	}
	o, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.PopulatedOrder{}, apperr.NotFound("Order")
		}
		return models.PopulatedOrder{}, apperr.Internal("Failed to fetch order", err)
	}
	populated, err := s.populate(ctx, []models.Order{o})
	if err != nil {
		return models.PopulatedOrder{}, apperr.Internal("Failed to fetch order", err)
	}
	return populated[0], nil
}

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	Product  string
	Quantity int
}

// PlaceOrderInput is the validated order-placement payload.
type PlaceOrderInput struct {
	User  string
	Items []OrderItemInput
}

// Place runs the order placement workflow:
//
//  1. Validate the user and every item, snapshotting prices.
//  2. Atomically decrement stock per item with a stock >= qty condition.
//     A failed decrement restores every earlier one and rejects the order.
//  3. Insert the order document. An insert failure also restores stock.
//  4. Mark products the stored order depleted as out-of-stock.
//
// Stock is never decremented for an order that does not end up stored, and
// no order is stored without its full stock having been taken. The status
// flip waits for the insert so a rolled-back placement never leaves a
// product out-of-stock with its stock restored.
func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput) (models.PopulatedOrder, error) {
	userID, err := primitive.ObjectIDFromHex(in.User)
	if err != nil {
		return s.reject("validation", apperr.Validation("Invalid user id"))
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if repositories.IsNotFound(err) {
			return s.reject("not_found", apperr.NotFound("User"))
		}
		return s.reject("internal", apperr.Internal("Failed to place order", err))
	}
	if len(in.Items) == 0 {
		return s.reject("validation", apperr.Validation("Order must contain at least one item"))
	}

	// Phase 1: validate everything before touching stock.
	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return s.reject("validation", apperr.Validation("Item quantity must be at least 1"))
		}
		pid, err := primitive.ObjectIDFromHex(it.Product)
		if err != nil {
			return s.reject("validation", apperr.Validation("Invalid product id"))
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			if repositories.IsNotFound(err) {
				return s.reject("not_found", apperr.NotFoundf("Product not found: %s", it.Product))
			}
			return s.reject("internal", apperr.Internal("Failed to place order", err))
		}
		if p.Stock < it.Quantity {
			return s.reject("stock", apperr.Conflict(
				"Insufficient stock for %s: %d available", p.Name, p.Stock))
		}
		items = append(items, models.OrderItem{
			Product:  pid,
			Quantity: it.Quantity,
			Price:    p.Price,
		})
		total += p.Price * float64(it.Quantity)
	}

	// Phase 2: take stock. Each decrement is conditional on the stock
	// still being there, so concurrent orders cannot oversell.
	taken := make([]models.OrderItem, 0, len(items))
	var depleted []primitive.ObjectID
	for _, it := range items {
		p, err := s.products.DecrementStock(ctx, it.Product, it.Quantity)
		if err != nil {
			s.restock(ctx, taken)
			if repositories.IsNotFound(err) {
				return s.reject("stock", apperr.Conflict("Insufficient stock"))
			}
			return s.reject("internal", apperr.Internal("Failed to place order", err))
		}
		taken = append(taken, it)
		if p.Stock == 0 {
			depleted = append(depleted, p.ID)
		}
	}

	order := models.Order{
		User:        userID,
		Items:       items,
		TotalAmount: total,
		Status:      models.OrderPending,
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		s.restock(ctx, taken)
		return s.reject("internal", apperr.Internal("Failed to place order", err))
	}

	metrics.OrdersPlaced.Inc()

	// Only a stored order flips products to out-of-stock. A placement that
	// rolled back has its stock restored, so the status must stay put.
	for _, pid := range depleted {
		if err := s.products.SetStatus(ctx, pid, models.ProductOutOfStock); err != nil {
			logger.WithCtx(ctx).Warn("order: mark out-of-stock failed",
				"product", pid.Hex(), "error", err)
		}
	}

	populated, err := s.populate(ctx, []models.Order{order})
	if err != nil {
		// The order is stored; population is a read-side nicety.
		logger.WithCtx(ctx).Warn("order: populate after place failed",
			"order", order.ID.Hex(), "error", err)
		populated = []models.PopulatedOrder{thin(order)}
	}
	event.FireAsync(event.OrderCreated, populated[0])
	return populated[0], nil
}

// UpdateStatus moves an order to a new status.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (models.PopulatedOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.PopulatedOrder{}, apperr.Validation("Invalid order id")
	}
	if !models.ValidOrderStatus(status) {
		return models.PopulatedOrder{}, apperr.Validation(
			"Status must be one of: pending, confirmed, delivered, cancelled")
	}

	o, err := s.orders.UpdateStatus(ctx, oid, status)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.PopulatedOrder{}, apperr.NotFound("Order")
		}
		return models.PopulatedOrder{}, apperr.Internal("Failed to update order", err)
	}

	populated, err := s.populate(ctx, []models.Order{o})
	if err != nil {
		logger.WithCtx(ctx).Warn("order: populate after status update failed",
			"order", o.ID.Hex(), "error", err)
		populated = []models.PopulatedOrder{thin(o)}
	}
	event.FireAsync(event.OrderStatusChanged, populated[0])
	return populated[0], nil
}

// Delete removes an order document. Stock is not restored.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("Invalid order id")
	}
	if err := s.orders.Delete(ctx, oid); err != nil {
		if repositories.IsNotFound(err) {
			return apperr.NotFound("Order")
		}
		return apperr.Internal("Failed to delete order", err)
	}
	return nil
}

// restock compensates already-taken decrements after a mid-flight failure.
func (s *OrderService) restock(ctx context.Context, taken []models.OrderItem) {
	for _, it := range taken {
		if err := s.products.IncrementStock(ctx, it.Product, it.Quantity); err != nil {
			logger.WithCtx(ctx).Error("order: restock failed",
				"product", it.Product.Hex(), "quantity", it.Quantity, "error", err)
		}
	}
}

func (s *OrderService) reject(reason string, err *apperr.Error) (models.PopulatedOrder, error) {
	metrics.OrderFailures.WithLabelValues(reason).Inc()
	return models.PopulatedOrder{}, err
}

// populate resolves user and product references across a batch of orders
// with one query per collection.
func (s *OrderService) populate(ctx context.Context, orders []models.Order) ([]models.PopulatedOrder, error) {
	userIDs := collection.Unique(collection.Map(orders,
		func(o models.Order) primitive.ObjectID { return o.User }))

	var productIDs []primitive.ObjectID
	for _, o := range orders {
		productIDs = append(productIDs, collection.Map(o.Items,
			func(it models.OrderItem) primitive.ObjectID { return it.Product })...)
	}
	productIDs = collection.Unique(productIDs)

	userRefs, err := s.users.RefsByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	productRefs, err := s.products.RefsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.PopulatedOrder, 0, len(orders))
	for _, o := range orders {
		po := thin(o)
		if ref, ok := userRefs[o.User]; ok {
			po.User = ref
		}
		for i, it := range o.Items {
			if ref, ok := productRefs[it.Product]; ok {
				po.Items[i].Product = ref
			}
		}
		out = append(out, po)
	}
	return out, nil
}

// thin converts an order without resolving references. Deleted users or
// products leave a ref carrying only the ID.
func thin(o models.Order) models.PopulatedOrder {
	items := make([]models.PopulatedOrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = models.PopulatedOrderItem{
			Product:  models.ProductRef{ID: it.Product},
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return models.PopulatedOrder{
		ID:          o.ID,
		User:        models.UserRef{ID: o.User},
		Items:       items,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		OrderDate:   o.OrderDate,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
