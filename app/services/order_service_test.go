package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/pkg/apperr"
	"github.com/vyshnav-v/food-delivery/pkg/event"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeProducts struct {
	byID map[primitive.ObjectID]*models.Product
	// decrementErr forces DecrementStock to fail for a product, simulating
	// a concurrent order winning the stock between validation and take.
	decrementErr map[primitive.ObjectID]error
	restocked    map[primitive.ObjectID]int
}

func newFakeProducts(ps ...*models.Product) *fakeProducts {
	f := &fakeProducts{
		byID:         map[primitive.ObjectID]*models.Product{},
		decrementErr: map[primitive.ObjectID]error{},
		restocked:    map[primitive.ObjectID]int{},
	}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return models.Product{}, mongo.ErrNoDocuments
	}
	return *p, nil
}

func (f *fakeProducts) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) (models.Product, error) {
	if err := f.decrementErr[id]; err != nil {
		return models.Product{}, err
	}
	p, ok := f.byID[id]
	if !ok || p.Stock < qty {
		return models.Product{}, mongo.ErrNoDocuments
	}
	p.Stock -= qty
	return *p, nil
}

func (f *fakeProducts) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	if p, ok := f.byID[id]; ok {
		p.Stock += qty
	}
	f.restocked[id] += qty
	return nil
}

func (f *fakeProducts) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	if p, ok := f.byID[id]; ok {
		p.Status = status
	}
	return nil
}

func (f *fakeProducts) RefsByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error) {
	refs := map[primitive.ObjectID]models.ProductRef{}
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			refs[id] = models.ProductRef{ID: id, Name: p.Name, Price: p.Price}
		}
	}
	return refs, nil
}

type fakeOrders struct {
	created    []*models.Order
	createErr  error
	statusRows map[primitive.ObjectID]*models.Order
}

func (f *fakeOrders) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	if o, ok := f.statusRows[id]; ok {
		return *o, nil
	}
	return models.Order{}, mongo.ErrNoDocuments
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	o.ID = primitive.NewObjectID()
	o.OrderDate = time.Now().UTC()
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (models.Order, error) {
	o, ok := f.statusRows[id]
	if !ok {
		return models.Order{}, mongo.ErrNoDocuments
	}
	o.Status = status
	return *o, nil
}

func (f *fakeOrders) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.statusRows[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.statusRows, id)
	return nil
}

func (f *fakeOrders) List(context.Context, bson.M, query.Sort, query.Params) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrders) StatusStats(context.Context, bson.M) ([]query.OrderStatusGroup, error) {
	return nil, nil
}

type fakeUsers struct {
	byID map[primitive.ObjectID]*models.User
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return *u, nil
}

func (f *fakeUsers) SearchIDs(context.Context, string) ([]primitive.ObjectID, error) {
	return nil, nil
}

func (f *fakeUsers) RefsByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	refs := map[primitive.ObjectID]models.UserRef{}
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			refs[id] = models.UserRef{ID: id, Name: u.Name, Email: u.Email}
		}
	}
	return refs, nil
}

// ─── Fixtures ────────────────────────────────────────────────────────────────

func fixture() (*OrderService, *fakeProducts, *fakeOrders, *fakeUsers, models.User, models.Product) {
	user := models.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.com", Role: models.RoleCustomer}
	product := models.Product{
		ID:     primitive.NewObjectID(),
		Name:   "Margherita",
		Price:  12.50,
		Stock:  5,
		Status: models.ProductAvailable,
	}

	products := newFakeProducts(&product)
	orders := &fakeOrders{statusRows: map[primitive.ObjectID]*models.Order{}}
	users := &fakeUsers{byID: map[primitive.ObjectID]*models.User{user.ID: &user}}
	svc := &OrderService{orders: orders, products: products, users: users}
	return svc, products, orders, users, user, product
}

func statusOf(err error) int {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// ─── Placement ───────────────────────────────────────────────────────────────

func TestPlaceOrder(t *testing.T) {
	svc, products, orders, _, user, product := fixture()

	placed, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 3}},
	})
	require.NoError(t, err)

	// Stock is taken and the order stored.
	assert.Equal(t, 2, products.byID[product.ID].Stock)
	require.Len(t, orders.created, 1)

	stored := orders.created[0]
	assert.Equal(t, models.OrderPending, stored.Status)
	assert.Equal(t, 37.50, stored.TotalAmount)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 12.50, stored.Items[0].Price) // price snapshot

	// Response is populated.
	assert.Equal(t, "Asha", placed.User.Name)
	assert.Equal(t, "Margherita", placed.Items[0].Product.Name)
}

func TestPlaceOrderPriceSnapshotSurvivesPriceChange(t *testing.T) {
	svc, products, orders, _, user, product := fixture()

	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 1}},
	})
	require.NoError(t, err)

	products.byID[product.ID].Price = 99
	assert.Equal(t, 12.50, orders.created[0].Items[0].Price)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, products, orders, _, user, product := fixture()

	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 6}},
	})

	require.Error(t, err)
	assert.Equal(t, 400, statusOf(err))
	assert.Equal(t, 5, products.byID[product.ID].Stock) // untouched
	assert.Empty(t, orders.created)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	svc, _, orders, _, user, _ := fixture()

	missing := primitive.NewObjectID()
	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: missing.Hex(), Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 404, statusOf(err))
	// The message names which product failed to resolve.
	assert.Contains(t, err.Error(), missing.Hex())
	assert.Empty(t, orders.created)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	svc, products, _, _, _, product := fixture()

	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  primitive.NewObjectID().Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 404, statusOf(err))
	assert.Equal(t, 5, products.byID[product.ID].Stock)
}

func TestPlaceOrderZeroQuantity(t *testing.T) {
	svc, _, orders, _, user, product := fixture()

	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 0}},
	})

	require.Error(t, err)
	assert.Equal(t, 400, statusOf(err))
	assert.Empty(t, orders.created)
}

func TestPlaceOrderLostRaceRestoresEarlierDecrements(t *testing.T) {
	svc, products, orders, _, user, first := fixture()

	second := models.Product{
		ID: primitive.NewObjectID(), Name: "Tiramisu", Price: 6, Stock: 4,
		Status: models.ProductAvailable,
	}
	products.byID[second.ID] = &second
	// The second item passes validation but loses the conditional
	// decrement, as if a concurrent order took the last units.
	products.decrementErr[second.ID] = mongo.ErrNoDocuments

	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User: user.ID.Hex(),
		Items: []OrderItemInput{
			{Product: first.ID.Hex(), Quantity: 2},
			{Product: second.ID.Hex(), Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Equal(t, 400, statusOf(err))
	assert.Empty(t, orders.created)
	// The first item's decrement was compensated.
	assert.Equal(t, 5, products.byID[first.ID].Stock)
	assert.Equal(t, 2, products.restocked[first.ID])
}

func TestPlaceOrderInsertFailureRestoresStock(t *testing.T) {
	svc, products, orders, _, user, product := fixture()
	orders.createErr = errors.New("write concern timeout")

	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 4}},
	})

	require.Error(t, err)
	assert.Equal(t, 500, statusOf(err))
	assert.Equal(t, 5, products.byID[product.ID].Stock)
	assert.Equal(t, 4, products.restocked[product.ID])
}

func TestPlaceOrderInsertFailureAfterDepletionKeepsStatus(t *testing.T) {
	svc, products, orders, _, user, product := fixture()
	orders.createErr = errors.New("write concern timeout")

	// The order would deplete the product, but the insert fails. The
	// restored stock must come back with the status still available.
	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 5}},
	})

	require.Error(t, err)
	assert.Equal(t, 5, products.byID[product.ID].Stock)
	assert.Equal(t, models.ProductAvailable, products.byID[product.ID].Status)
}

func TestPlaceOrderLostRaceAfterDepletionKeepsStatus(t *testing.T) {
	svc, products, orders, _, user, first := fixture()

	second := models.Product{
		ID: primitive.NewObjectID(), Name: "Tiramisu", Price: 6, Stock: 4,
		Status: models.ProductAvailable,
	}
	products.byID[second.ID] = &second
	products.decrementErr[second.ID] = mongo.ErrNoDocuments

	// The first item takes the product's whole stock; the second item then
	// loses its decrement and rolls everything back.
	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User: user.ID.Hex(),
		Items: []OrderItemInput{
			{Product: first.ID.Hex(), Quantity: 5},
			{Product: second.ID.Hex(), Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Empty(t, orders.created)
	assert.Equal(t, 5, products.byID[first.ID].Stock)
	assert.Equal(t, models.ProductAvailable, products.byID[first.ID].Status)
}

func TestPlaceOrderDepletionMarksOutOfStock(t *testing.T) {
	svc, products, _, _, user, product := fixture()

	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, products.byID[product.ID].Stock)
	assert.Equal(t, models.ProductOutOfStock, products.byID[product.ID].Status)
}

func TestPlaceOrderFiresCreatedEvent(t *testing.T) {
	event.Flush()
	defer event.Flush()

	got := make(chan models.PopulatedOrder, 1)
	event.Listen(event.OrderCreated, func(payload any) {
		if po, ok := payload.(models.PopulatedOrder); ok {
			got <- po
		}
	})

	svc, _, _, _, user, product := fixture()
	_, err := svc.Place(context.Background(), PlaceOrderInput{
		User:  user.ID.Hex(),
		Items: []OrderItemInput{{Product: product.ID.Hex(), Quantity: 1}},
	})
	require.NoError(t, err)

	select {
	case po := <-got:
		assert.Equal(t, models.OrderPending, po.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("order.created event never fired")
	}
}

// ─── Status updates ──────────────────────────────────────────────────────────

func TestUpdateStatus(t *testing.T) {
	svc, _, orders, _, user, _ := fixture()

	id := primitive.NewObjectID()
	orders.statusRows[id] = &models.Order{ID: id, User: user.ID, Status: models.OrderPending}

	updated, err := svc.UpdateStatus(context.Background(), id.Hex(), models.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, updated.Status)
	assert.Equal(t, "Asha", updated.User.Name)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _, _ := fixture()

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "shipped")
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(err))
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _, _, _, _, _ := fixture()

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), models.OrderDelivered)
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(err))
}
