package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/livemart/livemart-backend/internal/payments"
	"github.com/livemart/livemart-backend/pkg/db/models"
	"github.com/livemart/livemart-backend/pkg/enums"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
	"github.com/livemart/livemart-backend/pkg/pagination"
)

type stubNotifier struct {
	placed []uuid.UUID
}

func (s *stubNotifier) OrderPlaced(ctx context.Context, userID, orderID uuid.UUID, total decimal.Decimal) error {
	s.placed = append(s.placed, orderID)
	return nil
}

type orderTestSetup struct {
	service   Service
	db        *gorm.DB
	processor *payments.MockProcessor
	notifier  *stubNotifier
}

func newOrderTestSetup(t *testing.T) *orderTestSetup {
	t.Helper()
	db := openTestDB(t)
	processor := payments.NewMockProcessor(nil)
	notifier := &stubNotifier{}
	svc, err := NewService(ServiceParams{
		TxRunner:  gormTxRunner{db: db},
		Repo:      NewRepository(db),
		Processor: processor,
		Notifier:  notifier,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &orderTestSetup{service: svc, db: db, processor: processor, notifier: notifier}
}

func mustCreateProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		CategoryID: uuid.New(),
		Price:      decimal.NewFromFloat(price),
		Stock:      stock,
		Unit:       "piece",
		Available:  true,
		SellerID:   uuid.New(),
		SellerName: "Green Grocer",
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateCartItem(t *testing.T, db *gorm.DB, userID, productID uuid.UUID) {
	t.Helper()
	if err := db.Create(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}).Error; err != nil {
		t.Fatalf("create cart item: %v", err)
	}
}

func TestCreateOrderSnapshotsItemsAndClearsCart(t *testing.T) {
	setup := newOrderTestSetup(t)
	ctx := context.Background()
	userID := uuid.New()
	rice := mustCreateProduct(t, setup.db, "Rice", 4.50, 20)
	milk := mustCreateProduct(t, setup.db, "Milk", 2.00, 10)
	mustCreateCartItem(t, setup.db, userID, rice.ID)

	order, err := setup.service.Create(ctx, CreateOrderInput{
		UserID: userID,
		Items: []OrderItemInput{
			{ProductID: rice.ID, Quantity: 2},
			{ProductID: milk.ID, Quantity: 3},
		},
		DeliveryAddress: "12 Market Lane",
		PaymentMethod:   enums.PaymentMethodOnline,
		TotalAmount:     decimal.NewFromFloat(15.00),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.OrderStatus != enums.OrderStatusPlaced {
		t.Fatalf("expected placed status, got %q", order.OrderStatus)
	}
	if order.PaymentStatus != enums.PaymentStatusCompleted {
		t.Fatalf("expected completed payment, got %q", order.PaymentStatus)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if order.Items[0].ProductName != "Rice" || order.Items[1].ProductName != "Milk" {
		t.Fatalf("items out of requested sequence: %+v", order.Items)
	}
	if !order.Items[0].Total.Equal(decimal.NewFromFloat(9.00)) {
		t.Fatalf("line total not price*quantity: %s", order.Items[0].Total)
	}

	var reloadedRice models.Product
	if err := setup.db.First(&reloadedRice, "id = ?", rice.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloadedRice.Stock != 18 {
		t.Fatalf("stock not decremented, got %d", reloadedRice.Stock)
	}

	var cartCount int64
	if err := setup.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("cart not cleared")
	}

	if len(setup.notifier.placed) != 1 || setup.notifier.placed[0] != order.ID {
		t.Fatalf("confirmation not dispatched: %v", setup.notifier.placed)
	}
}

func TestCreateOrderPaymentFailurePersistsNothing(t *testing.T) {
	setup := newOrderTestSetup(t)
	ctx := context.Background()
	userID := uuid.New()
	rice := mustCreateProduct(t, setup.db, "Rice", 4.50, 20)
	mustCreateCartItem(t, setup.db, userID, rice.ID)
	setup.processor.Decline = func(payments.ChargeInput) bool { return true }

	_, err := setup.service.Create(ctx, CreateOrderInput{
		UserID:          userID,
		Items:           []OrderItemInput{{ProductID: rice.ID, Quantity: 2}},
		DeliveryAddress: "12 Market Lane",
		PaymentMethod:   enums.PaymentMethodOnline,
		TotalAmount:     decimal.NewFromFloat(9.00),
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodePaymentFailed {
		t.Fatalf("expected payment failure, got %v", err)
	}

	var orderCount, cartCount int64
	setup.db.Model(&models.Order{}).Count(&orderCount)
	setup.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&cartCount)
	if orderCount != 0 {
		t.Fatalf("no order may be persisted on payment failure")
	}
	if cartCount != 1 {
		t.Fatalf("cart must survive payment failure")
	}

	var reloaded models.Product
	setup.db.First(&reloaded, "id = ?", rice.ID)
	if reloaded.Stock != 20 {
		t.Fatalf("stock must be untouched, got %d", reloaded.Stock)
	}
}

func TestCreateOrderMissingProductRollsBack(t *testing.T) {
	setup := newOrderTestSetup(t)
	ctx := context.Background()
	userID := uuid.New()
	rice := mustCreateProduct(t, setup.db, "Rice", 4.50, 20)

	_, err := setup.service.Create(ctx, CreateOrderInput{
		UserID: userID,
		Items: []OrderItemInput{
			{ProductID: rice.ID, Quantity: 2},
			{ProductID: uuid.New(), Quantity: 1},
		},
		DeliveryAddress: "12 Market Lane",
		PaymentMethod:   enums.PaymentMethodOnline,
		TotalAmount:     decimal.NewFromFloat(9.00),
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	var reloaded models.Product
	setup.db.First(&reloaded, "id = ?", rice.ID)
	if reloaded.Stock != 20 {
		t.Fatalf("partial decrement must roll back, got stock %d", reloaded.Stock)
	}

	var orderCount int64
	setup.db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("order must not persist when an item is unresolved")
	}
}

func TestListUserOrdersNewestFirstWithCursor(t *testing.T) {
	setup := newOrderTestSetup(t)
	ctx := context.Background()
	userID := uuid.New()
	rice := mustCreateProduct(t, setup.db, "Rice", 4.50, 50)

	for i := 0; i < 3; i++ {
		_, err := setup.service.Create(ctx, CreateOrderInput{
			UserID:          userID,
			Items:           []OrderItemInput{{ProductID: rice.ID, Quantity: 1}},
			DeliveryAddress: "12 Market Lane",
			PaymentMethod:   enums.PaymentMethodOffline,
			TotalAmount:     decimal.NewFromFloat(4.50),
		})
		if err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
	}

	all, err := setup.service.ListUserOrders(ctx, ListOrdersInput{UserID: userID})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(all.Orders) != 3 {
		t.Fatalf("expected full history, got %d", len(all.Orders))
	}
	if all.NextCursor != "" {
		t.Fatalf("unpaginated list must not emit a cursor")
	}
	for i := 0; i < len(all.Orders)-1; i++ {
		if all.Orders[i].CreatedAt.Before(all.Orders[i+1].CreatedAt) {
			t.Fatalf("orders not newest first")
		}
	}

	firstPage, err := setup.service.ListUserOrders(ctx, ListOrdersInput{
		UserID:     userID,
		Pagination: pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(firstPage.Orders) != 2 || firstPage.NextCursor == "" {
		t.Fatalf("expected a capped page with cursor, got %d orders", len(firstPage.Orders))
	}

	secondPage, err := setup.service.ListUserOrders(ctx, ListOrdersInput{
		UserID:     userID,
		Pagination: pagination.Params{Limit: 2, Cursor: firstPage.NextCursor},
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(secondPage.Orders) != 1 {
		t.Fatalf("expected the final order, got %d", len(secondPage.Orders))
	}
}

func TestGetOrderMissing(t *testing.T) {
	setup := newOrderTestSetup(t)

	_, err := setup.service.GetOrder(context.Background(), uuid.New())
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusAcceptsAnyString(t *testing.T) {
	setup := newOrderTestSetup(t)
	ctx := context.Background()
	userID := uuid.New()
	rice := mustCreateProduct(t, setup.db, "Rice", 4.50, 20)

	order, err := setup.service.Create(ctx, CreateOrderInput{
		UserID:          userID,
		Items:           []OrderItemInput{{ProductID: rice.ID, Quantity: 1}},
		DeliveryAddress: "12 Market Lane",
		PaymentMethod:   enums.PaymentMethodOffline,
		TotalAmount:     decimal.NewFromFloat(4.50),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	updated, err := setup.service.UpdateStatus(ctx, order.ID, "out-for-delivery")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.OrderStatus != "out-for-delivery" {
		t.Fatalf("status not overwritten: %q", updated.OrderStatus)
	}
	if !updated.UpdatedAt.After(order.UpdatedAt) {
		t.Fatalf("updated_at not stamped")
	}

	_, err = setup.service.UpdateStatus(ctx, uuid.New(), enums.OrderStatusShipped)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
