package service

import (
	"errors"
	"testing"

	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/queue"
	"github.com/cctvmart/internal/repository"

	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		queue.NewClient(config.QueueConfig{Enabled: false}),
	)
}

func testUser() *models.User {
	return &models.User{ID: 1, Email: "buyer@example.com", FirstName: "Test", LastName: "Buyer"}
}

func TestOrderCreateUsesServerPricing(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 100.00, true)
	seedProduct(t, db, "CCTV-0002", 50.50, true)
	svc := newOrderService(db)

	order, err := svc.Create(testUser(), CreateOrderRequest{
		Address: "221B Baker Street",
		Phone:   "0771234567",
		Items: []OrderLineRequest{
			{ProductID: "CCTV-0001", Qty: 2},
			{ProductID: "CCTV-0002", Qty: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.OrderID != "ORD00001" {
		t.Fatalf("expected first order id ORD00001, got %s", order.OrderID)
	}
	if order.Total.String() != "250.50" {
		t.Fatalf("expected total 250.50, got %s", order.Total.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(order.Items))
	}
	if order.Items[0].Price.String() != "100.00" {
		t.Fatalf("expected server price on line, got %s", order.Items[0].Price.String())
	}
}

func TestOrderCreateSequentialIDs(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 10.00, true)
	svc := newOrderService(db)

	req := CreateOrderRequest{
		Address: "somewhere",
		Phone:   "000",
		Items:   []OrderLineRequest{{ProductID: "CCTV-0001", Qty: 1}},
	}
	first, err := svc.Create(testUser(), req)
	if err != nil {
		t.Fatalf("first order failed: %v", err)
	}
	second, err := svc.Create(testUser(), req)
	if err != nil {
		t.Fatalf("second order failed: %v", err)
	}
	if first.OrderID != "ORD00001" || second.OrderID != "ORD00002" {
		t.Fatalf("expected sequential ids, got %s then %s", first.OrderID, second.OrderID)
	}
}

func TestOrderCreateRejectsBadLines(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 10.00, true)
	svc := newOrderService(db)

	if _, err := svc.Create(testUser(), CreateOrderRequest{
		Address: "x", Phone: "y",
		Items: []OrderLineRequest{{ProductID: "CCTV-0001", Qty: 0}},
	}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	if _, err := svc.Create(testUser(), CreateOrderRequest{
		Address: "x", Phone: "y",
		Items: []OrderLineRequest{{ProductID: "CCTV-9999", Qty: 1}},
	}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if _, err := svc.Create(testUser(), CreateOrderRequest{
		Address: "x", Phone: "y",
	}); !errors.Is(err, ErrOrderEmpty) {
		t.Fatalf("expected ErrOrderEmpty, got %v", err)
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 10.00, true)
	svc := newOrderService(db)

	order, err := svc.Create(testUser(), CreateOrderRequest{
		Address: "x", Phone: "y",
		Items: []OrderLineRequest{{ProductID: "CCTV-0001", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	updated, err := svc.UpdateStatus(order.OrderID, UpdateOrderRequest{Status: "Shipped"})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != "Shipped" {
		t.Fatalf("expected status Shipped, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(order.OrderID, UpdateOrderRequest{Status: "Teleported"}); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus("ORD99999", UpdateOrderRequest{Status: "Shipped"}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderListMinePaginates(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 10.00, true)
	svc := newOrderService(db)

	req := CreateOrderRequest{
		Address: "x", Phone: "y",
		Items: []OrderLineRequest{{ProductID: "CCTV-0001", Qty: 1}},
	}
	for i := 0; i < 5; i++ {
		if _, err := svc.Create(testUser(), req); err != nil {
			t.Fatalf("create order %d failed: %v", i, err)
		}
	}

	orders, total, err := svc.ListMine("buyer@example.com", 1, 2)
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(orders) != 2 {
		t.Fatalf("expected page of 2, got %d", len(orders))
	}

	_, otherTotal, err := svc.ListMine("stranger@example.com", 1, 10)
	if err != nil {
		t.Fatalf("list for other email failed: %v", err)
	}
	if otherTotal != 0 {
		t.Fatalf("expected no orders for other email, got %d", otherTotal)
	}
}
