package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.OtpCode{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Repair{},
		&models.Technician{},
	)
	if err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, productID string, price float64, available bool) {
	t.Helper()
	product := &models.Product{
		ProductID:   productID,
		Name:        "Camera " + productID,
		Images:      models.StringArray{"https://cdn.example.com/" + productID + ".jpg"},
		Price:       models.NewMoneyFromFloat(price),
		IsAvailable: available,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
}

func TestCartAddDeltaAccumulatesSameProduct(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 199.99, true)
	svc := newCartService(db)

	req := AddCartItemRequest{Quantity: 2}
	req.Item.ProductID = "CCTV-0001"
	if _, err := svc.AddDelta(1, req); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	req.Quantity = 3
	items, err := svc.AddDelta(1, req)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("same product should stay on one line, got %d lines", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", items[0].Quantity)
	}
}

func TestCartAddDeltaRemovesLineAtZeroOrBelow(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 199.99, true)
	svc := newCartService(db)

	req := AddCartItemRequest{Quantity: 2}
	req.Item.ProductID = "CCTV-0001"
	if _, err := svc.AddDelta(1, req); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	req.Quantity = -5
	items, err := svc.AddDelta(1, req)
	if err != nil {
		t.Fatalf("negative delta failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected line removed when quantity drops to zero or below, got %d lines", len(items))
	}
}

func TestCartAddDeltaUsesServerPrice(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 150.00, true)
	svc := newCartService(db)

	req := AddCartItemRequest{Quantity: 1}
	req.Item.ProductID = "CCTV-0001"
	req.Item.Price = 0.01 // 客户端快照价格不可信

	items, err := svc.AddDelta(1, req)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if items[0].Price.String() != "150.00" {
		t.Fatalf("expected server price 150.00, got %s", items[0].Price.String())
	}
}

func TestCartAddDeltaUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)

	req := AddCartItemRequest{Quantity: 1}
	req.Item.ProductID = "CCTV-9999"
	if _, err := svc.AddDelta(1, req); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartClear(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "CCTV-0001", 199.99, true)
	seedProduct(t, db, "CCTV-0002", 89.50, true)
	svc := newCartService(db)

	for _, pid := range []string{"CCTV-0001", "CCTV-0002"} {
		req := AddCartItemRequest{Quantity: 1}
		req.Item.ProductID = pid
		if _, err := svc.AddDelta(1, req); err != nil {
			t.Fatalf("add %s failed: %v", pid, err)
		}
	}

	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(items))
	}
}
