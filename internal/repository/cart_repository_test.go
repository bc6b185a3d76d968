package repository

import (
	"fmt"
	"testing"

	"github.com/cctvmart/internal/models"

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
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func TestCartRepositorySaveAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)

	item := &models.CartItem{
		UserID:    1,
		ProductID: "CCTV-0001",
		Name:      "Dome Camera",
		Price:     models.NewMoneyFromFloat(199.99),
		Quantity:  2,
	}
	if err := repo.Save(item); err != nil {
		t.Fatalf("save cart item failed: %v", err)
	}

	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}

	// 其他用户不可见
	other, err := repo.ListByUser(2)
	if err != nil {
		t.Fatalf("list other user cart failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty cart for other user, got %d items", len(other))
	}
}

func TestCartRepositoryGetByUserAndProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)

	if err := repo.Save(&models.CartItem{UserID: 1, ProductID: "CCTV-0002", Quantity: 1}); err != nil {
		t.Fatalf("save cart item failed: %v", err)
	}

	found, err := repo.GetByUserAndProduct(1, "CCTV-0002")
	if err != nil {
		t.Fatalf("get cart item failed: %v", err)
	}
	if found == nil {
		t.Fatalf("expected cart item, got nil")
	}

	missing, err := repo.GetByUserAndProduct(1, "CCTV-9999")
	if err != nil {
		t.Fatalf("get missing item failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing item, got %+v", missing)
	}
}

func TestCartRepositoryDeleteAndClear(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)

	for i := 1; i <= 3; i++ {
		item := &models.CartItem{
			UserID:    1,
			ProductID: fmt.Sprintf("CCTV-000%d", i),
			Quantity:  i,
		}
		if err := repo.Save(item); err != nil {
			t.Fatalf("save cart item failed: %v", err)
		}
	}

	if err := repo.DeleteByUserAndProduct(1, "CCTV-0002"); err != nil {
		t.Fatalf("delete cart item failed: %v", err)
	}
	items, _ := repo.ListByUser(1)
	if len(items) != 2 {
		t.Fatalf("expected 2 items after delete, got %d", len(items))
	}

	if err := repo.ClearByUser(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	items, _ = repo.ListByUser(1)
	if len(items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(items))
	}
}
