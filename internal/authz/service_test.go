package authz

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("init authz service failed: %v", err)
	}
	return svc
}

func TestDefaultAdminRoleHasFullAccess(t *testing.T) {
	svc := newTestService(t)

	if err := svc.AssignDefaultAdminRole(7); err != nil {
		t.Fatalf("assign default role failed: %v", err)
	}

	ok, err := svc.EnforceAdmin(7, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !ok {
		t.Fatalf("default admin role should allow admin routes")
	}

	ok, err = svc.EnforceAdmin(8, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if ok {
		t.Fatalf("admin without role should be denied")
	}
}

func TestGrantRolePolicyScoped(t *testing.T) {
	svc := newTestService(t)

	if err := svc.GrantRolePolicy("support", "/admin/repairs/*", "*"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}
	if _, err := svc.enforcer.AddNamedGroupingPolicy("g", SubjectForAdmin(3), "role:support"); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}

	ok, _ := svc.EnforceAdmin(3, "/admin/repairs/12", "PUT")
	if !ok {
		t.Fatalf("support role should access repairs")
	}
	ok, _ = svc.EnforceAdmin(3, "/admin/products", "POST")
	if ok {
		t.Fatalf("support role should not access products")
	}
}

func TestNormalizeHelpers(t *testing.T) {
	role, err := NormalizeRole(" store manager ")
	if err != nil {
		t.Fatalf("normalize role failed: %v", err)
	}
	if role != "role:store_manager" {
		t.Fatalf("unexpected normalized role: %s", role)
	}
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("empty role should fail")
	}
	if got := NormalizeObject("admin/orders"); got != "/admin/orders" {
		t.Fatalf("unexpected normalized object: %s", got)
	}
	if got := NormalizeAction(" get "); got != "GET" {
		t.Fatalf("unexpected normalized action: %s", got)
	}
}
