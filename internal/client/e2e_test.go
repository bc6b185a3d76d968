package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/provider"
	"github.com/cctvmart/internal/router"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAPIServer(t *testing.T) (*httptest.Server, *provider.Container) {
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
		&models.Employee{},
		&models.Supplier{},
		&models.Technician{},
	)
	if err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.SecretKey = "e2e-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 1
	cfg.TechnicianJWT.SecretKey = "e2e-tech-secret-key-0123456789abcdef"

	container, err := provider.NewContainer(cfg, db)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}

	engine := router.New(container, zap.NewNop())
	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)
	return ts, container
}

func seedAPIProduct(t *testing.T, db *gorm.DB, productID string, price float64) {
	t.Helper()
	product := &models.Product{
		ProductID:   productID,
		Name:        "Camera " + productID,
		Images:      models.StringArray{"https://cdn.example.com/" + productID + ".jpg"},
		Price:       models.NewMoneyFromFloat(price),
		Stock:       50,
		IsAvailable: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
}

func registerAndLogin(t *testing.T, ts *httptest.Server, email, password string) string {
	t.Helper()

	registerBody, _ := json.Marshal(map[string]string{
		"email":     email,
		"password":  password,
		"firstName": "Test",
		"lastName":  "User",
	})
	resp, err := ts.Client().Post(ts.URL+"/api/users", "application/json", bytes.NewReader(registerBody))
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", resp.StatusCode)
	}

	loginBody, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err = ts.Client().Post(ts.URL+"/api/users/login", "application/json", bytes.NewReader(loginBody))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("decode login response failed: %v", err)
	}
	if loginResp.Token == "" {
		t.Fatalf("login returned empty token")
	}
	return loginResp.Token
}

// 游客加购 → 登录 → 购物车迁移 → 结算下单的完整链路
func TestGuestToOrderEndToEnd(t *testing.T) {
	ts, container := setupAPIServer(t)
	seedAPIProduct(t, container.DB, "CCTV-0001", 500)
	ctx := context.Background()

	state := NewMemoryStore()
	session := NewSession(state)
	local := NewLocalBackend(state)
	remote := NewRemoteBackend(ts.URL+"/api", session, ts.Client())
	store := NewCartStore(session, local, remote)

	// 游客加购，落在本地
	lines, err := store.MutateQuantity(ctx, camera("CCTV-0001", 500), 2)
	if err != nil {
		t.Fatalf("guest add to cart failed: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected guest cart: %+v", lines)
	}
	total, err := store.Total(ctx)
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	if total != 1000 {
		t.Fatalf("expected total 1000, got %.2f", total)
	}

	// 登录并迁移游客购物车
	token := registerAndLogin(t, ts, "shopper@example.com", "secret123")
	if err := session.SetToken(token); err != nil {
		t.Fatalf("set token failed: %v", err)
	}

	sync := NewSyncService(session, local, remote)
	result, err := sync.SyncGuestCartToServer(ctx)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("unexpected sync failures: %+v", result.Failed)
	}
	if got := findLine(t, result.Items, "CCTV-0001").Quantity; got != 2 {
		t.Fatalf("expected remote quantity 2, got %d", got)
	}
	localLines, _ := local.Read(ctx)
	if len(localLines) != 0 {
		t.Fatalf("local cart must be empty after sync, got %+v", localLines)
	}

	// 服务端回读为准，价格来自服务端商品数据
	remoteLines, err := store.ReadCart(ctx)
	if err != nil {
		t.Fatalf("read remote cart failed: %v", err)
	}
	if got := findLine(t, remoteLines, "CCTV-0001").Price; got != 500 {
		t.Fatalf("expected server price 500, got %.2f", got)
	}

	// 结算：快照归一化 → 构建订单 → 提交
	snapshot := NormalizeSnapshot([]RawCartLine{
		{ProductID: "CCTV-0001", Quantity: 2, Price: float64(500)},
	})
	if ComputeTotal(snapshot) != 1000 {
		t.Fatalf("expected checkout total 1000, got %.2f", ComputeTotal(snapshot))
	}
	draft, err := BuildOrderPayload(snapshot, "12 Main St", "0770000000")
	if err != nil {
		t.Fatalf("build payload failed: %v", err)
	}
	if err := remote.SubmitOrder(ctx, draft); err != nil {
		t.Fatalf("submit order failed: %v", err)
	}

	// 订单以服务端定价入库
	order, err := container.OrderService.Get("ORD00001")
	if err != nil {
		t.Fatalf("load created order failed: %v", err)
	}
	if order.Total.Float() != 1000 {
		t.Fatalf("expected order total 1000, got %s", order.Total)
	}
	if len(order.Items) != 1 || order.Items[0].Qty != 2 {
		t.Fatalf("unexpected order lines: %+v", order.Items)
	}
}

// 凭证失效时写购物车必须返回鉴权错误，而不是静默落到本地
func TestRemoteMutateWithStaleTokenPropagatesUnauthorized(t *testing.T) {
	ts, container := setupAPIServer(t)
	seedAPIProduct(t, container.DB, "CCTV-0001", 500)

	state := NewMemoryStore()
	session := NewSession(state)
	if err := session.SetToken("stale.invalid.token"); err != nil {
		t.Fatalf("set token failed: %v", err)
	}
	local := NewLocalBackend(state)
	remote := NewRemoteBackend(ts.URL+"/api", session, ts.Client())
	store := NewCartStore(session, local, remote)

	_, err := store.MutateQuantity(context.Background(), camera("CCTV-0001", 500), 1)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 status error, got %v", err)
	}
}

// 服务端购物车对同一商品的增量合并与删行语义经由 REST 接口同样成立
func TestRemoteBackendDeltaSemantics(t *testing.T) {
	ts, container := setupAPIServer(t)
	seedAPIProduct(t, container.DB, "CCTV-0002", 219.99)
	ctx := context.Background()

	state := NewMemoryStore()
	session := NewSession(state)
	token := registerAndLogin(t, ts, "delta@example.com", "secret123")
	if err := session.SetToken(token); err != nil {
		t.Fatalf("set token failed: %v", err)
	}
	remote := NewRemoteBackend(ts.URL+"/api", session, ts.Client())

	if _, err := remote.Mutate(ctx, camera("CCTV-0002", 219.99), 3); err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	lines, err := remote.Mutate(ctx, camera("CCTV-0002", 219.99), -1)
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if countLines(lines, "CCTV-0002") != 1 || findLine(t, lines, "CCTV-0002").Quantity != 2 {
		t.Fatalf("expected single line with quantity 2, got %+v", lines)
	}

	lines, err = remote.Mutate(ctx, camera("CCTV-0002", 219.99), -2)
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after full decrement, got %+v", lines)
	}

	if err := remote.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
}
