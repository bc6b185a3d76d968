package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

// fakeBackend 可编排失败的远端后端替身
type fakeBackend struct {
	inner       CartBackend
	readErr     error
	mutateErr   error
	clearErr    error
	mutateCalls int
}

func (f *fakeBackend) Read(ctx context.Context) ([]CartLine, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.inner.Read(ctx)
}

func (f *fakeBackend) Mutate(ctx context.Context, product Product, delta int) ([]CartLine, error) {
	f.mutateCalls++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return f.inner.Mutate(ctx, product, delta)
}

func (f *fakeBackend) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.inner.Clear(ctx)
}

func newTestSession(t *testing.T, loggedIn bool) *Session {
	t.Helper()
	session := NewSession(NewMemoryStore())
	if loggedIn {
		if err := session.SetToken("test-token"); err != nil {
			t.Fatalf("set token failed: %v", err)
		}
	}
	return session
}

func TestCartStoreGuestUsesLocalBackend(t *testing.T) {
	session := newTestSession(t, false)
	local := NewLocalBackend(NewMemoryStore())
	remote := &fakeBackend{readErr: errors.New("must not be called"), mutateErr: errors.New("must not be called")}
	store := NewCartStore(session, local, remote)
	ctx := context.Background()

	lines, err := store.MutateQuantity(ctx, camera("CCTV-0001", 119.99), 2)
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected local cart: %+v", lines)
	}
	if remote.mutateCalls != 0 {
		t.Fatalf("guest mutation must not touch the remote backend")
	}
}

func TestCartStoreReadFallsBackToLocalOnRemoteFailure(t *testing.T) {
	session := newTestSession(t, true)
	localStore := NewMemoryStore()
	local := NewLocalBackend(localStore)
	if _, err := local.Mutate(context.Background(), camera("CCTV-0002", 219.99), 1); err != nil {
		t.Fatalf("seed local cart failed: %v", err)
	}

	remote := &fakeBackend{readErr: errors.New("connection refused")}
	store := NewCartStore(session, local, remote)

	lines, err := store.ReadCart(context.Background())
	if err != nil {
		t.Fatalf("read must degrade to local data, got error: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != "CCTV-0002" {
		t.Fatalf("expected local fallback cart, got %+v", lines)
	}
}

func TestCartStoreMutatePropagatesAuthError(t *testing.T) {
	session := newTestSession(t, true)
	local := NewLocalBackend(NewMemoryStore())
	remote := &fakeBackend{mutateErr: &StatusError{Code: http.StatusUnauthorized, Message: "token expired"}}
	store := NewCartStore(session, local, remote)

	_, err := store.MutateQuantity(context.Background(), camera("CCTV-0001", 119.99), 1)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// 鉴权失败不允许悄悄落到本地
	lines, readErr := local.Read(context.Background())
	if readErr != nil {
		t.Fatalf("read local failed: %v", readErr)
	}
	if len(lines) != 0 {
		t.Fatalf("auth failure must not write the local cart, got %+v", lines)
	}
}

func TestCartStoreMutateFallsBackOnTransientFailure(t *testing.T) {
	session := newTestSession(t, true)
	local := NewLocalBackend(NewMemoryStore())
	remote := &fakeBackend{mutateErr: errors.New("connection reset")}
	store := NewCartStore(session, local, remote)

	lines, err := store.MutateQuantity(context.Background(), camera("CCTV-0001", 119.99), 2)
	if err != nil {
		t.Fatalf("transient failure must fall back to local, got error: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected local fallback write, got %+v", lines)
	}
}

func TestCartStoreModeEvaluatedPerCall(t *testing.T) {
	session := newTestSession(t, false)
	local := NewLocalBackend(NewMemoryStore())
	remoteState := NewLocalBackend(NewMemoryStore())
	remote := &fakeBackend{inner: remoteState}
	store := NewCartStore(session, local, remote)
	ctx := context.Background()

	if _, err := store.MutateQuantity(ctx, camera("CCTV-0001", 119.99), 1); err != nil {
		t.Fatalf("guest mutate failed: %v", err)
	}
	if remote.mutateCalls != 0 {
		t.Fatalf("expected guest write to stay local")
	}

	// 两次调用之间发生登录，第二次写必须打到远端
	if err := session.SetToken("fresh-token"); err != nil {
		t.Fatalf("set token failed: %v", err)
	}
	if _, err := store.MutateQuantity(ctx, camera("CCTV-0001", 119.99), 1); err != nil {
		t.Fatalf("authed mutate failed: %v", err)
	}
	if remote.mutateCalls != 1 {
		t.Fatalf("expected authed write to hit the remote backend, calls=%d", remote.mutateCalls)
	}
}

func TestCartStoreTotal(t *testing.T) {
	session := newTestSession(t, false)
	local := NewLocalBackend(NewMemoryStore())
	store := NewCartStore(session, local, &fakeBackend{})
	ctx := context.Background()

	if _, err := store.MutateQuantity(ctx, camera("CCTV-0001", 119.99), 2); err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if _, err := store.MutateQuantity(ctx, camera("CCTV-0002", 219.99), 1); err != nil {
		t.Fatalf("mutate failed: %v", err)
	}

	total, err := store.Total(ctx)
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	want := 119.99*2 + 219.99
	if total != want {
		t.Fatalf("expected total %.2f, got %.2f", want, total)
	}
}
