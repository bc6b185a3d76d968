package client

import (
	"context"
	"errors"
	"testing"
)

// flakyBackend 对指定商品的写入固定失败，其余透传
type flakyBackend struct {
	inner        CartBackend
	failProducts map[string]bool
}

func (f *flakyBackend) Read(ctx context.Context) ([]CartLine, error) {
	return f.inner.Read(ctx)
}

func (f *flakyBackend) Mutate(ctx context.Context, product Product, delta int) ([]CartLine, error) {
	if f.failProducts[product.ProductID] {
		return nil, errors.New("server rejected line")
	}
	return f.inner.Mutate(ctx, product, delta)
}

func (f *flakyBackend) Clear(ctx context.Context) error {
	return f.inner.Clear(ctx)
}

func seedLocalCart(t *testing.T, local CartBackend, quantities map[string]int) {
	t.Helper()
	for id, qty := range quantities {
		if _, err := local.Mutate(context.Background(), camera(id, 100), qty); err != nil {
			t.Fatalf("seed local line %s failed: %v", id, err)
		}
	}
}

func TestSyncSkipsWhenNotAuthenticated(t *testing.T) {
	session := newTestSession(t, false)
	local := NewLocalBackend(NewMemoryStore())
	seedLocalCart(t, local, map[string]int{"CCTV-0001": 2})
	remoteState := NewLocalBackend(NewMemoryStore())

	sync := NewSyncService(session, local, remoteState)
	result, err := sync.SyncGuestCartToServer(context.Background())
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ProductID != "CCTV-0001" {
		t.Fatalf("expected untouched local cart, got %+v", result.Items)
	}
	if len(result.Migrated) != 0 || len(result.Failed) != 0 {
		t.Fatalf("expected no migration attempt, got %+v", result)
	}

	lines, _ := local.Read(context.Background())
	if len(lines) != 1 {
		t.Fatalf("local cart must survive a pre-login sync call, got %+v", lines)
	}
}

func TestSyncEmptyLocalShortCircuits(t *testing.T) {
	session := newTestSession(t, true)
	local := NewLocalBackend(NewMemoryStore())
	remoteState := NewLocalBackend(NewMemoryStore())
	seedLocalCart(t, remoteState, map[string]int{"CCTV-0003": 1})

	sync := NewSyncService(session, local, remoteState)
	result, err := sync.SyncGuestCartToServer(context.Background())
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ProductID != "CCTV-0003" {
		t.Fatalf("expected existing remote cart back, got %+v", result.Items)
	}
	if len(result.Migrated) != 0 {
		t.Fatalf("empty local cart must not migrate anything")
	}
}

func TestSyncAdditiveMerge(t *testing.T) {
	session := newTestSession(t, true)
	local := NewLocalBackend(NewMemoryStore())
	seedLocalCart(t, local, map[string]int{"CCTV-0001": 2, "CCTV-0002": 1})
	remoteState := NewLocalBackend(NewMemoryStore())
	seedLocalCart(t, remoteState, map[string]int{"CCTV-0001": 1})

	sync := NewSyncService(session, local, remoteState)
	result, err := sync.SyncGuestCartToServer(context.Background())
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if got := findLine(t, result.Items, "CCTV-0001").Quantity; got != 3 {
		t.Fatalf("expected additive merge 2+1=3, got %d", got)
	}
	if got := findLine(t, result.Items, "CCTV-0002").Quantity; got != 1 {
		t.Fatalf("expected migrated quantity 1, got %d", got)
	}
	if len(result.Migrated) != 2 || len(result.Failed) != 0 {
		t.Fatalf("unexpected migration result: %+v", result)
	}

	localLines, _ := local.Read(context.Background())
	if len(localLines) != 0 {
		t.Fatalf("local cart must be empty after sync, got %+v", localLines)
	}
}

func TestSyncPartialFailureStillClearsLocal(t *testing.T) {
	session := newTestSession(t, true)
	local := NewLocalBackend(NewMemoryStore())
	seedLocalCart(t, local, map[string]int{"CCTV-0001": 2, "CCTV-0002": 1})
	remoteState := NewLocalBackend(NewMemoryStore())
	seedLocalCart(t, remoteState, map[string]int{"CCTV-0001": 1})
	remote := &flakyBackend{inner: remoteState, failProducts: map[string]bool{"CCTV-0002": true}}

	sync := NewSyncService(session, local, remote)
	result, err := sync.SyncGuestCartToServer(context.Background())
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if got := findLine(t, result.Items, "CCTV-0001").Quantity; got != 3 {
		t.Fatalf("surviving line must still merge, got quantity %d", got)
	}
	if countLines(result.Items, "CCTV-0002") != 0 {
		t.Fatalf("failed line must not appear in the remote cart")
	}
	if len(result.Migrated) != 1 || result.Migrated[0] != "CCTV-0001" {
		t.Fatalf("unexpected migrated set: %+v", result.Migrated)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "CCTV-0002" {
		t.Fatalf("unexpected failed set: %+v", result.Failed)
	}

	// 单行失败也不豁免本地清空，失败行随之丢失是接受的行为
	localLines, _ := local.Read(context.Background())
	if len(localLines) != 0 {
		t.Fatalf("local cart must be cleared even on partial failure, got %+v", localLines)
	}
}

// readFlakyBackend 在指定次数的读取之后固定失败，写入透传
type readFlakyBackend struct {
	inner     CartBackend
	readsLeft int
}

func (f *readFlakyBackend) Read(ctx context.Context) ([]CartLine, error) {
	if f.readsLeft <= 0 {
		return nil, errors.New("read unavailable")
	}
	f.readsLeft--
	return f.inner.Read(ctx)
}

func (f *readFlakyBackend) Mutate(ctx context.Context, product Product, delta int) ([]CartLine, error) {
	return f.inner.Mutate(ctx, product, delta)
}

func (f *readFlakyBackend) Clear(ctx context.Context) error {
	return f.inner.Clear(ctx)
}

func TestSyncFinalReadFailureDegradesToLastSnapshot(t *testing.T) {
	session := newTestSession(t, true)
	local := NewLocalBackend(NewMemoryStore())
	seedLocalCart(t, local, map[string]int{"CCTV-0001": 2})
	remoteState := NewLocalBackend(NewMemoryStore())
	seedLocalCart(t, remoteState, map[string]int{"CCTV-0001": 1})
	remote := &readFlakyBackend{inner: remoteState, readsLeft: 0}

	sync := NewSyncService(session, local, remote)
	result, err := sync.SyncGuestCartToServer(context.Background())
	if err != nil {
		t.Fatalf("sync must degrade rather than fail on the final read: %v", err)
	}

	// 收尾读取失败时返回最后一次合并调用回传的快照
	if got := findLine(t, result.Items, "CCTV-0001").Quantity; got != 3 {
		t.Fatalf("expected last mutation snapshot 2+1=3, got %d", got)
	}
	if len(result.Migrated) != 1 || len(result.Failed) != 0 {
		t.Fatalf("unexpected migration result: %+v", result)
	}

	localLines, _ := local.Read(context.Background())
	if len(localLines) != 0 {
		t.Fatalf("local cart must still be cleared, got %+v", localLines)
	}
}
