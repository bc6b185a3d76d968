package client

import (
	"context"

	"github.com/cctvmart/internal/logger"
)

// SyncResult 游客购物车迁移结果
// 逐行合并的成败显式返回给调用方，而不是只写日志
type SyncResult struct {
	Items    []CartLine `json:"items"`    // 迁移后的权威购物车
	Migrated []string   `json:"migrated"` // 成功合并的商品编号
	Failed   []string   `json:"failed"`   // 合并失败的商品编号
}

// SyncService 登录后一次性地把游客购物车合并进服务端购物车
type SyncService struct {
	session *Session
	local   CartBackend
	remote  CartBackend
}

// NewSyncService 创建迁移服务
func NewSyncService(session *Session, local, remote CartBackend) *SyncService {
	return &SyncService{session: session, local: local, remote: remote}
}

// SyncGuestCartToServer 把本地购物车逐行加性合并到服务端购物车
// 单行失败不中断其余行的迁移；无论成败，尝试结束后本地购物车一律清空，
// 避免后续每次加载都重复合并。迁移失败的行随之丢失，这是已接受的边界行为。
// 合并后的收尾读取若失败，降级返回最后一次合并调用回传的快照并报告成功，
// 此时 Items 可能落后于服务端真实状态。
func (s *SyncService) SyncGuestCartToServer(ctx context.Context) (SyncResult, error) {
	result := SyncResult{Items: []CartLine{}, Migrated: []string{}, Failed: []string{}}

	if !s.session.IsAuthenticated() {
		lines, err := s.local.Read(ctx)
		if err != nil {
			return result, err
		}
		result.Items = lines
		return result, nil
	}

	localLines, err := s.local.Read(ctx)
	if err != nil {
		return result, err
	}
	if len(localLines) == 0 {
		remoteLines, err := s.remote.Read(ctx)
		if err != nil {
			return result, err
		}
		result.Items = remoteLines
		return result, nil
	}

	lastKnown := []CartLine{}
	for _, line := range localLines {
		product := Product{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Price:     line.Price,
			AltNames:  line.AltNames,
		}
		items, err := s.remote.Mutate(ctx, product, line.Quantity)
		if err != nil {
			logger.Warnw("cart_sync_line_failed", "product_id", line.ProductID, "error", err)
			result.Failed = append(result.Failed, line.ProductID)
			continue
		}
		lastKnown = items
		result.Migrated = append(result.Migrated, line.ProductID)
	}

	// 本地购物车在一次迁移尝试后即视为已消费
	if err := s.local.Clear(ctx); err != nil {
		logger.Warnw("cart_sync_local_clear_failed", "error", err)
	}

	remoteLines, err := s.remote.Read(ctx)
	if err != nil {
		logger.Warnw("cart_sync_final_read_failed", "error", err)
		result.Items = lastKnown
		return result, nil
	}
	result.Items = remoteLines
	return result, nil
}
