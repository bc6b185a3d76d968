package repository

import "gorm.io/gorm"

// NormalizePagination 规范化分页参数
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// applyPagination 应用分页查询
func applyPagination(query *gorm.DB, page, limit int) *gorm.DB {
	page, limit = NormalizePagination(page, limit)
	offset := (page - 1) * limit
	return query.Offset(offset).Limit(limit)
}
