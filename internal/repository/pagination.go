package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	return query.Limit(pageSize).Offset(PageOffset(page, pageSize))
}

// PageOffset 计算分页偏移量（文档库实现同样复用）。
func PageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}
