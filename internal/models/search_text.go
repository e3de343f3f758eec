package models

import (
	"strings"

	"gorm.io/gorm"
)

// searchTextSep 字段分隔符，避免关键字跨字段命中
const searchTextSep = "\x1f"

const searchBackfillBatch = 200

// FoldSearchText 生成检索列：按 Unicode 规则转小写后拼接。
// SQLite 的 LOWER/LIKE 只折叠 ASCII，大小写归一必须在写入时完成。
func FoldSearchText(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			parts = append(parts, strings.ToLower(trimmed))
		}
	}
	return strings.Join(parts, searchTextSep)
}

// FoldSearchQuery 检索关键字与检索列使用同一折叠规则
func FoldSearchQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// backfillSearchText 为检索列为空的历史行补值
func backfillSearchText(db *gorm.DB) error {
	var orders []Order
	err := db.Where("search_text IS NULL OR search_text = ?", "").
		FindInBatches(&orders, searchBackfillBatch, func(_ *gorm.DB, _ int) error {
			for _, order := range orders {
				text := FoldSearchText(order.TrackingID, order.Phone, order.Name, order.Email)
				if err := updateSearchText(db, &Order{}, order.ID, text); err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return err
	}

	var products []Product
	return db.Where("search_text IS NULL OR search_text = ?", "").
		FindInBatches(&products, searchBackfillBatch, func(_ *gorm.DB, _ int) error {
			for _, product := range products {
				text := FoldSearchText(product.Name, product.Description)
				if err := updateSearchText(db, &Product{}, product.ID, text); err != nil {
					return err
				}
			}
			return nil
		}).Error
}

func updateSearchText(db *gorm.DB, model interface{}, id, text string) error {
	if text == "" {
		return nil
	}
	return db.Session(&gorm.Session{NewDB: true}).Model(model).
		Where("id = ?", id).
		UpdateColumn("search_text", text).Error
}
