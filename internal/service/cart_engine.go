package service

import (
	"strings"

	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/models"

	"github.com/shopspring/decimal"
)

// 购物车纯函数：输入旧的行列表，返回新的行列表，不修改入参

// CartLineID 由商品与颜色组成行标识
func CartLineID(productID, color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return productID
	}
	return productID + "#" + color
}

// AddItem 加购：同一商品同一颜色合并数量，否则追加新行（此处不做库存校验）
func AddItem(items []models.CartLine, product *models.Product, color string) []models.CartLine {
	next := cloneCartLines(items)
	if product == nil {
		return next
	}
	color = strings.TrimSpace(color)
	lineID := CartLineID(product.ID, color)
	for i := range next {
		if next[i].LineID == lineID {
			next[i].Quantity++
			next[i].StockCeiling = stockCeilingOf(product)
			return next
		}
	}
	return append(next, models.CartLine{
		LineID:       lineID,
		ProductID:    product.ID,
		Name:         product.Name,
		Price:        product.Price,
		Image:        product.PrimaryImage(),
		Quantity:     1,
		Color:        color,
		StockCeiling: stockCeilingOf(product),
	})
}

// SetQuantity 修改数量，超过上限时截断；数量小于 1 时返回错误且不做任何修改
func SetQuantity(items []models.CartLine, lineID string, quantity, defaultCeiling int) ([]models.CartLine, error) {
	if quantity < 1 {
		return items, ErrCartQuantityInvalid
	}
	index := findCartLine(items, lineID)
	if index < 0 {
		return items, ErrCartLineNotFound
	}
	next := cloneCartLines(items)
	ceiling := next[index].StockCeiling
	if ceiling <= 0 {
		ceiling = defaultCeiling
	}
	if ceiling <= 0 {
		ceiling = constants.DefaultStockCeiling
	}
	if quantity > ceiling {
		quantity = ceiling
	}
	next[index].Quantity = quantity
	return next, nil
}

// RemoveItem 删除行，行不存在时原样返回
func RemoveItem(items []models.CartLine, lineID string) []models.CartLine {
	next := make([]models.CartLine, 0, len(items))
	for _, line := range items {
		if line.LineID != lineID {
			next = append(next, line)
		}
	}
	return next
}

// RemoveLines 批量删除行
func RemoveLines(items []models.CartLine, lineIDs []string) []models.CartLine {
	if len(lineIDs) == 0 {
		return cloneCartLines(items)
	}
	drop := make(map[string]struct{}, len(lineIDs))
	for _, id := range lineIDs {
		drop[id] = struct{}{}
	}
	next := make([]models.CartLine, 0, len(items))
	for _, line := range items {
		if _, ok := drop[line.LineID]; !ok {
			next = append(next, line)
		}
	}
	return next
}

// SelectLines 按行标识挑选结算行，保持购物车原有顺序；lineIDs 为空时返回全部。
// 任一标识不在购物车中时返回 ErrCartLineNotFound。
func SelectLines(items []models.CartLine, lineIDs []string) ([]models.CartLine, error) {
	if len(lineIDs) == 0 {
		return cloneCartLines(items), nil
	}
	present := make(map[string]struct{}, len(items))
	for _, line := range items {
		present[line.LineID] = struct{}{}
	}
	keep := make(map[string]struct{}, len(lineIDs))
	for _, id := range lineIDs {
		if _, ok := present[id]; !ok {
			return nil, ErrCartLineNotFound
		}
		keep[id] = struct{}{}
	}
	selected := make([]models.CartLine, 0, len(keep))
	for _, line := range items {
		if _, ok := keep[line.LineID]; ok {
			selected = append(selected, line)
		}
	}
	return selected, nil
}

// CountItems 商品件数合计
func CountItems(items []models.CartLine) int {
	count := 0
	for _, line := range items {
		count += line.Quantity
	}
	return count
}

// TotalItems 金额合计（单价快照 × 数量）
func TotalItems(items []models.CartLine) models.Money {
	total := decimal.Zero
	for _, line := range items {
		total = total.Add(line.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return models.NewMoneyFromDecimal(total)
}

func findCartLine(items []models.CartLine, lineID string) int {
	for i := range items {
		if items[i].LineID == lineID {
			return i
		}
	}
	return -1
}

func stockCeilingOf(product *models.Product) int {
	if product == nil || product.Stock <= 0 {
		return 0
	}
	return product.Stock
}

func cloneCartLines(items []models.CartLine) []models.CartLine {
	next := make([]models.CartLine, len(items))
	copy(next, items)
	return next
}
