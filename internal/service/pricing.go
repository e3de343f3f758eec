package service

import (
	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/models"

	"github.com/shopspring/decimal"
)

// ShippingPolicy 运费策略：固定运费，满额包邮
type ShippingPolicy struct {
	Fee           decimal.Decimal
	FreeThreshold decimal.Decimal
}

// NewShippingPolicy 从配置构造运费策略
func NewShippingPolicy(cfg config.OrderConfig) ShippingPolicy {
	return ShippingPolicy{
		Fee:           decimal.NewFromFloat(cfg.ShippingFee).Round(2),
		FreeThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold).Round(2),
	}
}

// FeeFor 按小计计算运费
func (p ShippingPolicy) FeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	if p.FreeThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	if p.Fee.IsNegative() {
		return decimal.Zero
	}
	return p.Fee
}

// Quote 结算金额
type Quote struct {
	Subtotal    models.Money `json:"subtotal"`
	ShippingFee models.Money `json:"shipping_fee"`
	Total       models.Money `json:"total"`
}

// QuoteFor 由小计得出运费与合计
func (p ShippingPolicy) QuoteFor(subtotal decimal.Decimal) Quote {
	fee := p.FeeFor(subtotal)
	return Quote{
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		ShippingFee: models.NewMoneyFromDecimal(fee),
		Total:       models.NewMoneyFromDecimal(subtotal.Add(fee)),
	}
}
