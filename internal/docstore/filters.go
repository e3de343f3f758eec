package docstore

import (
	"regexp"
	"strings"

	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// containsRegex 大小写不敏感的包含匹配，关键字按字面量处理
func containsRegex(keyword string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(keyword)), Options: "i"}
}

func orderListFilter(filter repository.OrderListFilter) bson.M {
	query := bson.M{}
	if filter.ExcludeDeleted {
		query["deletedByAdmin"] = bson.M{"$ne": true}
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		query["email"] = email
	}
	status := strings.TrimSpace(filter.Status)
	switch {
	case status != "":
		query["status"] = status
	case filter.ExcludeRejected:
		query["status"] = bson.M{"$ne": constants.OrderStatusRejected}
	}
	return query
}

func orderSearchFilter(filter repository.OrderSearchFilter) bson.M {
	pattern := containsRegex(filter.Query)
	query := bson.M{"$or": bson.A{
		bson.M{"trackingId": pattern},
		bson.M{"phone": pattern},
		bson.M{"name": pattern},
		bson.M{"email": pattern},
	}}
	if filter.ExcludeDeleted {
		query["deletedByAdmin"] = bson.M{"$ne": true}
	}
	return query
}

func productListFilter(filter repository.ProductListFilter) bson.M {
	query := bson.M{}
	if filter.OnlyActive {
		query["isActive"] = true
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query["category"] = category
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := containsRegex(keyword)
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	return query
}

func relatedProductsFilter(category, excludeID string, minStock int) bson.M {
	query := bson.M{
		"category": category,
		"isActive": true,
		"stock":    bson.M{"$gte": minStock},
	}
	if excludeID != "" {
		query["_id"] = bson.M{"$ne": excludeID}
	}
	return query
}
