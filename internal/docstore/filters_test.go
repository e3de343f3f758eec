package docstore

import (
	"testing"

	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderListFilterAdminScope(t *testing.T) {
	query := orderListFilter(repository.OrderListFilter{ExcludeDeleted: true})
	assert.Equal(t, bson.M{"$ne": true}, query["deletedByAdmin"])
	assert.NotContains(t, query, "email")
}

func TestOrderListFilterCustomerActiveOrders(t *testing.T) {
	query := orderListFilter(repository.OrderListFilter{Email: "ada@example.com", ExcludeRejected: true})
	assert.Equal(t, "ada@example.com", query["email"])
	assert.Equal(t, bson.M{"$ne": constants.OrderStatusRejected}, query["status"])
	assert.NotContains(t, query, "deletedByAdmin")
}

func TestOrderSearchFilterQuotesInput(t *testing.T) {
	query := orderSearchFilter(repository.OrderSearchFilter{Query: " TRK.1+ "})
	clauses, ok := query["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, clauses, 4)

	first := clauses[0].(bson.M)
	regex, ok := first["trackingId"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `TRK\.1\+`, regex.Pattern)
	assert.Equal(t, "i", regex.Options)
}

func TestRelatedProductsFilter(t *testing.T) {
	query := relatedProductsFilter("lamps", "p1", 1)
	assert.Equal(t, "lamps", query["category"])
	assert.Equal(t, bson.M{"$ne": "p1"}, query["_id"])
	assert.Equal(t, bson.M{"$gte": 1}, query["stock"])
}
