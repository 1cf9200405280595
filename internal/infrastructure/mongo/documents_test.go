package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

func TestUserDoc_IdaYVuelta(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := &entity.User{
		ID: "u1", CompanyID: "c1", Email: "a@x.com", Mobile: "5551234567",
		PasswordHash: "hash", Name: "A", Role: entity.RoleSales, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	raw, err := bson.Marshal(newUserDoc(u))
	require.NoError(t, err)

	var doc userDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, u, doc.toEntity())

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "u1", m["_id"], "el ID se guarda como string en _id")
}

func TestOrderDoc_TotalDecimal128(t *testing.T) {
	o := &entity.Order{ID: "o1", Total: decimal.RequireFromString("1234.56"), Status: entity.OrderPending}
	doc, err := newOrderDoc(o)
	require.NoError(t, err)
	assert.Equal(t, "1234.56", doc.Total.String())

	back, err := doc.toEntity()
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(back.Total))
	assert.Equal(t, entity.OrderPending, back.Status)
}

func TestSumValue(t *testing.T) {
	d128, err := primitive.ParseDecimal128("150.01")
	require.NoError(t, err)

	cases := []struct {
		in   any
		want string
	}{
		{d128, "150.01"},
		{float64(12.5), "12.5"},
		{int64(7), "7"},
		{int32(3), "3"},
		{nil, "0"},
	}
	for _, tc := range cases {
		got, err := sumValue(tc.in)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "%v", tc.in)
	}

	_, err = sumValue("x")
	assert.Error(t, err)
}
