package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "true", want: &yes},
		{input: "1", want: &yes},
		{input: "FALSE", want: &no},
		{input: "f", want: &no},
		{input: "active", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	floor, err := shared.ConvertStringToInt(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, floor)

	_, err = shared.ConvertStringToInt("ground")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		want         int
	}{
		{name: "empty result still has a page", total: 0, limit: 10, want: 1},
		{name: "no limit", total: 42, limit: 0, want: 1},
		{name: "exact fit", total: 40, limit: 10, want: 4},
		{name: "partial last page", total: 41, limit: 10, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type roomUpdate struct {
		Number  string   `db:"number"`
		Floor   int      `db:"floor"`
		TypeID  string   `db:"type_id"`
		Price   *float64 `db:"base_price"`
		Comment string
	}

	zero := 0.0

	fields := shared.TransformFields(roomUpdate{Number: "305", Price: &zero, Comment: "ignored"}, "manager")

	assert.Equal(t, "305", fields["number"])
	assert.Equal(t, &zero, fields["base_price"])
	assert.NotContains(t, fields, "floor")
	assert.NotContains(t, fields, "type_id")
	assert.NotContains(t, fields, "Comment")
	assert.Equal(t, "manager", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
	assert.Len(t, fields, 4)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("b-1", "id", "bookings")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq, Table: "bookings"}, group.Filters[0])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room_types:detail:42", shared.BuildCacheKey("room_types", "detail", "", "42"))
	assert.Empty(t, shared.BuildCacheKey())
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	deluxe := dto.FilterGroup{Filters: []any{dto.Filter{Field: "name", Value: "deluxe", Operator: dto.FilterOperatorLike}}}
	suite := dto.FilterGroup{Filters: []any{dto.Filter{Field: "name", Value: "suite", Operator: dto.FilterOperatorLike}}}

	first := shared.BuildCacheKeyWithQuery("room_types:list", params, deluxe)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("room_types:list", params, deluxe))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room_types:list", params, suite))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room_types:list", dto.QueryParams{Page: 2, Limit: 10}, deluxe))
	assert.Regexp(t, `^room_types:list:[0-9a-f]{16}$`, first)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "services:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "services:")

	redisCache.EXPECT().Clear(gomock.Any(), "services:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "services:")
}
