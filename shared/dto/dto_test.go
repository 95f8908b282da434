package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	modified := created.Add(26 * time.Hour)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  created,
		ModifiedAt: modified,
		CreatedBy:  "frontdesk",
		ModifiedBy: "manager",
	})

	assert.Equal(t, timezone.Format(created, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modified, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "frontdesk", metadata.CreatedBy)
	assert.Equal(t, "manager", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		paginate bool
		expected dto.QueryParams
	}{
		{
			name:     "everything set",
			query:    "page=3&limit=25&sort_by=number&sort_dir=asc",
			paginate: true,
			expected: dto.QueryParams{Page: 3, Limit: 25, SortBy: "number", SortDir: dto.SortDirAsc},
		},
		{
			name:     "defaults when paginating",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults without pagination",
			query:    "sort_dir=DESC",
			expected: dto.QueryParams{SortDir: dto.SortDirDesc},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			paginate: true,
			expected: dto.QueryParams{Page: 1, Limit: constant.MaxValueLimit},
		},
		{
			name:     "malformed values are ignored",
			query:    "page=-2&limit=ten&sort_dir=sideways&sort_by=%20",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/rooms?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.paginate)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		params dto.QueryParams
		want   int
	}{
		{params: dto.QueryParams{}, want: 0},
		{params: dto.QueryParams{Page: 1, Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 4, Limit: 10}, want: 30},
		{params: dto.QueryParams{Page: 4}, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.params.Offset())
	}
}
