package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	"hotel/internal/domains/roomtype/model"
	"hotel/internal/domains/roomtype/model/dto"
	"hotel/internal/domains/roomtype/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func setup(t *testing.T) (service.RoomType, *roomTypeMocks.MockRoomType, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := roomTypeMocks.NewMockRoomType(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(repo, cfg, cache, mocks.NewOtel()), repo, cache
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestRoomTypeService_Create(t *testing.T) {
	svc, repo, cache := setup(t)

	req := dto.CreateRoomTypeRequest{Name: "Deluxe", BasePrice: 200, Capacity: 2}

	tests := []struct {
		name      string
		setupMock func()
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "created",
			setupMock: func() {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.RoomType) error {
					assert.NotEmpty(t, m.ID)
					assert.Equal(t, "admin-1", m.CreatedBy)
					assert.InDelta(t, 200.0, m.BasePrice, 0.001)

					return nil
				})
				cache.EXPECT().Clear(gomock.Any(), "roomtype:gets*").Return(nil)
			},
		},
		{
			name: "duplicate name",
			setupMock: func() {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "storage error",
			setupMock: func() {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantErr:  true,
			wantKind: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(userCtx(), req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Deluxe", res.Name)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestRoomTypeService_Get(t *testing.T) {
	svc, repo, cache := setup(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantName  string
	}{
		{
			name: "cache hit",
			setupMock: func() {
				cache.EXPECT().Get(gomock.Any(), "roomtype:get:rt-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, ok := value.(*dto.RoomTypeResponse)
						require.True(t, ok)
						res.ID, res.Name = "rt-1", "Cached Suite"

						return nil
					})
			},
			wantName: "Cached Suite",
		},
		{
			name: "cache miss loads and saves",
			setupMock: func() {
				cache.EXPECT().Get(gomock.Any(), "roomtype:get:rt-1", gomock.Any()).Return(errors.New("redis: nil"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{ID: "rt-1", Name: "Suite"}, nil)
				cache.EXPECT().Save(gomock.Any(), "roomtype:get:rt-1", gomock.Any(), 60).Return(nil)
			},
			wantName: "Suite",
		},
		{
			name: "not found is not cached",
			setupMock: func() {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "rt-1")
			if tt.wantErr {
				assert.True(t, failure.Is(err, failure.KindNotFound))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, res.Name)
		})
	}
}

func TestRoomTypeService_GetAll(t *testing.T) {
	svc, repo, cache := setup(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
	repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.RoomType{{ID: "a"}, {ID: "b"}}, nil)
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(errors.New("redis down"))

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.RoomTypes, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestRoomTypeService_Update(t *testing.T) {
	svc, repo, cache := setup(t)

	price := 250.0

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "updates price and invalidates",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, &price, fields[model.FieldBasePrice])
					assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

					return nil
				})
				cache.EXPECT().Delete(gomock.Any(), "roomtype:get:rt-1").Return(nil)
				cache.EXPECT().Clear(gomock.Any(), "roomtype:gets*").Return(nil)
			},
		},
		{
			name: "unknown type",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(userCtx(), dto.UpdateRoomTypeRequest{BasePrice: &price}, "rt-1")
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestRoomTypeService_Delete(t *testing.T) {
	svc, repo, cache := setup(t)

	tests := []struct {
		name      string
		setupMock func()
		wantKind  failure.Kind
	}{
		{
			name: "deleted",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "still referenced by rooms",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantKind: failure.KindConflict,
		},
		{
			name: "unknown type",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "rt-1")
			if tt.wantKind == "" {
				assert.NoError(t, err)

				return
			}

			assert.True(t, failure.Is(err, tt.wantKind))
		})
	}
}
