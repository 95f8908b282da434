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
	catalogMocks "hotel/internal/domains/servicecatalog/mocks"
	"hotel/internal/domains/servicecatalog/model"
	"hotel/internal/domains/servicecatalog/model/dto"
	"hotel/internal/domains/servicecatalog/service"
	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

var errMiss = errors.New("redis: nil")

type fixture struct {
	svc        service.Catalog
	categories *catalogMocks.MockCategory
	services   *catalogMocks.MockService
	cache      *cacheMocks.MockRedisCache
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		categories: catalogMocks.NewMockCategory(ctrl),
		services:   catalogMocks.NewMockService(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 120

	f.svc = service.New(f.categories, f.services, cfg, f.cache, mocks.NewOtel())

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestCatalogService_CreateCategory(t *testing.T) {
	f := setup(t)

	f.categories.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Category) error {
		assert.Equal(t, "Spa", m.Name)
		assert.Equal(t, "admin-1", m.CreatedBy)

		return nil
	})
	f.cache.EXPECT().Clear(gomock.Any(), "catalog:category:gets*").Return(nil)

	res, err := f.svc.CreateCategory(userCtx(), dto.CreateCategoryRequest{Name: "Spa"})

	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)

	f.categories.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

	_, err = f.svc.CreateCategory(userCtx(), dto.CreateCategoryRequest{Name: "Spa"})
	assert.True(t, failure.Is(err, failure.KindConflict))
}

func TestCatalogService_CreateService(t *testing.T) {
	req := dto.CreateServiceRequest{CategoryID: "c-1", Name: "Laundry", Price: 50, Unit: "kg"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantKind  failure.Kind
	}{
		{
			name: "created active by default",
			setupMock: func(f fixture) {
				var createdID string

				f.services.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Service) error {
					assert.True(t, m.Active)
					assert.InDelta(t, 50.0, m.Price, 0.001)
					require.NotEmpty(t, m.ID)

					createdID = m.ID

					return nil
				})
				f.cache.EXPECT().Clear(gomock.Any(), "catalog:service:gets*").Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "catalog:service:category*").Return(nil)
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string, _ any) error {
					assert.Equal(t, shared.BuildCacheKey("catalog:service:get", createdID), key)

					return errMiss
				})
				f.services.EXPECT().Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Service, error) {
						assert.Equal(t, createdID, filter.Filters[0].(gDto.Filter).Value)

						return model.Service{ID: createdID, Name: "Laundry", CategoryName: "Housekeeping", Active: true}, nil
					})
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 120).DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
					assert.Equal(t, shared.BuildCacheKey("catalog:service:get", createdID), key)
					assert.Equal(t, createdID, value.(dto.ServiceResponse).ID)

					return nil
				})
			},
		},
		{
			name: "unknown category",
			setupMock: func(f fixture) {
				f.services.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantKind: failure.KindNotFound,
		},
		{
			name: "storage error",
			setupMock: func(f fixture) {
				f.services.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantKind: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(f)

			res, err := f.svc.CreateService(userCtx(), req)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "Housekeeping", res.CategoryName)
		})
	}
}

func TestCatalogService_ListByCategory(t *testing.T) {
	f := setup(t)

	f.cache.EXPECT().Get(gomock.Any(), "catalog:service:category:c-1", gomock.Any()).Return(errMiss)
	f.categories.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c-1", Name: "Food"}, nil)
	f.services.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Service, error) {
			assert.Equal(t, model.FieldName, params.SortBy)
			require.Len(t, filter.Filters, 2)

			active, ok := filter.Filters[1].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.FieldActive, active.Field)
			assert.Equal(t, true, active.Value)

			return []model.Service{{ID: "s-1", Name: "Breakfast"}, {ID: "s-2", Name: "Dinner"}}, nil
		})
	f.cache.EXPECT().Save(gomock.Any(), "catalog:service:category:c-1", gomock.Any(), 120).Return(nil)

	res, err := f.svc.ListByCategory(context.Background(), "c-1")

	require.NoError(t, err)
	assert.Equal(t, "Food", res.Category.Name)
	assert.Len(t, res.Services, 2)
}

func TestCatalogService_ListByUnknownCategory(t *testing.T) {
	f := setup(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errMiss)
	f.categories.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)

	_, err := f.svc.ListByCategory(context.Background(), "missing")

	assert.True(t, failure.Is(err, failure.KindNotFound))
}

func TestCatalogService_GetServiceCacheHit(t *testing.T) {
	f := setup(t)

	f.cache.EXPECT().Get(gomock.Any(), "catalog:service:get:s-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, ok := value.(*dto.ServiceResponse)
			require.True(t, ok)
			res.ID, res.Name = "s-1", "Airport transfer"

			return nil
		})

	res, err := f.svc.GetService(context.Background(), "s-1")

	require.NoError(t, err)
	assert.Equal(t, "Airport transfer", res.Name)
}

func TestCatalogService_UpdateCategoryClearsCatalog(t *testing.T) {
	f := setup(t)

	f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.categories.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "Wellness", fields[model.FieldName])

			return nil
		})
	f.cache.EXPECT().Clear(gomock.Any(), "catalog*").Return(errors.New("redis down"))

	assert.NoError(t, f.svc.UpdateCategory(userCtx(), dto.UpdateCategoryRequest{Name: "Wellness"}, "c-1"))
}

func TestCatalogService_UpdateServiceDeactivates(t *testing.T) {
	f := setup(t)

	inactive := false

	f.services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.services.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, &inactive, fields[model.FieldActive])
			assert.NotContains(t, fields, model.FieldName)

			return nil
		})
	f.cache.EXPECT().Delete(gomock.Any(), "catalog:service:get:s-1").Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	assert.NoError(t, f.svc.UpdateService(userCtx(), dto.UpdateServiceRequest{Active: &inactive}, "s-1"))
}

func TestCatalogService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		run       func(svc service.Catalog) error
		wantKind  failure.Kind
	}{
		{
			name: "category with services",
			setupMock: func(f fixture) {
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.categories.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			run:      func(svc service.Catalog) error { return svc.DeleteCategory(context.Background(), "c-1") },
			wantKind: failure.KindConflict,
		},
		{
			name: "unknown category",
			setupMock: func(f fixture) {
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			run:      func(svc service.Catalog) error { return svc.DeleteCategory(context.Background(), "c-1") },
			wantKind: failure.KindNotFound,
		},
		{
			name: "charged service",
			setupMock: func(f fixture) {
				f.services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.services.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			run:      func(svc service.Catalog) error { return svc.DeleteService(context.Background(), "s-1") },
			wantKind: failure.KindConflict,
		},
		{
			name: "service deleted",
			setupMock: func(f fixture) {
				f.services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.services.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
			run: func(svc service.Catalog) error { return svc.DeleteService(context.Background(), "s-1") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(f)

			err := tt.run(f.svc)
			if tt.wantKind == "" {
				assert.NoError(t, err)

				return
			}

			assert.True(t, failure.Is(err, tt.wantKind))
		})
	}
}
