package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/servicecatalog/model"
	"hotel/internal/domains/servicecatalog/model/dto"
	"hotel/internal/domains/servicecatalog/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cachePrefix           = "catalog"
	cacheGetCategories    = "catalog:category:gets"
	cacheGetService       = "catalog:service:get"
	cacheGetServices      = "catalog:service:gets"
	cacheCategoryServices = "catalog:service:category"
)

type Catalog interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetCategories(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCategoriesResponse, error)
	UpdateCategory(ctx context.Context, req dto.UpdateCategoryRequest, id string) error
	DeleteCategory(ctx context.Context, id string) error

	CreateService(ctx context.Context, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	GetServices(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	GetService(ctx context.Context, id string) (dto.ServiceResponse, error)
	ListByCategory(ctx context.Context, categoryID string) (dto.CategoryServicesResponse, error)
	UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	DeleteService(ctx context.Context, id string) error
}

type serviceImpl struct {
	categories repository.Category
	services   repository.Service
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(categories repository.Category, services repository.Service, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		categories: categories,
		services:   services,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.CreateCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)
	category := req.ToModel(user)

	if err = s.categories.Insert(ctx, category); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict("service category already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create service category")

		return res, fmt.Errorf("failed to create service category: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetCategories)

	res.FromModel(category)

	return res, nil
}

func (s *serviceImpl) GetCategories(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.GetCategories")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetCategories, req, filter)

	return cache.Fetch(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (dto.GetCategoriesResponse, error) {
		var res dto.GetCategoriesResponse

		total, err := s.categories.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count service categories")

			return res, fmt.Errorf("failed to count service categories: %w", err)
		}

		models, err := s.categories.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get service categories")

			return res, fmt.Errorf("failed to get service categories: %w", err)
		}

		res.FromModels(models, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) UpdateCategory(ctx context.Context, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.UpdateCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.CategoryTableName)

	if err = s.categoryExists(ctx, filter); err != nil {
		return err
	}

	if err = s.categories.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict("service category already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update service category")

		return fmt.Errorf("failed to update service category: %w", err)
	}

	// category names are joined into every service read
	shared.InvalidateCaches(ctx, s.cache, cachePrefix)

	return nil
}

func (s *serviceImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.DeleteCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.CategoryTableName)

	if err = s.categoryExists(ctx, filter); err != nil {
		return err
	}

	if err = s.categories.Delete(ctx, filter); err != nil {
		if gRepo.IsFkViolation(err) {
			return failure.Conflict("service category still has services") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete service category")

		return fmt.Errorf("failed to delete service category: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cachePrefix)

	return nil
}

func (s *serviceImpl) CreateService(ctx context.Context, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.CreateService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)
	svc := req.ToModel(user)

	if err = s.services.Insert(ctx, svc); err != nil {
		switch {
		case gRepo.IsFkViolation(err):
			return res, failure.NotFound("service category not found") // nolint:wrapcheck
		case gRepo.IsUniqueViolation(err):
			return res, failure.Conflict("service already exists in this category") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create service")

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	s.invalidateServices(ctx, constant.Empty)

	return s.GetService(ctx, svc.ID)
}

func (s *serviceImpl) GetServices(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.GetServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetServices, req, filter)

	return cache.Fetch(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (dto.GetServicesResponse, error) {
		var res dto.GetServicesResponse

		total, err := s.services.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count services")

			return res, fmt.Errorf("failed to count services: %w", err)
		}

		models, err := s.services.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get services")

			return res, fmt.Errorf("failed to get services: %w", err)
		}

		res.FromModels(models, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) GetService(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.GetService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Fetch(ctx, s.cache, shared.BuildCacheKey(cacheGetService, id), s.cfg.Cache.TTL, func(ctx context.Context) (dto.ServiceResponse, error) {
		var res dto.ServiceResponse

		svc, err := s.services.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get service")

			return res, fmt.Errorf("failed to get service: %w", err)
		}

		if svc.ID == constant.Empty {
			return res, failure.NotFound("service not found") // nolint:wrapcheck
		}

		res.FromModel(svc)

		return res, nil
	})
}

// ListByCategory returns the category with its active services ordered by name.
func (s *serviceImpl) ListByCategory(ctx context.Context, categoryID string) (res dto.CategoryServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.ListByCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheCategoryServices, categoryID)

	return cache.Fetch(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (dto.CategoryServicesResponse, error) {
		var res dto.CategoryServicesResponse

		category, err := s.categories.Get(ctx, shared.FilterByID(categoryID, model.FieldID, model.CategoryTableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get service category")

			return res, fmt.Errorf("failed to get service category: %w", err)
		}

		if category.ID == constant.Empty {
			return res, failure.NotFound("service category not found") // nolint:wrapcheck
		}

		filter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldCategoryID, Value: categoryID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		}

		models, err := s.services.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get services by category")

			return res, fmt.Errorf("failed to get services by category: %w", err)
		}

		res.Category.FromModel(category)

		res.Services = make([]dto.ServiceResponse, len(models))
		for i, mod := range models {
			res.Services[i].FromModel(mod)
		}

		return res, nil
	})
}

func (s *serviceImpl) UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.UpdateService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.serviceExists(ctx, filter); err != nil {
		return err
	}

	if err = s.services.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		switch {
		case gRepo.IsFkViolation(err):
			return failure.NotFound("service category not found") // nolint:wrapcheck
		case gRepo.IsUniqueViolation(err):
			return failure.Conflict("service already exists in this category") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidateServices(ctx, id)

	return nil
}

// DeleteService removes a service that was never charged. Charged services should be deactivated instead.
func (s *serviceImpl) DeleteService(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog.DeleteService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.serviceExists(ctx, filter); err != nil {
		return err
	}

	if err = s.services.Delete(ctx, filter); err != nil {
		if gRepo.IsFkViolation(err) {
			return failure.Conflict("service is attached to bookings, deactivate it instead") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete service")

		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.invalidateServices(ctx, id)

	return nil
}

func (s *serviceImpl) categoryExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.categories.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check service category existence")

		return fmt.Errorf("failed to check service category existence: %w", err)
	}

	if !exist {
		return failure.NotFound("service category not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) serviceExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.services.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check service existence")

		return fmt.Errorf("failed to check service existence: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidateServices(ctx context.Context, id string) {
	if id != constant.Empty {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetServices)
	shared.InvalidateCaches(ctx, s.cache, cacheCategoryServices)
}
