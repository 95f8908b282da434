package servicecatalog

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/servicecatalog/model"
	"hotel/internal/domains/servicecatalog/model/dto"
	"hotel/internal/domains/servicecatalog/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/service-categories", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCategory)
		routerGroup.Get("/", handler.GetCategories)
		routerGroup.Get("/{id}/services", handler.ListByCategory)
		routerGroup.Patch("/{id}", handler.UpdateCategory)
		routerGroup.Delete("/{id}", handler.DeleteCategory)
	})

	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateService)
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Get("/{id}", handler.GetServiceByID)
		routerGroup.Patch("/{id}", handler.UpdateService)
		routerGroup.Delete("/{id}", handler.DeleteService)
	})
}

// CreateCategory handles the creation of a service category.
// @Summary Create a service category @Admin
// @Tags ServiceCatalog
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} dto.CategoryResponse "Category created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	req := dto.CreateCategoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.CreateCategory(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "failed to create service category")

		return
	}

	scope.AddEvent("Service category created successfully by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusCreated, res)
}

// GetCategories retrieves service categories.
// @Summary Get all service categories
// @Tags ServiceCatalog
// @Produce json
// @Param name query string false "Filter by name"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetCategoriesResponse "List of categories"
// @Failure 500 {object} response.Error
// @Router /v1/service-categories [get]
// @Security BearerAuth
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	filterGroup.AppendIfNotEmpty(gDto.Filter{
		Field:    model.FieldName,
		Operator: gDto.FilterOperatorLike,
		Value:    r.URL.Query().Get(dto.QueryName),
		Table:    model.CategoryTableName,
	})

	categories, err := handler.service.GetCategories(ctx, queryParams, filterGroup)
	if err != nil {
		response.Fail(w, scope, err, "failed to get service categories")

		return
	}

	response.WithJSON(w, http.StatusOK, categories)
}

// ListByCategory lists the active services of one category.
// @Summary List active services by category
// @Tags ServiceCatalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.CategoryServicesResponse "Category with its services"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-categories/{id}/services [get]
// @Security BearerAuth
func (handler *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListByCategory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.ListByCategory(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "failed to list services by category")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateCategory renames a service category.
// @Summary Update a service category @Admin
// @Tags ServiceCatalog
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Update Category Request"
// @Success 200 {object} response.Message "Category updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-categories/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCategory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCategoryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.UpdateCategory(ctx, req, id); err != nil {
		response.Fail(w, scope, err, "failed to update service category")

		return
	}

	response.WithMessage(w, http.StatusOK, "Category updated successfully")
}

// DeleteCategory deletes an empty service category.
// @Summary Delete a service category @Admin
// @Tags ServiceCatalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Message "Category deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-categories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCategory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteCategory(ctx, id); err != nil {
		response.Fail(w, scope, err, "failed to delete service category")

		return
	}

	response.WithMessage(w, http.StatusOK, "Category deleted successfully")
}

// CreateService handles the creation of a catalog service.
// @Summary Create a service @Admin
// @Tags ServiceCatalog
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequest true "Create Service Request"
// @Success 201 {object} dto.ServiceResponse "Service created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [post]
// @Security BearerAuth
func (handler *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	req := dto.CreateServiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.CreateService(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "failed to create service")

		return
	}

	scope.AddEvent("Service created successfully by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusCreated, res)
}

// GetServices retrieves catalog services joined with their category name.
// @Summary Get all services
// @Tags ServiceCatalog
// @Produce json
// @Param name query string false "Filter by name"
// @Param category_id query string false "Filter by category"
// @Param active query boolean false "Filter by active flag"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetServicesResponse "List of services"
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
// @Security BearerAuth
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	filterGroup.AppendIfNotEmpty(
		gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: query.Get(dto.QueryName), Table: model.TableName},
		gDto.Filter{Field: model.FieldCategoryID, Operator: gDto.FilterOperatorEq, Value: query.Get(dto.QueryCategoryID), Table: model.TableName},
	)

	if active := shared.ConvertStringToBool(query.Get(dto.QueryActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	services, err := handler.service.GetServices(ctx, queryParams, filterGroup)
	if err != nil {
		response.Fail(w, scope, err, "failed to get services")

		return
	}

	scope.AddEvent("Services retrieved successfully")

	response.WithJSON(w, http.StatusOK, services)
}

// GetServiceByID retrieves a catalog service by its ID.
// @Summary Get a service by ID
// @Tags ServiceCatalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse "Service details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.GetService(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "failed to get service by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateService updates a catalog service. A new price applies to charges attached afterwards.
// @Summary Update a service @Admin
// @Tags ServiceCatalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.UpdateServiceRequest true "Update Service Request"
// @Success 200 {object} response.Message "Service updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.UpdateService(ctx, req, id); err != nil {
		response.Fail(w, scope, err, "failed to update service")

		return
	}

	scope.AddEvent("Service updated successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Service updated successfully")
}

// DeleteService deletes a catalog service that was never charged.
// @Summary Delete a service @Admin
// @Tags ServiceCatalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Message "Service deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteService(ctx, id); err != nil {
		response.Fail(w, scope, err, "failed to delete service")

		return
	}

	scope.AddEvent("Service deleted successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Service deleted successfully")
}
