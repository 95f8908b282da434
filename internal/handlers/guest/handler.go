package guest

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UpsertGuest)
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/{id}", handler.GetGuestByID)
		routerGroup.Put("/{id}", handler.UpdateContact)
		routerGroup.Delete("/{id}", handler.DeleteGuest)
	})
}

// UpsertGuest creates a guest or refreshes the contact details of the guest with the same document number.
// @Summary Create or update a guest by document number
// @Description Name, document number and guest type of an existing guest are never changed.
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.UpsertGuestRequest true "Upsert Guest Request"
// @Success 200 {object} dto.UpsertGuestResponse "Existing guest updated"
// @Success 201 {object} dto.UpsertGuestResponse "Guest created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests [post]
// @Security BearerAuth
func (handler *Handler) UpsertGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertGuest")
	defer scope.End()

	req := dto.UpsertGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Upsert(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "failed to upsert guest")

		return
	}

	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}

	scope.AddEvent("Guest upserted successfully")

	response.WithJSON(w, code, res)
}

// GetGuests retrieves guests.
// @Summary Get all guests
// @Tags Guest
// @Produce json
// @Param full_name query string false "Filter by name"
// @Param guest_type query string false "Filter by guest type" Enums(Regular, VIP, Corporate)
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetGuestsResponse "List of guests"
// @Failure 500 {object} response.Error
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	filterGroup.AppendIfNotEmpty(
		gDto.Filter{Field: model.FieldFullName, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldFullName), Table: model.TableName},
		gDto.Filter{Field: model.FieldGuestType, Operator: gDto.FilterOperatorEq, Value: query.Get(model.FieldGuestType), Table: model.TableName},
	)

	guests, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		response.Fail(w, scope, err, "failed to get guests")

		return
	}

	scope.AddEvent("Guests retrieved successfully")

	response.WithJSON(w, http.StatusOK, guests)
}

// GetGuestByID retrieves a guest by its ID.
// @Summary Get a guest by ID
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} dto.GuestResponse "Guest details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	guest, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "failed to get guest by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, guest)
}

// UpdateContact updates the contact details of a guest.
// @Summary Update guest contact details
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Param request body dto.UpdateContactRequest true "Update Contact Request"
// @Success 200 {object} response.Message "Guest updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.UpdateContact(ctx, req, id); err != nil {
		response.Fail(w, scope, err, "failed to update guest contact")

		return
	}

	scope.AddEvent("Guest updated successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Guest updated successfully")
}

// DeleteGuest deletes a guest without bookings.
// @Summary Delete a guest
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Message "Guest deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGuest")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		response.Fail(w, scope, err, "failed to delete guest")

		return
	}

	scope.AddEvent("Guest deleted successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Guest deleted successfully")
}
