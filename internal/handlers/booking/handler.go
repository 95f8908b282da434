package booking

import (
	"net/http"

	"hotel/infras/otel"
	availabilityModel "hotel/internal/domains/availability/model"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/transition", handler.Transition)
		routerGroup.Post("/{id}/recompute", handler.RecomputeTotal)
	})
}

// CreateBooking admits a new Pending booking when the room is free for the whole stay.
// @Summary Create a booking
// @Description The stay is half-open: the check-out day is free for the next guest.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingResponse "Booking created successfully"
// @Failure 400 {object} response.Error "invalid_input"
// @Failure 404 {object} response.Error "unknown guest or room"
// @Failure 409 {object} response.Error "unavailable or conflict"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		response.Fail(writer, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + shared.Actor(ctx))

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings retrieves bookings with guest name and room number.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param status query string false "Filter by status" Enums(Pending, Confirmed, CheckedIn, CheckedOut, Cancelled)
// @Param room_id query string false "Filter by room"
// @Param guest_id query string false "Filter by guest"
// @Param from query string false "Stays overlapping from this date (YYYY-MM-DD)"
// @Param to query string false "Stays overlapping until this date (YYYY-MM-DD), exclusive"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetBookingsResponse "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	filterGroup.AppendIfNotEmpty(
		gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: query.Get(dto.RequestParamStatus), Table: model.TableName},
		gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: query.Get(dto.RequestParamRoomID), Table: model.TableName},
		gDto.Filter{Field: model.FieldGuestID, Operator: gDto.FilterOperatorEq, Value: query.Get(dto.RequestParamGuestID), Table: model.TableName},
	)

	from, to := query.Get(constant.RequestParamFrom), query.Get(constant.RequestParamTo)
	if from != "" || to != "" {
		period, err := availabilityModel.ParseStay(from, to)
		if err != nil {
			err = failure.InvalidInput("from and to must both be dates with from before to")

			response.Fail(w, scope, err, "invalid date range filter")

			return
		}

		filterGroup.Filters = append(filterGroup.Filters,
			gDto.Filter{ArgName: "period_end", Field: model.FieldCheckIn, Operator: gDto.FilterOperatorLess, Value: period.CheckOut, Table: model.TableName},
			gDto.Filter{ArgName: "period_start", Field: model.FieldCheckOut, Operator: gDto.FilterOperatorGreater, Value: period.CheckIn, Table: model.TableName},
		)
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		response.Fail(w, scope, err, "failed to get bookings")

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "failed to get booking by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// Transition moves a booking along its lifecycle.
// @Summary Confirm, cancel, check in or check out a booking
// @Description Check-in is allowed from the check-in date. Check-out finalizes the total.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.TransitionRequest true "Transition Request"
// @Success 200 {object} dto.BookingResponse "Booking updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "invalid_transition"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/transition [post]
// @Security BearerAuth
func (handler *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Transition")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.TransitionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	booking, err := handler.service.Transition(ctx, id, req.Action)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("action", req.Action).Msg("failed to transition booking")

		response.WithError(w, err)

		return
	}

	user := shared.Actor(ctx)
	scope.AddEvent("Booking " + req.Action + " by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// RecomputeTotal recalculates the booking total from the nightly rate and attached services.
// @Summary Recompute a booking total
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse "Booking total recomputed"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/recompute [post]
// @Security BearerAuth
func (handler *Handler) RecomputeTotal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecomputeTotal")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.RecomputeTotal(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "failed to recompute booking total")

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}
