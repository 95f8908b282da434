package servicecharge

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/servicecharge/model/dto"
	"hotel/internal/domains/servicecharge/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const requestParamChargeID = "chargeID"

type Handler struct {
	service service.ServiceCharge
	otel    otel.Otel
}

func New(service service.ServiceCharge, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings/{id}/services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AttachService)
		routerGroup.Get("/", handler.GetServiceCharges)
		routerGroup.Delete("/{chargeID}", handler.DetachService)
	})
}

// AttachService adds a catalog service to a booking at the current catalog price.
// @Summary Attach a service to a booking
// @Tags ServiceCharge
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.AttachServiceRequest true "Attach Service Request"
// @Success 201 {object} dto.AttachServiceResponse "Service attached"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "booking is checked out or cancelled"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/services [post]
// @Security BearerAuth
func (handler *Handler) AttachService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AttachService")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamID)

	req := dto.AttachServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Attach(ctx, bookingID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to attach service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service attached successfully by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusCreated, res)
}

// GetServiceCharges lists the services attached to a booking.
// @Summary List booking services
// @Tags ServiceCharge
// @Produce json
// @Param id path string true "Booking ID"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetServiceChargesResponse "Attached services"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/services [get]
// @Security BearerAuth
func (handler *Handler) GetServiceCharges(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceCharges")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	charges, err := handler.service.List(ctx, bookingID, queryParams)
	if err != nil {
		response.Fail(w, scope, err, "failed to list booking services")

		return
	}

	response.WithJSON(w, http.StatusOK, charges)
}

// DetachService removes a service charge from a booking.
// @Summary Detach a service from a booking
// @Tags ServiceCharge
// @Produce json
// @Param id path string true "Booking ID"
// @Param chargeID path string true "Charge ID"
// @Success 200 {object} dto.DetachServiceResponse "Service detached"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/services/{chargeID} [delete]
// @Security BearerAuth
func (handler *Handler) DetachService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DetachService")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamID)
	chargeID := chi.URLParam(r, requestParamChargeID)

	res, err := handler.service.Detach(ctx, bookingID, chargeID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", bookingID).Str("charge_id", chargeID).Msg("failed to detach service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service detached successfully by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusOK, res)
}
