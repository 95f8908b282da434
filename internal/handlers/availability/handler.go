package availability

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/rooms/{id}", handler.CheckRoom)
		routerGroup.Get("/free-rooms", handler.FreeRooms)
	})
}

func (handler *Handler) stay(r *http.Request) (dto.StayQuery, error) {
	query := dto.StayQuery{}
	query.FromRequest(r)

	return query, validator.ValidateStruct(&query) //nolint:wrapcheck
}

// CheckRoom reports whether a room can host a stay.
// @Summary Check room availability
// @Description A room in maintenance is never available. The check-out day is not occupied.
// @Tags Availability
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} dto.RoomAvailabilityResponse "Availability of the room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) CheckRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	query, err := handler.stay(r)
	if err != nil {
		response.Fail(w, scope, err, "invalid stay query")

		return
	}

	stay, err := query.Stay()
	if err != nil {
		response.Fail(w, scope, err, "invalid stay query")

		return
	}

	available, err := handler.service.IsRoomAvailable(ctx, id, stay)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to check room availability")

		response.WithError(w, err)

		return
	}

	res := dto.RoomAvailabilityResponse{}
	res.From(id, stay, available)

	response.WithJSON(w, http.StatusOK, res)
}

// FreeRooms lists the rooms of a type that can host a stay.
// @Summary List free rooms of a type
// @Tags Availability
// @Produce json
// @Param type_id query string true "Room type ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} dto.FreeRoomsResponse "Free rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/free-rooms [get]
// @Security BearerAuth
func (handler *Handler) FreeRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FreeRooms")
	defer scope.End()

	typeID := r.URL.Query().Get(dto.RequestParamTypeID)
	if typeID == "" {
		err := failure.BadRequestFromString("type_id is required")

		response.Fail(w, scope, err, "invalid stay query")

		return
	}

	query, err := handler.stay(r)
	if err != nil {
		response.Fail(w, scope, err, "invalid stay query")

		return
	}

	stay, err := query.Stay()
	if err != nil {
		response.Fail(w, scope, err, "invalid stay query")

		return
	}

	rooms, err := handler.service.FreeRooms(ctx, typeID, stay)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type_id", typeID).Msg("failed to list free rooms")

		response.WithError(w, err)

		return
	}

	res := dto.FreeRoomsResponse{}
	res.From(typeID, stay, rooms)

	response.WithJSON(w, http.StatusOK, res)
}
