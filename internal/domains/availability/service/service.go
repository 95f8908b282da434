package service

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/locker"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Availability answers whether rooms can host a stay. Reads always hit the database.
// Statuses it returns are derived from the bookings as of today, never the stored column.
type Availability interface {
	Hold(ctx context.Context, roomID string) (release func(), err error)
	Occupancy(ctx context.Context, roomID string) (model.Occupancy, error)
	IsRoomAvailable(ctx context.Context, roomID string, stay model.Stay) (bool, error)
	FreeRooms(ctx context.Context, typeID string, stay model.Stay) ([]roomModel.Room, error)
	Statuses(ctx context.Context, rooms ...roomModel.Room) ([]roomModel.Room, error)
}

type serviceImpl struct {
	rooms    roomRepository.Room
	bookings bookingRepository.Booking
	locker   *locker.Keyed
	cfg      *config.Config
	otel     otel.Otel
}

func New(rooms roomRepository.Room, bookings bookingRepository.Booking, locker *locker.Keyed, cfg *config.Config, otel otel.Otel) Availability {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		locker:   locker,
		cfg:      cfg,
		otel:     otel,
	}
}

// Hold enters the room's exclusive section. Every check-then-write on a room's bookings
// or status runs between Hold and release.
func (s *serviceImpl) Hold(ctx context.Context, roomID string) (func(), error) {
	release, err := s.locker.LockWithin(ctx, roomID, time.Duration(s.cfg.App.Booking.LockTimeout)*time.Second)
	if err != nil {
		log.Warn().Err(err).Str("room", roomID).Msg("room lock not acquired")

		return nil, failure.Conflict("room is being updated, try again") // nolint:wrapcheck
	}

	return release, nil
}

// Occupancy loads the room, with its stored status, and its active bookings from the primary.
// Writers call it between Hold and release. Unknown rooms are NotFound.
func (s *serviceImpl) Occupancy(ctx context.Context, roomID string) (occ model.Occupancy, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.Occupancy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.occupancy(gRepo.Primary(ctx), roomID)
}

func (s *serviceImpl) occupancy(ctx context.Context, roomID string) (occ model.Occupancy, err error) {
	room, err := s.rooms.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return occ, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return occ, failure.NotFound("room not found") // nolint:wrapcheck
	}

	bookings, err := s.activeBookings(ctx, room.ID)
	if err != nil {
		return occ, err
	}

	return model.Occupancy{Room: room, Bookings: bookings}, nil
}

func (s *serviceImpl) IsRoomAvailable(ctx context.Context, roomID string, stay model.Stay) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.IsRoomAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	occ, err := s.occupancy(ctx, roomID)
	if err != nil {
		return false, err
	}

	return occ.Admits(stay, constant.Empty), nil
}

// FreeRooms checks every room of the type on its own and keeps the ones admitting stay.
func (s *serviceImpl) FreeRooms(ctx context.Context, typeID string, stay model.Stay) (free []roomModel.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.FreeRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldNumber, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldTypeID, Value: typeID, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
			gDto.Filter{Field: roomModel.FieldMaintenance, Value: false, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	free = make([]roomModel.Room, 0, len(rooms))
	today := timezone.Now()

	for _, room := range rooms {
		bookings, err := s.activeBookings(ctx, room.ID)
		if err != nil {
			return nil, err
		}

		occ := model.Occupancy{Room: room, Bookings: bookings}
		if occ.Admits(stay, constant.Empty) {
			room.Status = occ.Status(today)
			free = append(free, room)
		}
	}

	return free, nil
}

// Statuses returns rooms with Status derived from their active bookings, loaded in one query.
func (s *serviceImpl) Statuses(ctx context.Context, rooms ...roomModel.Room) (res []roomModel.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.Statuses")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(rooms) == 0 {
		return rooms, nil
	}

	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	bookings, err := s.active(ctx, gDto.Filter{Field: bookingModel.FieldRoomID, Value: ids, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName})
	if err != nil {
		return nil, err
	}

	byRoom := make(map[string][]bookingModel.Booking, len(rooms))
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	today := timezone.Now()
	res = make([]roomModel.Room, len(rooms))

	for i, room := range rooms {
		room.Status = model.DeriveStatus(today, room.Maintenance, byRoom[room.ID])
		res[i] = room
	}

	return res, nil
}

func (s *serviceImpl) activeBookings(ctx context.Context, roomID string) ([]bookingModel.Booking, error) {
	return s.active(ctx, gDto.Filter{Field: bookingModel.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName})
}

func (s *serviceImpl) active(ctx context.Context, byRoom gDto.Filter) ([]bookingModel.Booking, error) {
	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			byRoom,
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get active bookings")

		return nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	return bookings, nil
}
