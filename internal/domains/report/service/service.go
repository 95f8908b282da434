package service

import (
	"context"
	"fmt"
	"math"

	"hotel/infras/otel"
	availabilityModel "hotel/internal/domains/availability/model"
	availability "hotel/internal/domains/availability/service"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/report/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/rs/zerolog/log"
)

type Report interface {
	Occupancy(ctx context.Context, period availabilityModel.Stay) (dto.OccupancyReportResponse, error)
}

type serviceImpl struct {
	rooms        roomRepository.Room
	bookings     bookingRepository.Booking
	availability availability.Availability
	otel         otel.Otel
}

func New(rooms roomRepository.Room, bookings bookingRepository.Booking, availability availability.Availability, otel otel.Otel) Report {
	return &serviceImpl{
		rooms:        rooms,
		bookings:     bookings,
		availability: availability,
		otel:         otel,
	}
}

// Occupancy counts rooms by their status as of today, bookings whose stay overlaps period by
// status, and revenue from stays checked out within period.
func (s *serviceImpl) Occupancy(ctx context.Context, period availabilityModel.Stay) (res dto.OccupancyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.Occupancy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.roomsByStatus(ctx)
	if err != nil {
		return res, err
	}

	bookings, err := s.bookings.GroupCount(ctx, bookingModel.FieldStatus, overlapping(period))
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings by status")

		return res, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	revenue, err := s.bookings.Sum(ctx, bookingModel.FieldTotalAmount, checkedOutWithin(period))
	if err != nil {
		log.Error().Err(err).Msg("failed to sum revenue")

		return res, fmt.Errorf("failed to sum revenue: %w", err)
	}

	res.From = period.CheckIn.Format(constant.DateOnlyFormat)
	res.To = period.CheckOut.Format(constant.DateOnlyFormat)
	res.RoomsByStatus = rooms
	res.BookingsByStatus = bookings
	res.Revenue = math.Round(revenue*100) / 100

	for _, count := range rooms {
		res.TotalRooms += count
	}

	for _, count := range bookings {
		res.TotalBookings += count
	}

	if res.TotalRooms > 0 {
		res.OccupancyRate = math.Round(float64(rooms[roomModel.StatusOccupied])/float64(res.TotalRooms)*10000) / 100
	}

	return res, nil
}

func (s *serviceImpl) roomsByStatus(ctx context.Context) (map[string]int, error) {
	all, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, roomModel.FieldID, roomModel.FieldMaintenance)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	all, err = s.availability.Statuses(ctx, all...)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	counts := make(map[string]int)
	for _, room := range all {
		counts[room.Status]++
	}

	return counts, nil
}

func overlapping(period availabilityModel.Stay) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{ArgName: "period_end", Field: bookingModel.FieldCheckIn, Value: period.CheckOut, Operator: gDto.FilterOperatorLess, Table: bookingModel.TableName},
			gDto.Filter{ArgName: "period_start", Field: bookingModel.FieldCheckOut, Value: period.CheckIn, Operator: gDto.FilterOperatorGreater, Table: bookingModel.TableName},
		},
	}
}

func checkedOutWithin(period availabilityModel.Stay) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.StatusCheckedOut, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{ArgName: "period_start", Field: bookingModel.FieldCheckOut, Value: period.CheckIn, Operator: gDto.FilterOperatorGreaterEq, Table: bookingModel.TableName},
			gDto.Filter{ArgName: "period_end", Field: bookingModel.FieldCheckOut, Value: period.CheckOut, Operator: gDto.FilterOperatorLess, Table: bookingModel.TableName},
		},
	}
}
