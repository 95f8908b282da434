package service

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	catalogModel "hotel/internal/domains/servicecatalog/model"
	catalogRepository "hotel/internal/domains/servicecatalog/repository"
	"hotel/internal/domains/servicecharge/model"
	"hotel/internal/domains/servicecharge/model/dto"
	"hotel/internal/domains/servicecharge/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// ServiceCharge attaches catalog services to bookings. Every change locks the booking row
// and rewrites its total from the stored line totals in the same transaction, holding the
// booking's room. Later catalog price changes never reach an attached charge.
type ServiceCharge interface {
	Attach(ctx context.Context, bookingID string, req dto.AttachServiceRequest) (dto.AttachServiceResponse, error)
	Detach(ctx context.Context, bookingID, chargeID string) (dto.DetachServiceResponse, error)
	List(ctx context.Context, bookingID string, req gDto.QueryParams) (dto.GetServiceChargesResponse, error)
}

type serviceImpl struct {
	repo         repository.ServiceCharge
	bookings     bookingRepository.Booking
	services     catalogRepository.Service
	availability availability.Availability
	transactor   gRepo.Transactor
	events       event.Publisher
	otel         otel.Otel
}

func New(
	repo repository.ServiceCharge,
	bookings bookingRepository.Booking,
	services catalogRepository.Service,
	availability availability.Availability,
	transactor gRepo.Transactor,
	events event.Publisher,
	otel otel.Otel,
) ServiceCharge {
	return &serviceImpl{
		repo:         repo,
		bookings:     bookings,
		services:     services,
		availability: availability,
		transactor:   transactor,
		events:       events,
		otel:         otel,
	}
}

func (s *serviceImpl) Attach(ctx context.Context, bookingID string, req dto.AttachServiceRequest) (res dto.AttachServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ServiceCharge.Attach")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Quantity <= 0 {
		return res, failure.InvalidInput("quantity must be positive") // nolint:wrapcheck
	}

	booking, release, err := s.holdBooking(ctx, bookingID, "attach services to")
	if err != nil {
		return res, err
	}
	defer release()

	svc, err := s.services.Get(ctx, shared.FilterByID(req.ServiceID, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if svc.ID == constant.Empty || !svc.Active {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	user := shared.Actor(ctx)
	now := timezone.Now()

	charge := model.ServiceCharge{
		ID:          uuid.NewString(),
		BookingID:   booking.ID,
		ServiceID:   svc.ID,
		Quantity:    req.Quantity,
		UnitPrice:   svc.Price,
		LineTotal:   model.LineTotal(req.Quantity, svc.Price),
		ServiceName: svc.Name,
		Unit:        svc.Unit,
		Metadata:    gModel.NewMetadata(user, now),
	}

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.lockBooking(ctx, tx, bookingID, "attach services to")
		if err != nil {
			return err
		}

		if err := s.repo.InsertTx(ctx, tx, charge); err != nil {
			return err //nolint:wrapcheck
		}

		booking, err = s.retotal(ctx, tx, locked, user)

		return err
	})
	if err != nil {
		return res, txError(err, "failed to attach service")
	}

	log.Info().Str("booking", booking.ID).Str("service", svc.Name).Int("quantity", req.Quantity).Msg("service attached")

	s.publish(ctx, booking, now)

	res.FromModel(charge)
	res.BookingTotal = booking.TotalAmount

	return res, nil
}

func (s *serviceImpl) Detach(ctx context.Context, bookingID, chargeID string) (res dto.DetachServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ServiceCharge.Detach")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, release, err := s.holdBooking(ctx, bookingID, "detach services from")
	if err != nil {
		return res, err
	}
	defer release()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: chargeID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	charge, err := s.repo.Get(gRepo.Primary(ctx), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service charge")

		return res, fmt.Errorf("failed to get service charge: %w", err)
	}

	if charge.ID == constant.Empty {
		return res, failure.NotFound("service charge not found") // nolint:wrapcheck
	}

	user := shared.Actor(ctx)
	now := timezone.Now()

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.lockBooking(ctx, tx, bookingID, "detach services from")
		if err != nil {
			return err
		}

		if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(charge.ID, model.FieldID, model.TableName)); err != nil {
			return err //nolint:wrapcheck
		}

		booking, err = s.retotal(ctx, tx, locked, user)

		return err
	})
	if err != nil {
		return res, txError(err, "failed to detach service")
	}

	log.Info().Str("booking", booking.ID).Str("charge", charge.ID).Msg("service detached")

	s.publish(ctx, booking, now)

	res.BookingID = booking.ID
	res.ChargeID = charge.ID
	res.BookingTotal = booking.TotalAmount

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, bookingID string, req gDto.QueryParams) (res dto.GetServiceChargesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ServiceCharge.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.bookings.Exist(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return res, fmt.Errorf("failed to check booking existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	filter := byBooking(bookingID)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count service charges")

		return res, fmt.Errorf("failed to count service charges: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service charges")

		return res, fmt.Errorf("failed to get service charges: %w", err)
	}

	charges, err := s.chargesTotal(ctx, bookingID)
	if err != nil {
		return res, err
	}

	res.FromModels(models, charges, total, req.Limit)

	return res, nil
}

// holdBooking locks the booking's room and returns the booking as read from the primary under the lock.
func (s *serviceImpl) holdBooking(ctx context.Context, bookingID, verb string) (bookingModel.Booking, func(), error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return booking, nil, err
	}

	release, err := s.availability.Hold(ctx, booking.RoomID)
	if err != nil {
		return booking, nil, err //nolint:wrapcheck
	}

	if booking, err = s.getBooking(gRepo.Primary(ctx), bookingID); err != nil {
		release()

		return booking, nil, err
	}

	if err = editable(booking, verb); err != nil {
		release()

		return booking, nil, err
	}

	return booking, release, nil
}

// lockBooking re-reads the booking inside tx and holds its row until tx ends.
func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, bookingID, verb string) (bookingModel.Booking, error) {
	booking, err := s.bookings.GetTx(ctx, tx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, editable(booking, verb)
}

func editable(booking bookingModel.Booking, verb string) error {
	if bookingModel.IsTerminal(booking.Status) {
		return failure.InvalidTransition(fmt.Sprintf("cannot %s a booking that is %s", verb, booking.Status)) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookings.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) chargesTotal(ctx context.Context, bookingID string) (float64, error) {
	total, err := s.repo.Sum(ctx, model.FieldLineTotal, byBooking(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to sum service charges")

		return 0, fmt.Errorf("failed to sum service charges: %w", err)
	}

	return total, nil
}

// retotal sums the booking's stored line totals inside tx, including tx's own writes, and saves the new total.
func (s *serviceImpl) retotal(ctx context.Context, tx *sqlx.Tx, booking bookingModel.Booking, user string) (bookingModel.Booking, error) {
	charges, err := s.repo.SumTx(ctx, tx, model.FieldLineTotal, byBooking(booking.ID))
	if err != nil {
		return booking, fmt.Errorf("failed to sum service charges: %w", err)
	}

	booking.TotalAmount = bookingModel.TotalAmount(booking.NightlyRate, booking.Nights(), charges)

	return booking, s.updateTotal(ctx, tx, booking, user)
}

func (s *serviceImpl) updateTotal(ctx context.Context, tx *sqlx.Tx, booking bookingModel.Booking, user string) error {
	update := map[string]any{
		bookingModel.FieldTotalAmount: booking.TotalAmount,
		constant.FieldModifiedAt:      timezone.Now(),
		constant.FieldModifiedBy:      user,
	}

	return s.bookings.UpdateTx(ctx, tx, update, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)) //nolint:wrapcheck
}

func (s *serviceImpl) publish(ctx context.Context, booking bookingModel.Booking, at time.Time) {
	if err := s.events.Publish(ctx, event.Repriced(booking, constant.Empty, at)); err != nil {
		log.Warn().Err(err).Str("booking", booking.ID).Msg("failed to publish booking event")
	}
}

// txError maps a failed charge transaction. Failures raised inside it pass through.
func txError(err error, msg string) error {
	switch {
	case failure.GetKind(err) != failure.KindInternal:
		return err
	case gRepo.IsFkViolation(err):
		return failure.NotFound("booking or service not found") // nolint:wrapcheck
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func byBooking(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
