package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	availabilityModel "hotel/internal/domains/availability/model"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepository "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	chargeModel "hotel/internal/domains/servicecharge/model"
	chargeRepository "hotel/internal/domains/servicecharge/repository"
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

// Booking is the ledger of stays. Every write holds the room and refreshes its status
// in the same transaction as the booking row.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Transition(ctx context.Context, id, action string) (dto.BookingResponse, error)
	RecomputeTotal(ctx context.Context, id string) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	rooms        roomRepository.Room
	guests       guestRepository.Guest
	charges      chargeRepository.ServiceCharge
	availability availability.Availability
	transactor   gRepo.Transactor
	events       event.Publisher
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	rooms roomRepository.Room,
	guests guestRepository.Guest,
	charges chargeRepository.ServiceCharge,
	availability availability.Availability,
	transactor gRepo.Transactor,
	events event.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		rooms:        rooms,
		guests:       guests,
		charges:      charges,
		availability: availability,
		transactor:   transactor,
		events:       events,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stay, err := s.validate(req)
	if err != nil {
		return res, err
	}

	guest, err := s.guests.Get(ctx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	release, err := s.availability.Hold(ctx, req.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	defer release()

	occ, err := s.availability.Occupancy(ctx, req.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if occ.Room.Maintenance {
		return res, failure.Unavailable("room is under maintenance") // nolint:wrapcheck
	}

	if !occ.Admits(stay, constant.Empty) {
		return res, failure.Unavailable("room is not available for the requested dates") // nolint:wrapcheck
	}

	user := shared.Actor(ctx)
	now := timezone.Now()

	booking := model.Booking{
		ID:          uuid.NewString(),
		GuestID:     guest.ID,
		RoomID:      occ.Room.ID,
		CheckIn:     stay.CheckIn,
		CheckOut:    stay.CheckOut,
		Adults:      req.Adults,
		Children:    req.Children,
		Status:      model.StatusPending,
		NightlyRate: occ.Room.BasePrice,
		TotalAmount: model.TotalAmount(occ.Room.BasePrice, stay.Nights(), 0),
		GuestName:   guest.FullName,
		RoomNumber:  occ.Room.Number,
		Metadata:    gModel.NewMetadata(user, now),
	}

	roomStatus, err := s.persist(ctx, occ, booking, user, func(tx *sqlx.Tx) error {
		return s.repo.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		return res, storeError(err, "failed to create booking")
	}

	log.Info().Str("booking", booking.ID).Str("room", occ.Room.Number).Int("nights", stay.Nights()).Msg("booking created")

	s.publish(ctx, event.New(booking, constant.Empty, roomStatus, now))

	res.FromModel(booking)

	return res, nil
}

// Transition applies action to the booking under its room's lock.
func (s *serviceImpl) Transition(ctx context.Context, id, action string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	release, err := s.availability.Hold(ctx, current.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	defer release()

	// reload from the primary, the status may have moved while waiting for the room
	if current, err = s.get(gRepo.Primary(ctx), id); err != nil {
		return res, err
	}

	next, ok := model.Next(current.Status, action)
	if !ok {
		return res, failure.InvalidTransition(fmt.Sprintf("cannot %s a booking that is %s", action, current.Status)) // nolint:wrapcheck
	}

	occ, err := s.availability.Occupancy(ctx, current.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	user := shared.Actor(ctx)
	now := timezone.Now()

	updated := current
	updated.Status = next
	updated.ModifiedAt = now
	updated.ModifiedBy = user

	update := map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	switch action {
	case model.ActionCheckIn:
		if availabilityModel.Day(now).Before(availabilityModel.Day(current.CheckIn)) {
			return res, failure.InvalidTransition("check-in is not allowed before " + current.CheckIn.Format(constant.DateOnlyFormat)) // nolint:wrapcheck
		}

		if occ.Room.Maintenance {
			return res, failure.Unavailable("room is under maintenance") // nolint:wrapcheck
		}
	}

	roomStatus, err := s.persist(ctx, occ, updated, user, func(tx *sqlx.Tx) error {
		locked, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		// another instance may have moved the booking after the primary read
		if locked.Status != current.Status {
			return failure.InvalidTransition(fmt.Sprintf("cannot %s a booking that is %s", action, locked.Status)) // nolint:wrapcheck
		}

		if action == model.ActionCheckOut {
			charges, err := s.chargesTotal(ctx, tx, id)
			if err != nil {
				return err
			}

			updated.TotalAmount = model.TotalAmount(locked.NightlyRate, locked.Nights(), charges)
			update[model.FieldTotalAmount] = updated.TotalAmount
		}

		return s.repo.UpdateTx(ctx, tx, update, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		return res, storeError(err, "failed to update booking status")
	}

	log.Info().Str("booking", id).Str("from", current.Status).Str("to", next).Str("room_status", roomStatus).Msg("booking transitioned")

	s.publish(ctx, event.New(updated, current.Status, roomStatus, now))

	res.FromModel(updated)

	return res, nil
}

// RecomputeTotal rewrites the booking total from its nights and attached charges. The row is
// locked and the charges summed in the transaction that writes the total.
func (s *serviceImpl) RecomputeTotal(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.RecomputeTotal")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	release, err := s.availability.Hold(ctx, current.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	defer release()

	user := shared.Actor(ctx)
	now := timezone.Now()

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		charges, err := s.chargesTotal(ctx, tx, id)
		if err != nil {
			return err
		}

		current = locked
		current.TotalAmount = model.TotalAmount(locked.NightlyRate, locked.Nights(), charges)

		update := map[string]any{
			model.FieldTotalAmount:   current.TotalAmount,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		return s.repo.UpdateTx(ctx, tx, update, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		return res, storeError(err, "failed to update booking total")
	}

	s.publish(ctx, event.Repriced(current, constant.Empty, now))

	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) validate(req dto.CreateBookingRequest) (availabilityModel.Stay, error) {
	stay, err := availabilityModel.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return stay, failure.InvalidInput(err.Error()) // nolint:wrapcheck
	}

	if req.Adults < 1 {
		return stay, failure.InvalidInput("at least one adult is required") // nolint:wrapcheck
	}

	if req.Children < 0 {
		return stay, failure.InvalidInput("children cannot be negative") // nolint:wrapcheck
	}

	if limit := s.cfg.App.Booking.MaxNights; limit > 0 && stay.Nights() > limit {
		return stay, failure.InvalidInput(fmt.Sprintf("stay cannot exceed %d nights", limit)) // nolint:wrapcheck
	}

	return stay, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// lock re-reads the booking inside tx and holds its row until tx ends.
func (s *serviceImpl) lock(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock booking")

		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) chargesTotal(ctx context.Context, tx *sqlx.Tx, bookingID string) (float64, error) {
	total, err := s.charges.SumTx(ctx, tx, chargeModel.FieldLineTotal, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: chargeModel.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: chargeModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to sum service charges")

		return 0, fmt.Errorf("failed to sum service charges: %w", err)
	}

	return total, nil
}

// persist runs write and the room status refresh in one transaction and returns the room's status.
// The status is derived in memory since the read pool cannot see the uncommitted write.
func (s *serviceImpl) persist(ctx context.Context, occ availabilityModel.Occupancy, booking model.Booking, user string, write func(tx *sqlx.Tx) error) (string, error) {
	status := occ.With(booking).Status(availabilityModel.Day(timezone.Now()))

	err := s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := write(tx); err != nil {
			return err
		}

		if status == occ.Room.Status {
			return nil
		}

		update := map[string]any{
			roomModel.FieldStatus:    status,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		return s.rooms.UpdateTx(ctx, tx, update, shared.FilterByID(occ.Room.ID, roomModel.FieldID, roomModel.TableName)) //nolint:wrapcheck
	})

	return status, err //nolint:wrapcheck
}

func (s *serviceImpl) publish(ctx context.Context, evt event.Event) {
	if err := s.events.Publish(ctx, evt); err != nil {
		log.Warn().Err(err).Str("booking", evt.BookingID).Str("type", evt.Type).Msg("failed to publish booking event")
	}
}

// storeError maps a failed write to a Failure. Failures raised inside the transaction pass through.
func storeError(err error, msg string) error {
	switch {
	case failure.GetKind(err) != failure.KindInternal:
		return err
	case gRepo.IsExclusionViolation(err):
		return failure.Conflict("room is already booked for the requested dates") // nolint:wrapcheck
	case gRepo.IsUniqueViolation(err):
		return failure.Conflict("booking already exists") // nolint:wrapcheck
	case gRepo.IsFkViolation(err):
		return failure.NotFound("guest or room not found") // nolint:wrapcheck
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}
