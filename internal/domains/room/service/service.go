package service

import (
	"context"
	"fmt"
	"path/filepath"

	"hotel/infras/otel"
	"hotel/infras/s3"
	availabilityModel "hotel/internal/domains/availability/model"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Room reads are never cached. Every room returned carries the status derived from its
// bookings as of today.
type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	SetMaintenance(ctx context.Context, id string, req dto.SetMaintenanceRequest) (dto.RoomResponse, error)
	UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo         repository.Room
	availability availability.Availability
	otel         otel.Otel
	s3           s3.S3
}

func New(repo repository.Room, availability availability.Availability, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		otel:         otel,
		s3:           s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)
	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		switch {
		case gRepo.IsUniqueViolation(err):
			return res, failure.Conflict("room number already exists") // nolint:wrapcheck
		case gRepo.IsFkViolation(err):
			return res, failure.NotFound("room type not found") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	return s.Get(ctx, room.ID)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	if models, err = s.availability.Statuses(ctx, models...); err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	return s.respond(ctx, room)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		switch {
		case gRepo.IsUniqueViolation(err):
			return failure.Conflict("room number already exists") // nolint:wrapcheck
		case gRepo.IsFkViolation(err):
			return failure.NotFound("room type not found") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsFkViolation(err) {
			return failure.Conflict("room still has bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.removeImage(ctx, room.Image)

	return nil
}

// SetMaintenance toggles the override and re-derives status under the room lock.
func (s *serviceImpl) SetMaintenance(ctx context.Context, id string, req dto.SetMaintenanceRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.SetMaintenance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	release, err := s.availability.Hold(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	defer release()

	occ, err := s.availability.Occupancy(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	user := shared.Actor(ctx)

	occ.Room.Maintenance = *req.Maintenance
	occ.Room.Status = occ.Status(availabilityModel.Day(timezone.Now()))

	update := map[string]any{
		model.FieldMaintenance:   occ.Room.Maintenance,
		model.FieldStatus:        occ.Room.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room maintenance")

		return res, fmt.Errorf("failed to update room maintenance: %w", err)
	}

	log.Info().Str("room", occ.Room.Number).Bool("maintenance", occ.Room.Maintenance).Str("status", occ.Room.Status).Msg("room maintenance changed")

	res.FromModel(occ.Room)

	return res, nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	url, err := s.s3.Upload(ctx, s3.Object{
		Directory:   model.EntityName,
		Name:        uuid.NewString() + filepath.Ext(req.Image.Filename),
		ContentType: req.Image.Header.Get(constant.RequestHeaderContentType),
		Body:        req.ImageFile,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return res, fmt.Errorf("failed to upload room image: %w", err)
	}

	user := shared.Actor(ctx)
	update := map[string]any{
		model.FieldImage:         url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save room image")
		s.removeImage(ctx, url)

		return res, fmt.Errorf("failed to save room image: %w", err)
	}

	s.removeImage(ctx, room.Image)

	room.Image = url

	return s.respond(ctx, room)
}

func (s *serviceImpl) respond(ctx context.Context, room model.Room) (res dto.RoomResponse, err error) {
	rooms, err := s.availability.Statuses(ctx, room)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(rooms[0])

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

// removeImage deletes a stored image. Failures only leave an orphaned object behind.
func (s *serviceImpl) removeImage(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	key := s.s3.KeyFromURL(url)
	if key == constant.Empty {
		return
	}

	if err := s.s3.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete room image")
	}
}
