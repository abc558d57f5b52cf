package service

import (
	"context"
	"errors"
	"fmt"
	"path"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/infras/s3"
	roleService "guesthouse/internal/domains/role/service"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/repository"
	"guesthouse/permissions"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gRepo "guesthouse/shared/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Room
	role  roleService.Role
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, role roleService.Role, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		role:  role,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.role.Authorize(ctx, permissions.OperationRoomManage)
	if err != nil {
		return res, err
	}

	imageURLs, objectNames, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return res, err
	}

	room := req.ToModel(sess.Actor(), imageURLs)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")
		s.deleteImages(ctx, objectNames)

		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict("a room with this name already exists")
		}

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.role.Authorize(ctx, permissions.OperationRoomManage)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentRoom, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if currentRoom.ID == constant.Empty {
		return failure.NotFound("room not found")
	}

	imageURLs, objectNames, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return err
	}

	updatedFields := req.Fields(sess.Actor())
	if len(imageURLs) > 0 {
		updatedFields[model.FieldImages] = pq.StringArray(imageURLs)
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")
		s.deleteImages(ctx, objectNames)

		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return failure.NotFound("room not found")
		}

		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict("a room with this name already exists")
		}

		return fmt.Errorf("failed to update room: %w", err)
	}

	if len(imageURLs) > 0 {
		s.deleteImageURLs(ctx, currentRoom.Images)
	}

	s.evict(ctx, id)

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.role.Authorize(ctx, permissions.OperationRoomStatus)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, sess.Actor()), filter); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return failure.NotFound("room not found")
		}

		log.Error().Err(err).Msg("failed to update room status")

		return fmt.Errorf("failed to update room status: %w", err)
	}

	s.evict(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationRoomManage); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldImages)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("room has bookings and cannot be deleted")
		}

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.deleteImageURLs(ctx, room.Images)
	s.evict(ctx, id)

	return nil
}

func (s *serviceImpl) evict(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}

// uploadImages stores every image under the room directory. On failure the
// images already uploaded are removed again.
func (s *serviceImpl) uploadImages(ctx context.Context, images []dto.ImageUpload) (urls, keys []string, err error) {
	for _, image := range images {
		key := path.Join(model.EntityName, uuid.NewString()+path.Ext(image.Header.Filename))

		url, err := s.s3.Put(ctx, key, image.File, image.Size, image.ContentType)
		if err != nil {
			log.Error().Err(err).Str("file", image.Header.Filename).Msg("failed to upload room image")
			s.deleteImages(ctx, keys)

			return nil, nil, fmt.Errorf("failed to upload image: %w", err)
		}

		urls = append(urls, url)
		keys = append(keys, key)
	}

	return urls, keys, nil
}

func (s *serviceImpl) deleteImages(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}

	if err := s.s3.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("objects", keys).Msg("failed to delete room images")
	}
}

func (s *serviceImpl) deleteImageURLs(ctx context.Context, urls []string) {
	keys := make([]string, 0, len(urls))

	for _, url := range urls {
		if key := s.s3.KeyFromURL(url); key != constant.Empty {
			keys = append(keys, key)
		}
	}

	s.deleteImages(ctx, keys)
}
