package room

import (
	"mime/multipart"
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formImages = "images"

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Patch("/{id}/status", handler.UpdateRoomStatus)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

func formImageUploads(request *http.Request) ([]dto.ImageUpload, func()) {
	if request.MultipartForm == nil {
		return nil, func() {}
	}

	headers := request.MultipartForm.File[formImages]
	uploads := make([]dto.ImageUpload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			log.Warn().Err(err).Str("file", header.Filename).Msg("failed to open uploaded image")

			continue
		}

		files = append(files, file)
		uploads = append(uploads, dto.ImageUpload{
			Header:      header,
			File:        file,
			ContentType: header.Header.Get(constant.RequestHeaderContentType),
			Size:        header.Size,
		})
	}

	return uploads, func() {
		for _, file := range files {
			_ = file.Close()
		}
	}
}

func formInt(request *http.Request, key string) *int {
	value := request.FormValue(key)
	if value == "" {
		return nil
	}

	parsed, err := shared.ConvertStringToInt(value)
	if err != nil {
		return nil
	}

	return &parsed
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room. Images are stored in object storage.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Room name"
// @Param category formData string true "single, double, suite or deluxe"
// @Param description formData string false "Description"
// @Param amenities formData []string false "Amenities" collectionFormat(multi)
// @Param price_per_night formData string true "Nightly price"
// @Param capacity formData integer true "Capacity"
// @Param floor formData integer false "Floor"
// @Param status formData string false "Initial status"
// @Param images formData file false "Room images"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	images, closeImages := formImageUploads(request)
	defer closeImages()

	req := dto.CreateRoomRequest{
		Name:          request.FormValue(model.FieldName),
		Category:      request.FormValue(model.FieldCategory),
		Description:   request.FormValue(model.FieldDescription),
		Amenities:     request.MultipartForm.Value[model.FieldAmenities],
		PricePerNight: request.FormValue(model.FieldPricePerNight),
		Status:        request.FormValue(model.FieldStatus),
		Images:        images,
	}

	if capacity := formInt(request, model.FieldCapacity); capacity != nil {
		req.Capacity = *capacity
	}

	if floor := formInt(request, model.FieldFloor); floor != nil {
		req.Floor = *floor
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(writer, http.StatusCreated, room)
}

// GetRooms lists rooms.
// @Summary Get all rooms
// @Description List rooms ordered by floor, optionally filtered by status and category.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	if r.URL.Query().Get(constant.RequestParamSortBy) == constant.Empty {
		queryParams.SortBy = model.FieldFloor
		queryParams.SortDir = gDto.SortDirAsc
	}

	queryParams.RestrictSort(model.FieldFloor, model.FieldName, model.FieldPricePerNight, model.FieldCapacity, constant.FieldCreatedAt)
	queryParams.ThenBy = []string{model.FieldName, model.FieldID}

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    query.Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	filterGroup.AppendEq(query, model.TableName, model.FieldStatus, model.FieldCategory)

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Description Update room details. Uploaded images replace the current ones.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param name formData string false "Room name"
// @Param category formData string false "Category"
// @Param description formData string false "Description"
// @Param amenities formData []string false "Amenities" collectionFormat(multi)
// @Param price_per_night formData string false "Nightly price"
// @Param capacity formData integer false "Capacity"
// @Param floor formData integer false "Floor"
// @Param images formData file false "Room images"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	images, closeImages := formImageUploads(r)
	defer closeImages()

	req := dto.UpdateRoomRequest{
		Name:          r.FormValue(model.FieldName),
		Category:      r.FormValue(model.FieldCategory),
		Description:   r.FormValue(model.FieldDescription),
		Amenities:     r.MultipartForm.Value[model.FieldAmenities],
		PricePerNight: r.FormValue(model.FieldPricePerNight),
		Capacity:      formInt(r, model.FieldCapacity),
		Floor:         formInt(r, model.FieldFloor),
		Images:        images,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room updated successfully")

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// UpdateRoomStatus sets the housekeeping status of a room.
// @Summary Update room status
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomStatusRequest true "New status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateRoomStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room status updated successfully")
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room deleted successfully")

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
