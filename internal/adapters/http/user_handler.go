package http

import (
	"errors"
	"net/http"

	"usermgmt/internal/adapters/http/middleware"
	"usermgmt/internal/adapters/http/request"
	"usermgmt/internal/adapters/http/response"
	"usermgmt/internal/adapters/http/validator"
	"usermgmt/internal/domain"
	"usermgmt/internal/logger"
)

const (
	MsgInvalidBody   = "Invalid request body"
	MsgUserNotFound  = "User not found"
	MsgEmailConflict = "Email already registered"
)

type UserHandler struct {
	svc       domain.UserService
	decoder   request.RequestDecoder
	validator validator.Validator
	writer    response.ResponseWriter
	log       logger.Logger
}

func NewUserHandler(svc domain.UserService, writer response.ResponseWriter, log logger.Logger) *UserHandler {
	return &UserHandler{
		svc:       svc,
		decoder:   request.NewJSONDecoder(),
		validator: validator.NewValidator(),
		writer:    writer,
		log:       log,
	}
}

func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, pageOK := GetInt(q, "page", domain.DefaultPage)
	size, sizeOK := GetInt(q, "size", domain.DefaultPageSize)

	var violations []validator.Violation
	if !pageOK {
		violations = append(violations, validator.IntParsing(validator.SourceQuery, "page"))
	}
	if !sizeOK {
		violations = append(violations, validator.IntParsing(validator.SourceQuery, "size"))
	}

	params := domain.PaginationParams{Page: page, Size: size}
	if len(violations) == 0 {
		violations = h.validator.Validate(params, validator.SourceQuery)
	}

	if len(violations) > 0 {
		h.writer.WriteValidationError(w, violations)
		return
	}

	result, err := h.svc.Get(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writer.Write(w, http.StatusOK, result)
}

func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writer.Write(w, http.StatusOK, user)
}

func (h *UserHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req domain.UserCreate
	if err := h.decoder.Decode(w, r, &req); err != nil {
		h.writer.WriteError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	req.Name = domain.NormalizeName(req.Name)
	req.Email = domain.NormalizeEmail(req.Email)

	if violations := h.validator.Validate(req, validator.SourceBody); len(violations) > 0 {
		h.writer.WriteValidationError(w, violations)
		return
	}

	user, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writer.Write(w, http.StatusCreated, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var req domain.UserUpdate
	if err := h.decoder.Decode(w, r, &req); err != nil {
		h.writer.WriteError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if req.Name != nil {
		name := domain.NormalizeName(*req.Name)
		req.Name = &name
	}
	if req.Email != nil {
		email := domain.NormalizeEmail(*req.Email)
		req.Email = &email
	}

	if violations := h.validator.Validate(req, validator.SourceBody); len(violations) > 0 {
		h.writer.WriteValidationError(w, violations)
		return
	}

	user, err := h.svc.Update(r.Context(), userID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writer.Write(w, http.StatusOK, user)
}

func (h *UserHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}

	h.writer.Write(w, http.StatusNoContent, nil)
}

// fail maps service errors to status codes. Unknown errors are logged and
// reported as a generic 500.
func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidUserID):
		h.writer.WriteError(w, http.StatusNotFound, MsgUserNotFound)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		h.writer.WriteError(w, http.StatusBadRequest, MsgEmailConflict)
	default:
		h.log.Error("user request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err,
		)
		h.writer.WriteError(w, http.StatusInternalServerError, response.MsgInternalError)
	}
}
