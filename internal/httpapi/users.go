package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"userService/models"
	"userService/repository"
)

const (
	msgNotFound  = "User not found"
	msgConflict  = "User already exists"
	msgBadID     = "Invalid user id"
	msgInternal  = "Internal server error"
	msgDeleted   = "User deleted"
	msgDeleteAll = "All users deleted"
)

// UserHandler serves the /users resource on top of an injected store.
type UserHandler struct {
	store repository.UserStore
	log   zerolog.Logger
}

func NewUserHandler(store repository.UserStore, logger zerolog.Logger) *UserHandler {
	return &UserHandler{store: store, log: logger}
}

// Pointers tell an absent field apart from a zero one.
type createUserRequest struct {
	ID   *int64  `json:"id" binding:"required"`
	Name *string `json:"name" binding:"required"`
	Age  *int64  `json:"age" binding:"required"`
}

type updateUserRequest struct {
	Name *string `json:"name" binding:"required"`
	Age  *int64  `json:"age" binding:"required"`
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindBody(c, &req) {
		return
	}
	u, err := h.store.Create(c.Request.Context(), &models.User{ID: *req.ID, Name: *req.Name, Age: *req.Age})
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !bindBody(c, &req) {
		return
	}
	u, err := h.store.Update(c.Request.Context(), id, *req.Name, *req.Age)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}

// DeleteAll handles DELETE /users.
func (h *UserHandler) DeleteAll(c *gin.Context) {
	n, err := h.store.DeleteAll(c.Request.Context())
	if err != nil {
		h.fail(c, "delete_all", err)
		return
	}
	h.log.Info().Int64("deleted", n).Msg("all users deleted")
	c.JSON(http.StatusOK, gin.H{"message": msgDeleteAll})
}

// Health handles GET /healthz.
func (h *UserHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail maps store errors to responses. Anything unexpected is logged and
// reported as a bare 500.
func (h *UserHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, repository.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"error": msgConflict})
	default:
		_ = c.Error(err)
		h.log.Error().Err(err).Str("op", op).Msg("user store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

// pathID parses the {id} segment. Negative ids are valid since clients pick
// them; an explicit "+" sign is not.
func pathID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || strings.HasPrefix(raw, "+") {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBadID})
		return 0, false
	}
	return id, true
}
