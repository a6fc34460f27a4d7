package rest

import (
	"net/http"
	"time"

	"checkout-service/internal/dto"
	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	svc service.UserService
	log *zap.Logger
}

func NewUserHandler(svc service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	u, err := h.svc.RegisterUser(c.Request.Context(), service.RegisterUserInput{
		Email: req.Email,
		Role:  models.Role(req.Role),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	u, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) UpsertProfile(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	in := service.ProfileInput{FirstName: req.FirstName, LastName: req.LastName, Bio: req.Bio}
	if req.BirthDate != "" {
		bd, err := time.Parse(time.DateOnly, req.BirthDate)
		if err != nil {
			badRequest(c, h.log, "birth_date must be YYYY-MM-DD", err)
			return
		}
		in.BirthDate = &bd
	}
	p, err := h.svc.UpsertProfile(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(p))
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	if err := h.svc.DeactivateUser(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete refuses users that still own orders; deactivate those instead.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
