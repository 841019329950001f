package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/internal/domain/apperrors"
	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/pkg/response"
	"github.com/oksasatya/go-user-management/pkg/validation"
)

// UserHandler translates HTTP requests into use-case calls and domain errors
// into status codes. It is the only layer that knows about both gin and the
// apperrors code set.
type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

type updateUserRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

type userView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type userListView struct {
	Users []userView `json:"users"`
	Total int        `json:"total"`
}

func toView(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func toListView(users []*entity.User) userListView {
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toView(u))
	}
	return userListView{Users: views, Total: len(views)}
}

// errorPayload is the transport error shape: a human-readable message and a
// stable machine code.
type errorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func presentError(err error) errorPayload {
	return errorPayload{Error: err.Error(), Code: string(apperrors.CodeOf(err))}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Svc.CreateUser(c.Request.Context(), userapp.CreateUserInput{Email: req.Email, Name: req.Name})
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "failed to create user", presentError(err))
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusCreated, toView(u), "user created", nil)
	c.JSON(resp.Status, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp := response.Error[any](c, http.StatusNotFound, "user not found", presentError(err))
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, toView(u), "user", nil)
	c.JSON(resp.Status, resp)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list users failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "failed to list users", presentError(err))
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, toListView(users), "users", nil)
	c.JSON(resp.Status, resp)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Svc.UpdateUser(c.Request.Context(), c.Param("id"), userapp.UpdateUserInput{Email: req.Email, Name: req.Name})
	if err != nil {
		// 404 only for a missing user; validation and conflicts are 400.
		status := http.StatusBadRequest
		if apperrors.CodeOf(err) == apperrors.CodeUserNotFound {
			status = http.StatusNotFound
		}
		resp := response.Error[any](c, status, "failed to update user", presentError(err))
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, toView(u), "user updated", nil)
	c.JSON(resp.Status, resp)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		resp := response.Error[any](c, http.StatusNotFound, "user not found", presentError(err))
		c.JSON(resp.Status, resp)
		return
	}
	c.Status(http.StatusNoContent)
}
