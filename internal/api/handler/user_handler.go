package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neuronet-health/neuronet/internal/core/ports"
	"github.com/neuronet-health/neuronet/pkg/roles"
)

// UserHandler serves role-scoped user listings.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// ListPatients handles GET /therapist/patients — active accounts with the
// "user" role visible to therapists. Route-level RBAC guarantees the caller
// is a therapist before this runs.
//
// @Summary      List patients
// @Tags         therapist
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   userResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /therapist/patients [get]
func (h *UserHandler) ListPatients(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	patients, err := h.users.ListActiveByRole(c.Request().Context(), string(roles.User))
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(patients))
	for i := range patients {
		out = append(out, toUserResponse(&patients[i]))
	}
	return c.JSON(http.StatusOK, out)
}
