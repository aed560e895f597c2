package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/pallavigowda6789-tech/attendance-system/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type profileUpdateReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type linkAccountReq struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// GET /api/users/profile
func (h *UserHandler) Profile(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	u, err := h.users.GetUserByID(uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "profile", u)
}

// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}
	u, err := h.users.UpdateProfile(uid, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "profile updated", u)
}

// PUT /api/users/change-password — บัญชี LOCAL เท่านั้น
func (h *UserHandler) ChangePassword(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}
	if err := h.users.ChangePassword(uid, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return fail(c, err)
	}
	return ok(c, "password changed successfully", nil)
}

// POST /api/users/link-account — ตั้งรหัสผ่านให้บัญชี OAuth แล้วแปลงเป็น LOCAL
func (h *UserHandler) LinkAccount(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	var req linkAccountReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}
	if err := h.users.LinkOAuthAccount(uid, req.Password, req.ConfirmPassword); err != nil {
		return fail(c, err)
	}
	return ok(c, "local credentials added", nil)
}

// GET /api/users/:id
func (h *UserHandler) GetByID(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	u, err := h.users.GetUserByID(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "user", u)
}
