package handlers

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pallavigowda6789-tech/attendance-system/models"
	"github.com/pallavigowda6789-tech/attendance-system/services"
)

// AdminHandler รวมงานหลังบ้าน: จัดการบัญชี + ดู/แก้ attendance ของทุกคน
type AdminHandler struct {
	users      *services.UserService
	attendance *services.AttendanceService
	leaves     *services.LeaveService
}

func NewAdminHandler(users *services.UserService, attendance *services.AttendanceService, leaves *services.LeaveService) *AdminHandler {
	return &AdminHandler{users: users, attendance: attendance, leaves: leaves}
}

/* ====================== Users ====================== */

// GET /api/admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.GetAllUsers()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "users", users)
}

// POST /api/admin/users — admin สร้างบัญชี LOCAL ให้พนักงาน
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}
	u, err := h.users.RegisterLocalUser(services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, "user created", u)
}

type updateRoleReq struct {
	Role string `json:"role" validate:"required"`
}

// PUT /api/admin/users/:id/role
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}
	u, err := h.users.UpdateRole(id, strings.ToUpper(strings.TrimSpace(req.Role)))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "role updated", u)
}

// PUT /api/admin/users/:id/toggle-status — ห้ามปิดบัญชีตัวเอง
func (h *AdminHandler) ToggleUserStatus(c echo.Context) error {
	uid, _ := currentUser(c)
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	u, err := h.users.ToggleEnabled(id, uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "status toggled", u)
}

// POST /api/admin/users/:id/reset-password — คืน one-time password
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	plain, err := h.users.AdminResetPassword(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "password reset", map[string]string{"one_time_password": plain})
}

// DELETE /api/admin/users/:id — ห้ามลบบัญชีตัวเอง
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	uid, _ := currentUser(c)
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	if err := h.users.DeleteUser(id, uid); err != nil {
		return fail(c, err)
	}
	return ok(c, "user deleted", nil)
}

/* ====================== Attendance ====================== */

// GET /api/admin/attendance?page=&size=
func (h *AdminHandler) AllAttendance(c echo.Context) error {
	paged, err := h.attendance.AllPaginated(atoiOr(c.QueryParam("page"), 0), atoiOr(c.QueryParam("size"), 10))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "attendance", paged)
}

// GET /api/admin/attendance/user/:id
func (h *AdminHandler) UserAttendance(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	records, err := h.attendance.ListByUser(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "records", records)
}

// GET /api/admin/attendance/user/:id/stats?start=&end=
func (h *AdminHandler) UserAttendanceStats(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	stats, err := h.attendance.Stats(id, c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "stats", stats)
}

// DELETE /api/admin/attendance/:id
func (h *AdminHandler) DeleteAttendance(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	if err := h.attendance.Delete(id); err != nil {
		return fail(c, err)
	}
	return ok(c, "attendance record deleted", nil)
}

type adminMarkReq struct {
	UserID  uint   `json:"user_id" validate:"required"`
	Date    string `json:"date"` // ว่าง = วันนี้
	Present *bool  `json:"present"`
	Notes   string `json:"notes"`
}

// POST /api/admin/attendance/mark — mark แทนพนักงาน ระบุวันที่ย้อนหลังได้
func (h *AdminHandler) MarkAttendance(c echo.Context) error {
	var req adminMarkReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}
	present := true
	if req.Present != nil {
		present = *req.Present
	}
	rec, err := h.attendance.Mark(req.UserID, req.Date, present, strings.TrimSpace(req.Notes))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "attendance marked successfully", rec)
}

/* ====================== Stats ====================== */

// GET /api/admin/stats — ตัวเลขรวมหน้า dashboard
func (h *AdminHandler) SystemStats(c echo.Context) error {
	users, err := h.users.GetAllUsers()
	if err != nil {
		return fail(c, err)
	}
	pending, err := h.leaves.PendingCount()
	if err != nil {
		return fail(c, err)
	}

	var active, admins, managers int64
	for _, u := range users {
		if u.Enabled {
			active++
		}
		switch u.Role {
		case models.RoleAdmin:
			admins++
		case models.RoleManager:
			managers++
		}
	}
	total := int64(len(users))
	return ok(c, "system stats", map[string]int64{
		"totalUsers":    total,
		"activeUsers":   active,
		"adminCount":    admins,
		"managerCount":  managers,
		"userCount":     total - admins - managers,
		"pendingLeaves": pending,
	})
}

// GET /api/admin/attendance/summary?start=&end= — สถิติรายคนในหนึ่งหน้า
func (h *AdminHandler) AttendanceSummary(c echo.Context) error {
	users, err := h.users.GetAllUsers()
	if err != nil {
		return fail(c, err)
	}
	start := c.QueryParam("start")
	end := c.QueryParam("end")

	summary := make([]map[string]any, 0, len(users))
	for _, u := range users {
		stats, err := h.attendance.Stats(u.ID, start, end)
		if err != nil {
			return fail(c, err)
		}
		summary = append(summary, map[string]any{
			"userId":   u.ID,
			"username": u.Username,
			"fullName": u.FullName(),
			"stats":    stats,
		})
	}
	return ok(c, "attendance summary", summary)
}
