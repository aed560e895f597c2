package handlers

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pallavigowda6789-tech/attendance-system/services"
)

type AttendanceHandler struct {
	attendance *services.AttendanceService
}

func NewAttendanceHandler(attendance *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type markAttendanceReq struct {
	Present *bool  `json:"present"`
	Notes   string `json:"notes"`
}

// POST /api/attendance/mark — mark ของ "วันนี้" ให้ตัวเอง
func (h *AttendanceHandler) Mark(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}

	var req markAttendanceReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	present := true
	if req.Present != nil {
		present = *req.Present
	}

	rec, err := h.attendance.Mark(uid, "", present, strings.TrimSpace(req.Notes))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "attendance marked successfully", rec)
}

// PUT /api/attendance/checkout
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	rec, err := h.attendance.CheckOut(uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "checked out successfully", rec)
}

// GET /api/attendance/my-stats?start=YYYY-MM-DD&end=YYYY-MM-DD
// ไม่ส่งช่วงมา = เดือนปัจจุบันทั้งเดือน
func (h *AttendanceHandler) MyStats(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	stats, err := h.attendance.Stats(uid, c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "stats", stats)
}

// GET /api/attendance/my-records?page=&size=
func (h *AttendanceHandler) MyRecords(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	page := atoiOr(c.QueryParam("page"), 0)
	size := atoiOr(c.QueryParam("size"), 10)
	paged, err := h.attendance.UserPaginated(uid, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "records", paged)
}

// GET /api/attendance/range?userId=&start=&end=
func (h *AttendanceHandler) Range(c echo.Context) error {
	userID := uint(atoiOr(c.QueryParam("userId"), 0))
	if userID == 0 {
		uid, _ := currentUser(c)
		userID = uid
	}
	records, err := h.attendance.ListByRange(userID, c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "records", records)
}

// GET /api/attendance/user/:id
func (h *AttendanceHandler) ByUser(c echo.Context) error {
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

// GET /api/attendance/today — record ของวันนี้ (null ถ้ายังไม่ mark)
func (h *AttendanceHandler) Today(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	rec, err := h.attendance.TodayForUser(uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "today", rec)
}

// GET /api/attendance/check-today — FE ใช้โชว์ปุ่ม mark/checkout
func (h *AttendanceHandler) CheckToday(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	marked, err := h.attendance.CheckedToday(uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "checked", map[string]bool{"marked": marked})
}
