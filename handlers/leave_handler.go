package handlers

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pallavigowda6789-tech/attendance-system/models"
	"github.com/pallavigowda6789-tech/attendance-system/services"
)

type LeaveHandler struct {
	leaves *services.LeaveService
}

func NewLeaveHandler(leaves *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

type leaveRequestReq struct {
	Type      string `json:"type" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason"`
}

type decisionReq struct {
	Comment string `json:"comment"`
}

// GET /api/leaves/types
func (h *LeaveHandler) Types(c echo.Context) error {
	return ok(c, "leave types", models.AllLeaveTypes())
}

// POST /api/leaves/request
func (h *LeaveHandler) Request(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	var req leaveRequestReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}
	leave, err := h.leaves.Request(uid, req.Type, req.StartDate, req.EndDate, strings.TrimSpace(req.Reason))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "leave requested successfully", leave)
}

// GET /api/leaves/my-leaves?page=&size=
func (h *LeaveHandler) MyLeaves(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	paged, err := h.leaves.UserPaginated(uid, atoiOr(c.QueryParam("page"), 0), atoiOr(c.QueryParam("size"), 10))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "leaves", paged)
}

// GET /api/leaves/my-stats?year=
func (h *LeaveHandler) MyStats(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	year := atoiOr(c.QueryParam("year"), time.Now().Year())
	stats, err := h.leaves.StatsForUser(uid, year)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "leave stats", stats)
}

// GET /api/leaves/:id
func (h *LeaveHandler) GetByID(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	leave, err := h.leaves.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "leave", leave)
}

// PUT /api/leaves/:id/cancel — เจ้าของคำขอเท่านั้น
func (h *LeaveHandler) Cancel(c echo.Context) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	leave, err := h.leaves.Cancel(id, uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "leave cancelled", leave)
}

/* ====================== Admin/Manager ====================== */

// GET /api/leaves/all?page=&size=
func (h *LeaveHandler) All(c echo.Context) error {
	paged, err := h.leaves.AllPaginated(atoiOr(c.QueryParam("page"), 0), atoiOr(c.QueryParam("size"), 10))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "leaves", paged)
}

// GET /api/leaves/pending?page=&size=
func (h *LeaveHandler) Pending(c echo.Context) error {
	paged, err := h.leaves.PendingPaginated(atoiOr(c.QueryParam("page"), 0), atoiOr(c.QueryParam("size"), 10))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "pending leaves", paged)
}

// GET /api/leaves/pending-count — FE ใช้ทำ badge
func (h *LeaveHandler) PendingCount(c echo.Context) error {
	n, err := h.leaves.PendingCount()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "pending count", map[string]int64{"count": n})
}

// PUT /api/leaves/:id/approve
func (h *LeaveHandler) Approve(c echo.Context) error {
	return h.decide(c, h.leaves.Approve, "leave approved")
}

// PUT /api/leaves/:id/reject
func (h *LeaveHandler) Reject(c echo.Context) error {
	return h.decide(c, h.leaves.Reject, "leave rejected")
}

func (h *LeaveHandler) decide(c echo.Context, fn func(uint, uint, string) (*models.Leave, error), msg string) error {
	uid, _ := currentUser(c)
	if uid == 0 {
		return fail(c, services.ErrUnauthenticated)
	}
	id := pathID(c)
	if id == 0 {
		return badRequest(c, "INVALID_ID")
	}
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	leave, err := fn(id, uid, strings.TrimSpace(req.Comment))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, msg, leave)
}
