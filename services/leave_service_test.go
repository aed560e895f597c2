package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pallavigowda6789-tech/attendance-system/models"
)

func TestRequestLeave(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(db)
	u := seedUser(t, db)

	leave, err := svc.Request(u.ID, models.LeaveTypeAnnual, "2024-03-01", "2024-03-05", "vacation")
	require.NoError(t, err)
	assert.Equal(t, models.LeavePending, leave.Status)
	assert.Equal(t, 5, leave.Days)
	assert.Nil(t, leave.ApproverID)
}

func TestRequestLeaveValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(db)
	u := seedUser(t, db)

	_, err := svc.Request(u.ID, "SABBATICAL", "2024-03-01", "2024-03-05", "")
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = svc.Request(u.ID, models.LeaveTypeSick, "2024-01-10", "2024-01-05", "")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.Request(9999, models.LeaveTypeSick, "2024-03-01", "2024-03-05", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestLeaveOverlap(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(db)
	u := seedUser(t, db)
	approver := seedUser(t, db)

	first, err := svc.Request(u.ID, models.LeaveTypeAnnual, "2024-03-01", "2024-03-05", "")
	require.NoError(t, err)
	_, err = svc.Approve(first.ID, approver.ID, "ok")
	require.NoError(t, err)

	// [03-04..03-10] ทับกับ [03-01..03-05] ที่ APPROVED แล้ว
	_, err = svc.Request(u.ID, models.LeaveTypeSick, "2024-03-04", "2024-03-10", "")
	assert.ErrorIs(t, err, ErrOverlappingLeave)

	// ชนขอบพอดี (end เดิม = start ใหม่) ก็ยังทับ
	_, err = svc.Request(u.ID, models.LeaveTypeSick, "2024-03-05", "2024-03-07", "")
	assert.ErrorIs(t, err, ErrOverlappingLeave)

	// ถัดจากช่วงเดิมหนึ่งวัน ผ่าน
	_, err = svc.Request(u.ID, models.LeaveTypeSick, "2024-03-06", "2024-03-10", "")
	assert.NoError(t, err)
}

func TestRequestOverlapIgnoresRejectedAndCancelled(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(db)
	u := seedUser(t, db)
	approver := seedUser(t, db)

	first, err := svc.Request(u.ID, models.LeaveTypeAnnual, "2024-03-01", "2024-03-05", "")
	require.NoError(t, err)
	_, err = svc.Reject(first.ID, approver.ID, "no")
	require.NoError(t, err)

	// ช่วงเดิมว่างแล้ว เพราะคำขอก่อนหน้าถูกปฏิเสธ
	second, err := svc.Request(u.ID, models.LeaveTypeAnnual, "2024-03-01", "2024-03-05", "")
	require.NoError(t, err)

	_, err = svc.Cancel(second.ID, u.ID)
	require.NoError(t, err)

	_, err = svc.Request(u.ID, models.LeaveTypeAnnual, "2024-03-01", "2024-03-05", "")
	assert.NoError(t, err)

	// คนละ user ช่วงเดียวกัน ไม่เกี่ยวกัน
	other := seedUser(t, db)
	_, err = svc.Request(other.ID, models.LeaveTypeAnnual, "2024-03-01", "2024-03-05", "")
	assert.NoError(t, err)
}

func TestCancelLeave(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(db)
	u := seedUser(t, db)
	stranger := seedUser(t, db)

	leave, err := svc.Request(u.ID, models.LeaveTypePersonal, "2024-03-01", "2024-03-02", "")
	require.NoError(t, err)

	// คนอื่นยกเลิกแทนไม่ได้
	_, err = svc.Cancel(leave.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Cancel(leave.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveCancelled, got.Status)

	// CANCELLED เป็นสถานะปลายทาง
	_, err = svc.Cancel(leave.ID, u.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApproveRejectTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(db)
	u := seedUser(t, db)
	approver := seedUser(t, db)

	leave, err := svc.Request(u.ID, models.LeaveTypeSick, "2024-03-01", "2024-03-02", "flu")
	require.NoError(t, err)

	got, err := svc.Approve(leave.ID, approver.ID, "get well")
	require.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, got.Status)
	require.NotNil(t, got.ApproverID)
	assert.Equal(t, approver.ID, *got.ApproverID)
	assert.Equal(t, "get well", got.ApprovalComment)

	// อนุมัติแล้วจะ reject/cancel ต่อไม่ได้
	_, err = svc.Reject(leave.ID, approver.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.Cancel(leave.ID, u.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Approve(9999, approver.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPendingCountAndPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(db)
	u := seedUser(t, db)
	approver := seedUser(t, db)

	l1, err := svc.Request(u.ID, models.LeaveTypeAnnual, "2024-03-01", "2024-03-02", "")
	require.NoError(t, err)
	_, err = svc.Request(u.ID, models.LeaveTypeAnnual, "2024-04-01", "2024-04-02", "")
	require.NoError(t, err)

	n, err := svc.PendingCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.Approve(l1.ID, approver.ID, "")
	require.NoError(t, err)

	n, err = svc.PendingCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	pending, err := svc.PendingPaginated(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.TotalElements)

	all, err := svc.AllPaginated(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalElements)

	mine, err := svc.UserPaginated(u.ID, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalElements)
	assert.Len(t, mine.Content, 1)
	assert.True(t, mine.HasNext)
}

func TestLeaveStatsForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(db)
	u := seedUser(t, db)
	approver := seedUser(t, db)

	// 5 วัน APPROVED ในปี 2024
	l1, err := svc.Request(u.ID, models.LeaveTypeAnnual, "2024-03-01", "2024-03-05", "")
	require.NoError(t, err)
	_, err = svc.Approve(l1.ID, approver.ID, "")
	require.NoError(t, err)

	// 2 วัน APPROVED ปี 2023 — ไม่นับใน total ปี 2024
	l2, err := svc.Request(u.ID, models.LeaveTypeSick, "2023-06-01", "2023-06-02", "")
	require.NoError(t, err)
	_, err = svc.Approve(l2.ID, approver.ID, "")
	require.NoError(t, err)

	// PENDING กับ REJECTED ไม่นับวัน
	_, err = svc.Request(u.ID, models.LeaveTypePersonal, "2024-07-01", "2024-07-03", "")
	require.NoError(t, err)
	l4, err := svc.Request(u.ID, models.LeaveTypeUnpaid, "2024-08-01", "2024-08-02", "")
	require.NoError(t, err)
	_, err = svc.Reject(l4.ID, approver.ID, "")
	require.NoError(t, err)

	stats, err := svc.StatsForUser(u.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalDaysUsed)
	assert.Equal(t, int64(1), stats.PendingRequests)
	assert.Equal(t, int64(2), stats.ApprovedRequests) // count ราย status นับตลอดกาล
	assert.Equal(t, int64(1), stats.RejectedRequests)
}
