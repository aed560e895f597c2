package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pallavigowda6789-tech/attendance-system/models"
)

// LeaveService คือ state machine ของคำขอลา:
// PENDING -> APPROVED | REJECTED | CANCELLED (ปลายทางทั้งหมด เปลี่ยนต่อไม่ได้)
type LeaveService struct {
	db *gorm.DB
}

func NewLeaveService(db *gorm.DB) *LeaveService { return &LeaveService{db: db} }

// Request สร้างคำขอลาสถานะ PENDING
// กันช่วงทับซ้อนกับคำขอเดิมที่ยังไม่ถูก REJECTED/CANCELLED ด้วย interval test
// (existing.start <= new.end AND existing.end >= new.start) ใน transaction
// ที่ล็อกแถว user กันคำขอพร้อมกันของคนเดียวกัน
func (s *LeaveService) Request(userID uint, leaveType, start, end, reason string) (*models.Leave, error) {
	if !validLeaveType(leaveType) {
		return nil, invalidOp("unknown leave type: " + leaveType)
	}
	days, err := DaySpan(start, end)
	if err != nil {
		return nil, err
	}

	var leave models.Leave
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// serialize ต่อ user: FOR UPDATE บนแถว user (เฉพาะ dialect ที่รองรับ)
		q := tx.Model(&models.User{})
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var u models.User
		if err := q.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user")
			}
			return err
		}

		var n int64
		if err := tx.Model(&models.Leave{}).
			Where("user_id = ?", userID).
			Where("status NOT IN ?", []string{models.LeaveRejected, models.LeaveCancelled}).
			Where("start_date <= ? AND end_date >= ?", end, start).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrOverlappingLeave
		}

		leave = models.Leave{
			UserID:    userID,
			Type:      leaveType,
			StartDate: start,
			EndDate:   end,
			Days:      days,
			Reason:    reason,
			Status:    models.LeavePending,
		}
		return tx.Create(&leave).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[leave] user %d requested %s %s..%s (%d days)", userID, leaveType, start, end, days)
	return &leave, nil
}

// Cancel ยกเลิกได้เฉพาะเจ้าของคำขอ และเฉพาะสถานะ PENDING
func (s *LeaveService) Cancel(leaveID, actorID uint) (*models.Leave, error) {
	leave, err := s.GetByID(leaveID)
	if err != nil {
		return nil, err
	}
	if leave.UserID != actorID {
		return nil, ErrForbidden.msg("you can only cancel your own leave requests")
	}
	if leave.Terminal() {
		return nil, ErrInvalidTransition.msg("only pending leaves can be cancelled")
	}
	leave.Status = models.LeaveCancelled
	if err := s.db.Model(leave).Update("status", models.LeaveCancelled).Error; err != nil {
		return nil, err
	}
	return leave, nil
}

// Approve อนุมัติคำขอ PENDING — บันทึกผู้อนุมัติและ comment
// (behavior เดิมไม่ห้าม self-approval; คงไว้ตามนั้น)
func (s *LeaveService) Approve(leaveID, approverID uint, comment string) (*models.Leave, error) {
	return s.decide(leaveID, approverID, comment, models.LeaveApproved)
}

// Reject ปฏิเสธคำขอ PENDING
func (s *LeaveService) Reject(leaveID, approverID uint, comment string) (*models.Leave, error) {
	return s.decide(leaveID, approverID, comment, models.LeaveRejected)
}

func (s *LeaveService) decide(leaveID, approverID uint, comment, status string) (*models.Leave, error) {
	leave, err := s.GetByID(leaveID)
	if err != nil {
		return nil, err
	}
	if leave.Terminal() {
		return nil, ErrInvalidTransition.msg(fmt.Sprintf("only pending leaves can be %s", lowerStatus(status)))
	}
	leave.Status = status
	leave.ApproverID = &approverID
	leave.ApprovalComment = comment
	if err := s.db.Model(leave).Updates(map[string]any{
		"status":           status,
		"approver_id":      approverID,
		"approval_comment": comment,
	}).Error; err != nil {
		return nil, err
	}
	log.Printf("[leave] %d %s by user %d", leaveID, lowerStatus(status), approverID)
	return leave, nil
}

func lowerStatus(status string) string {
	if status == models.LeaveApproved {
		return "approved"
	}
	return "rejected"
}

func (s *LeaveService) GetByID(id uint) (*models.Leave, error) {
	var leave models.Leave
	if err := s.db.First(&leave, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("leave")
		}
		return nil, err
	}
	return &leave, nil
}

func (s *LeaveService) PendingCount() (int64, error) {
	var n int64
	err := s.db.Model(&models.Leave{}).
		Where("status = ?", models.LeavePending).Count(&n).Error
	return n, err
}

// AllPaginated เรียงตามเวลาสร้างล่าสุดก่อน
func (s *LeaveService) AllPaginated(page, size int) (Paged[models.Leave], error) {
	return s.paginate("", nil, page, size)
}

func (s *LeaveService) PendingPaginated(page, size int) (Paged[models.Leave], error) {
	return s.paginate("status = ?", []any{models.LeavePending}, page, size)
}

func (s *LeaveService) UserPaginated(userID uint, page, size int) (Paged[models.Leave], error) {
	return s.paginate("user_id = ?", []any{userID}, page, size)
}

// สร้าง query แยกรอบสำหรับ count กับ find — เลี่ยงการ reuse statement ของ GORM
func (s *LeaveService) paginate(cond string, args []any, page, size int) (Paged[models.Leave], error) {
	page, size = normalizePage(page, size)

	scoped := func() *gorm.DB {
		q := s.db.Model(&models.Leave{})
		if cond != "" {
			q = q.Where(cond, args...)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return Paged[models.Leave]{}, err
	}
	var leaves []models.Leave
	if err := scoped().Order("created_at DESC, id DESC").
		Offset(page * size).Limit(size).Find(&leaves).Error; err != nil {
		return Paged[models.Leave]{}, err
	}
	return NewPaged(leaves, page, size, total), nil
}

// StatsForUser: วันลาที่ใช้ไป = ผลรวม days ของคำขอ APPROVED ที่ start_date
// อยู่ในปีนั้น ส่วน count ราย status นับตลอดกาล (ไม่จำกัดปี)
func (s *LeaveService) StatsForUser(userID uint, year int) (*LeaveStats, error) {
	yearStart := fmt.Sprintf("%04d-01-01", year)
	yearEnd := fmt.Sprintf("%04d-12-31", year)

	var used int64
	if err := s.db.Model(&models.Leave{}).
		Where("user_id = ? AND status = ?", userID, models.LeaveApproved).
		Where("start_date >= ? AND start_date <= ?", yearStart, yearEnd).
		Select("COALESCE(SUM(days), 0)").Scan(&used).Error; err != nil {
		return nil, err
	}

	stats := LeaveStats{TotalDaysUsed: used}
	counts := []struct {
		status string
		dst    *int64
	}{
		{models.LeavePending, &stats.PendingRequests},
		{models.LeaveApproved, &stats.ApprovedRequests},
		{models.LeaveRejected, &stats.RejectedRequests},
	}
	for _, c := range counts {
		if err := s.db.Model(&models.Leave{}).
			Where("user_id = ? AND status = ?", userID, c.status).
			Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

func validLeaveType(t string) bool {
	for _, lt := range models.AllLeaveTypes() {
		if t == lt {
			return true
		}
	}
	return false
}
