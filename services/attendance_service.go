package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pallavigowda6789-tech/attendance-system/models"
)

// AttendanceService ดูแลบันทึกมา/ขาดงานรายวัน
// กติกาหลัก: 1 แถวต่อ (user, date) — ซ้ำคือ error ไม่ใช่ upsert
type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService { return &AttendanceService{db: db} }

// Mark บันทึกการมางานของวันนั้น — check-in จะถูก stamp เฉพาะตอน present=true
// การเช็ค exists เป็นแค่ fast path; ตัวตัดสินจริงคือ unique index (user_id, date)
func (s *AttendanceService) Mark(userID uint, date string, present bool, notes string) (*models.Attendance, error) {
	if date == "" {
		date = today()
	}
	if _, err := parseDate(date); err != nil {
		return nil, invalidOp("date must be YYYY-MM-DD")
	}
	if _, err := s.userByID(userID); err != nil {
		return nil, err
	}

	var rec models.Attendance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Attendance{}).
			Where("user_id = ? AND date = ?", userID, date).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyMarked
		}

		rec = models.Attendance{
			UserID:  userID,
			Date:    date,
			Present: present,
			Notes:   notes,
		}
		if present {
			now := time.Now()
			rec.CheckInTime = &now
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyMarked
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CheckOut ปิดวันของ "วันนี้" — ต้องมี record อยู่แล้ว และยังไม่เคย check-out
func (s *AttendanceService) CheckOut(userID uint) (*models.Attendance, error) {
	var rec models.Attendance
	err := s.db.Where("user_id = ? AND date = ?", userID, today()).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("attendance record for today")
		}
		return nil, err
	}
	if rec.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}
	now := time.Now()
	rec.CheckOutTime = &now
	if err := s.db.Model(&rec).Update("check_out_time", &now).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Stats สรุปช่วง [start, end]; ว่างทั้งคู่ = เดือนปัจจุบันทั้งเดือน
func (s *AttendanceService) Stats(userID uint, start, end string) (*AttendanceStats, error) {
	if _, err := s.userByID(userID); err != nil {
		return nil, err
	}
	if start == "" || end == "" {
		start, end = monthWindow(time.Now())
	}
	if _, err := DaySpan(start, end); err != nil {
		return nil, err
	}
	var records []models.Attendance
	if err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Find(&records).Error; err != nil {
		return nil, err
	}
	stats := SummarizeAttendance(records, start, end)
	return &stats, nil
}

// ListByUser คืนทุก record ของ user เรียงวันที่ล่าสุดก่อน
func (s *AttendanceService) ListByUser(userID uint) ([]models.Attendance, error) {
	if _, err := s.userByID(userID); err != nil {
		return nil, err
	}
	var records []models.Attendance
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").Find(&records).Error
	return records, err
}

func (s *AttendanceService) ListByRange(userID uint, start, end string) ([]models.Attendance, error) {
	if _, err := s.userByID(userID); err != nil {
		return nil, err
	}
	if _, err := DaySpan(start, end); err != nil {
		return nil, err
	}
	var records []models.Attendance
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").Find(&records).Error
	return records, err
}

// TodayForUser คืน record ของวันนี้ หรือ nil ถ้ายังไม่ได้ mark
func (s *AttendanceService) TodayForUser(userID uint) (*models.Attendance, error) {
	var rec models.Attendance
	err := s.db.Where("user_id = ? AND date = ?", userID, today()).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *AttendanceService) CheckedToday(userID uint) (bool, error) {
	rec, err := s.TodayForUser(userID)
	return rec != nil, err
}

func (s *AttendanceService) Delete(id uint) error {
	var rec models.Attendance
	if err := s.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("attendance record")
		}
		return err
	}
	return s.db.Delete(&rec).Error
}

// AllPaginated สำหรับหน้า admin — เรียง date แล้วตามด้วยเวลา check-in
func (s *AttendanceService) AllPaginated(page, size int) (Paged[models.Attendance], error) {
	page, size = normalizePage(page, size)

	var total int64
	if err := s.db.Model(&models.Attendance{}).Count(&total).Error; err != nil {
		return Paged[models.Attendance]{}, err
	}
	var records []models.Attendance
	if err := s.db.Order("date DESC, check_in_time DESC").
		Offset(page * size).Limit(size).Find(&records).Error; err != nil {
		return Paged[models.Attendance]{}, err
	}
	return NewPaged(records, page, size, total), nil
}

// UserPaginated คืนหน้า records ของ user เดียว (my-records)
func (s *AttendanceService) UserPaginated(userID uint, page, size int) (Paged[models.Attendance], error) {
	page, size = normalizePage(page, size)

	var total int64
	if err := s.db.Model(&models.Attendance{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return Paged[models.Attendance]{}, err
	}
	var records []models.Attendance
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").Offset(page * size).Limit(size).Find(&records).Error; err != nil {
		return Paged[models.Attendance]{}, err
	}
	return NewPaged(records, page, size, total), nil
}

func (s *AttendanceService) userByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, err
	}
	return &u, nil
}
