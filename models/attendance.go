package models

import "time"

// บันทึกการมา/ขาดงานรายวัน — 1 แถวต่อ (user, date) บังคับด้วย unique index
type Attendance struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"user_id" gorm:"not null;uniqueIndex:uk_attendance_user_date;index"`
	Date   string `json:"date" gorm:"size:10;not null;uniqueIndex:uk_attendance_user_date"` // YYYY-MM-DD

	Present      bool       `json:"present" gorm:"not null;default:true"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Notes        string     `json:"notes" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
