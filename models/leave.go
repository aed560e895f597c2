package models

import "time"

// สถานะคำขอลา — PENDING เปลี่ยนได้ทางเดียว ที่เหลือเป็นสถานะปลายทาง
const (
	LeavePending   = "PENDING"
	LeaveApproved  = "APPROVED"
	LeaveRejected  = "REJECTED"
	LeaveCancelled = "CANCELLED"
)

// ประเภทการลา
const (
	LeaveTypeAnnual    = "ANNUAL"
	LeaveTypeSick      = "SICK"
	LeaveTypePersonal  = "PERSONAL"
	LeaveTypeMaternity = "MATERNITY"
	LeaveTypePaternity = "PATERNITY"
	LeaveTypeUnpaid    = "UNPAID"
	LeaveTypeOther     = "OTHER"
)

// AllLeaveTypes ตามลำดับที่แสดงใน FE
func AllLeaveTypes() []string {
	return []string{
		LeaveTypeAnnual, LeaveTypeSick, LeaveTypePersonal,
		LeaveTypeMaternity, LeaveTypePaternity, LeaveTypeUnpaid, LeaveTypeOther,
	}
}

type Leave struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Type      string `json:"type" gorm:"size:20;not null"`
	StartDate string `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate   string `json:"end_date" gorm:"size:10;not null"`   // YYYY-MM-DD
	Days      int    `json:"days" gorm:"not null"`               // ช่วงวันแบบรวมปลายทั้งสองด้าน
	Reason    string `json:"reason" gorm:"type:text"`
	Status    string `json:"status" gorm:"size:20;not null;index"`

	ApproverID      *uint  `json:"approver_id"` // user_id ของผู้อนุมัติ/ปฏิเสธ
	ApprovalComment string `json:"approval_comment" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Terminal รายงานว่าสถานะนี้เปลี่ยนต่อไม่ได้แล้ว
func (l *Leave) Terminal() bool {
	return l.Status != LeavePending
}
