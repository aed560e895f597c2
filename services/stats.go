package services

import (
	"math"
	"time"

	"github.com/pallavigowda6789-tech/attendance-system/models"
)

// ฟังก์ชัน pure สำหรับยุบ record เป็นตัวเลขสรุป — ฝั่ง attendance กับ leave
// ใช้เลขคณิตชุดเดียวกัน การปัดทศนิยมทำครั้งเดียวตอนจบ ไม่สะสมระหว่างทาง

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func today() string {
	return time.Now().Format(dateLayout)
}

// DaySpan นับจำนวนวันแบบรวมปลายทั้งสองด้าน — คืน ErrInvalidRange
// เมื่อ end มาก่อน start หรือรูปแบบวันที่ผิด
func DaySpan(start, end string) (int, error) {
	s, err := parseDate(start)
	if err != nil {
		return 0, ErrInvalidRange.msg("start date must be YYYY-MM-DD")
	}
	e, err := parseDate(end)
	if err != nil {
		return 0, ErrInvalidRange.msg("end date must be YYYY-MM-DD")
	}
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// Round2 คือกติกาปัดเดียวของทั้งระบบ: ทศนิยม 2 ตำแหน่ง
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

type AttendanceStats struct {
	TotalDays   int64   `json:"total_days"`
	PresentDays int64   `json:"present_days"`
	AbsentDays  int64   `json:"absent_days"`
	Percentage  float64 `json:"percentage"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

// SummarizeAttendance ยุบ record เป็นสถิติ — totalDays == 0 ให้ percentage 0.0
// ไม่มีทางหารศูนย์
func SummarizeAttendance(records []models.Attendance, start, end string) AttendanceStats {
	var present int64
	for _, r := range records {
		if r.Present {
			present++
		}
	}
	total := int64(len(records))
	pct := 0.0
	if total > 0 {
		pct = Round2(float64(present) / float64(total) * 100)
	}
	return AttendanceStats{
		TotalDays:   total,
		PresentDays: present,
		AbsentDays:  total - present,
		Percentage:  pct,
		StartDate:   start,
		EndDate:     end,
	}
}

type LeaveStats struct {
	TotalDaysUsed    int64 `json:"total_days_used"`
	PendingRequests  int64 `json:"pending_requests"`
	ApprovedRequests int64 `json:"approved_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
}

// monthWindow คืนวันแรก-วันสุดท้ายของเดือนปัจจุบัน (ค่า default ของ getStats)
func monthWindow(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}
