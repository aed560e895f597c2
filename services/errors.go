package services

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error คือ domain error ของ core engine — handler ใช้ Status/Num map เป็น
// response envelope ได้ตรง ๆ โดยไม่ต้องแกะข้อความ
type Error struct {
	Code    string // ค่าคงที่แบบ SCREAMING_CASE ไว้เทียบในโค้ด/เทสต์
	Num     int    // errorCode ใน envelope
	Status  int    // HTTP status ที่ควรตอบ
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is เทียบด้วย Code อย่างเดียว ให้ errors.Is ใช้กับ error ที่แก้ message แล้วได้
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// msg คืนสำเนาที่เปลี่ยนเฉพาะข้อความ
func (e *Error) msg(m string) *Error {
	cp := *e
	cp.Message = m
	return &cp
}

var (
	ErrMissingEmail      = &Error{Code: "MISSING_EMAIL", Num: 4010, Status: http.StatusUnauthorized, Message: "email not provided by OAuth provider"}
	ErrUnauthenticated   = &Error{Code: "UNAUTHENTICATED", Num: 4011, Status: http.StatusUnauthorized, Message: "authentication required"}
	ErrForbidden         = &Error{Code: "FORBIDDEN", Num: 4030, Status: http.StatusForbidden, Message: "operation not allowed"}
	ErrSelfAction        = &Error{Code: "SELF_ACTION_FORBIDDEN", Num: 4031, Status: http.StatusForbidden, Message: "cannot perform this action on your own account"}
	ErrNotFound          = &Error{Code: "RESOURCE_NOT_FOUND", Num: 4040, Status: http.StatusNotFound, Message: "resource not found"}
	ErrDuplicateIdentity = &Error{Code: "DUPLICATE_IDENTITY", Num: 4090, Status: http.StatusConflict, Message: "username or email already exists"}
	ErrAlreadyMarked     = &Error{Code: "ALREADY_MARKED", Num: 4091, Status: http.StatusConflict, Message: "attendance already marked for this date"}
	ErrAlreadyCheckedOut = &Error{Code: "ALREADY_CHECKED_OUT", Num: 4092, Status: http.StatusBadRequest, Message: "already checked out for today"}
	ErrInvalidRange      = &Error{Code: "INVALID_RANGE", Num: 4000, Status: http.StatusBadRequest, Message: "end date must be on or after start date"}
	ErrOverlappingLeave  = &Error{Code: "OVERLAPPING_LEAVE", Num: 4001, Status: http.StatusBadRequest, Message: "you already have a leave request for these dates"}
	ErrInvalidTransition = &Error{Code: "INVALID_TRANSITION", Num: 4002, Status: http.StatusBadRequest, Message: "only pending leaves can change state"}
	ErrInvalidOperation  = &Error{Code: "INVALID_OPERATION", Num: 4003, Status: http.StatusBadRequest, Message: "invalid operation"}
	ErrInternal          = &Error{Code: "INTERNAL", Num: 5000, Status: http.StatusInternalServerError, Message: "internal error"}
)

func notFound(what string) *Error {
	return ErrNotFound.msg(what + " not found")
}

func invalidOp(m string) *Error {
	return ErrInvalidOperation.msg(m)
}

// isUniqueViolation ตรวจ duplicate key จาก storage — ทั้งทาง TranslateError ของ
// GORM และทาง SQLSTATE 23505 ของ Postgres ตรง ๆ
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
