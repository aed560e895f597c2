package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pallavigowda6789-tech/attendance-system/services"
)

// APIResponse คือ envelope เดียวของทุก endpoint —
// ตอบ success จะไม่มี error/errorCode, ตอบ error จะไม่มี data
type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
	ErrorCode int       `json:"errorCode,omitempty"`
}

func ok(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func created(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// fail map domain error เป็น envelope; error ที่ไม่รู้จักตอบ 500 แบบกลาง ๆ
// ไม่หลุดรายละเอียดภายในออกไปหา caller
func fail(c echo.Context, err error) error {
	var derr *services.Error
	if errors.As(err, &derr) {
		return c.JSON(derr.Status, APIResponse{
			Success:   false,
			Message:   derr.Message,
			Timestamp: time.Now(),
			Error:     derr.Message,
			ErrorCode: derr.Num,
		})
	}
	log.Printf("[http] unclassified error: %v", err)
	return c.JSON(http.StatusInternalServerError, APIResponse{
		Success:   false,
		Message:   "internal error",
		Timestamp: time.Now(),
		Error:     "internal error",
		ErrorCode: 5000,
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Success:   false,
		Message:   msg,
		Timestamp: time.Now(),
		Error:     msg,
		ErrorCode: 4003,
	})
}
