package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// แปลง string -> int; ถ้าแปลงไม่ได้ให้คืนค่าเริ่มต้น
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// currentUser อ่าน identity ที่ JWT middleware แนบไว้ใน context
func currentUser(c echo.Context) (uid uint, role string) {
	role, _ = c.Get("role").(string)
	switch v := c.Get("user_id").(type) {
	case uint:
		uid = v
	case int:
		uid = uint(v)
	}
	return
}

// pathID อ่าน :id จาก path — 0 แปลว่าใช้ไม่ได้
func pathID(c echo.Context) uint {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id64)
}

// Validator ต่อ go-playground/validator เข้ากับ echo.Context#Validate
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

func (val *Validator) Validate(i any) error {
	if err := val.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
