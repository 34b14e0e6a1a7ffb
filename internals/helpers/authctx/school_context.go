// file: internals/helpers/authctx/school_context.go
package authctx

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals Keys (diisi AuthMiddleware)
   ============================================ */

const (
	LocUserID   = "user_id"   // string UUID
	LocRole     = "userRole"  // string
	LocSchoolID = "school_id" // string UUID (school aktif di token)
)

var (
	ErrSchoolContextMissing = errors.New("school context tidak ditemukan di token")
	ErrUserContextMissing   = errors.New("user_id tidak ditemukan di token")
)

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, bool) {
	switch v := c.Locals(key).(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil || id == uuid.Nil {
			return uuid.Nil, false
		}
		return id, true
	}
	return uuid.Nil, false
}

// GetSchoolIDFromToken: school aktif dari token, fallback ?school_id= untuk role admin.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := uuidFromLocals(c, LocSchoolID); ok {
		return id, nil
	}
	if GetRole(c) == "admin" {
		if q := strings.TrimSpace(c.Query("school_id")); q != "" {
			id, err := uuid.Parse(q)
			if err != nil {
				return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school_id invalid")
			}
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, ErrSchoolContextMissing.Error())
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := uuidFromLocals(c, LocUserID); ok {
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, ErrUserContextMissing.Error())
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocRole).(string)
	return strings.ToLower(strings.TrimSpace(role))
}

// ParseUUIDParam membaca path param UUID → 400 kalau invalid.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" invalid")
	}
	return id, nil
}
