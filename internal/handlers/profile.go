package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/donorfinder/internal/middleware"
	"github.com/example/donorfinder/internal/models"
)

// ProfileHandler manages the authenticated user's own profile.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Me returns the caller's profile.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"user": user})
}

type updateProfileRequest struct {
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Whatsapp     *string `json:"whatsapp"`
	Country      string  `json:"country"`
	State        string  `json:"state"`
	District     *string `json:"district"`
	City         *string `json:"city"`
	BloodGroup   string  `json:"blood_group"`
	Availability *bool   `json:"availability"`
}

// UpdateProfile partially updates the caller's profile. Email and phone are
// re-checked for uniqueness against every other account first.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email != "" {
		if taken, err := h.fieldTaken("email", req.Email, userID); err != nil {
			return err
		} else if taken {
			return fiber.NewError(fiber.StatusBadRequest, "Email already registered")
		}
	}
	if req.Phone != "" {
		if taken, err := h.fieldTaken("phone", req.Phone, userID); err != nil {
			return err
		} else if taken {
			return fiber.NewError(fiber.StatusBadRequest, "Phone already registered")
		}
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Whatsapp != nil {
		updates["whatsapp"] = *req.Whatsapp
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if req.State != "" {
		updates["state"] = req.State
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.BloodGroup != "" {
		updates["blood_group"] = req.BloodGroup
	}
	if req.Availability != nil {
		updates["availability"] = *req.Availability
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return translateStoreErr(err)
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Profile updated successfully", "user": user})
}

func (h *ProfileHandler) fieldTaken(column, value string, selfID uuid.UUID) (bool, error) {
	var count int64
	err := h.db.Model(&models.User{}).
		Where(column+" = ? AND id <> ?", value, selfID).
		Count(&count).Error
	return count > 0, err
}
