package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/donorfinder/internal/config"
	"github.com/example/donorfinder/internal/models"
	"github.com/example/donorfinder/internal/utils"
)

// AdminHandler manages admin login and user moderation endpoints.
type AdminHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, cfg *config.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the admins table and issues an admin-realm
// token. User tokens never validate on admin routes.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password required")
	}

	var admin models.Admin
	if err := h.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials")
	}

	secret, err := h.cfg.SecretFor(config.RealmAdmin)
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(secret, admin.ID, models.RoleAdmin, h.cfg.TTLFor(config.RealmAdmin))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"admin": fiber.Map{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
		},
	})
}

// ListUsers returns registered users with pagination and search.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := query.Select(directoryColumns + ", role").
		Order("full_name asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"items": users,
		"total": total,
		"page":  pg.Page,
		"limit": pg.Limit,
	})
}

type adminCreateUserRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Whatsapp   string `json:"whatsapp"`
	Country    string `json:"country"`
	State      string `json:"state"`
	District   string `json:"district"`
	City       string `json:"city"`
	BloodGroup string `json:"blood_group"`
	Password   string `json:"password"`
}

// CreateUser adds a donor account on behalf of an admin.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req adminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.FullName == "" || req.Email == "" || req.Phone == "" ||
		req.Country == "" || req.State == "" || req.BloodGroup == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ? OR phone = ?", req.Email, req.Phone).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Email or phone already registered")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Whatsapp:     req.Whatsapp,
		Country:      req.Country,
		State:        req.State,
		District:     req.District,
		City:         req.City,
		BloodGroup:   req.BloodGroup,
		PasswordHash: passwordHash,
		Availability: true,
		Role:         models.RoleUser,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if translateStoreErr(err) == ErrDuplicate {
			return fiber.NewError(fiber.StatusBadRequest, "Email or phone already registered")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user": fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
		},
	})
}

type adminUpdateUserRequest struct {
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

// UpdateUser partially updates any user record.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req adminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	checkTaken := func(column, value, message string) error {
		var count int64
		if err := h.db.Model(&models.User{}).
			Where(column+" = ? AND id <> ?", value, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, message)
		}
		return nil
	}
	if req.Email != "" {
		if err := checkTaken("email", req.Email, "Email already registered"); err != nil {
			return err
		}
	}
	if req.Phone != "" {
		if err := checkTaken("phone", req.Phone, "Phone already registered"); err != nil {
			return err
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

	return c.JSON(fiber.Map{"message": "User updated successfully"})
}

// DeleteUser removes a user and their pending reports.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("donor_id = ?", userID).Delete(&models.DonorReport{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

// Stats returns the counters shown on the admin dashboard.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	counts := fiber.Map{}
	for name, model := range map[string]interface{}{
		"total_users":      &models.User{},
		"pending_reports":  &models.DonorReport{},
		"resolved_reports": &models.ResolvedReport{},
		"feedback_entries": &models.Feedback{},
	} {
		var n int64
		if err := h.db.Model(model).Count(&n).Error; err != nil {
			return err
		}
		counts[name] = n
	}

	return c.JSON(counts)
}
