package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/donorfinder/internal/config"
	"github.com/example/donorfinder/internal/models"
	"github.com/example/donorfinder/internal/utils"
)

// AuthHandler bundles dependencies for registration and login endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type registerRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Whatsapp     string `json:"whatsapp"`
	Country      string `json:"country"`
	State        string `json:"state"`
	District     string `json:"district"`
	City         string `json:"city"`
	BloodGroup   string `json:"blood_group"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Availability *bool  `json:"availability"`
}

// Register creates a new donor account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.FullName == "" || req.Email == "" || req.Phone == "" ||
		req.Country == "" || req.State == "" || req.BloodGroup == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	// Pre-checks give a friendly message; the unique indexes are what
	// actually reject a concurrent second writer.
	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
	}
	if err := h.db.Model(&models.User{}).Where("phone = ?", req.Phone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Phone already exists")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
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
		Availability: availability,
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if translated := translateStoreErr(err); translated == ErrDuplicate {
			return fiber.NewError(fiber.StatusBadRequest, "Email or phone already exists")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registered successfully",
		"user": fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the users table. Accounts with role "admin"
// get a token signed in the admin realm, everyone else in the user realm.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password required")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email or password")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid email or password")
	}

	realm := config.RealmUser
	if user.Role == models.RoleAdmin {
		realm = config.RealmAdmin
	}

	secret, err := h.cfg.SecretFor(realm)
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(secret, user.ID, user.Role, h.cfg.TTLFor(realm))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}
