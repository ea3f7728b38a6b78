package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/donorfinder/internal/models"
	"github.com/example/donorfinder/internal/utils"
)

// directoryColumns keeps password hashes out of every directory response.
const directoryColumns = "id, full_name, email, phone, whatsapp, country, state, district, city, blood_group, availability, created_at, updated_at"

// DonorHandler serves the public donor directory.
type DonorHandler struct {
	db *gorm.DB
}

// NewDonorHandler constructs DonorHandler.
func NewDonorHandler(db *gorm.DB) *DonorHandler {
	return &DonorHandler{db: db}
}

type searchRequest struct {
	BloodGroup string `json:"blood_group"`
	Country    string `json:"country"`
	State      string `json:"state"`
	District   string `json:"district"`
	City       string `json:"city"`
}

// Search filters the directory. Blood group matches exactly, location
// fields match case-insensitively, and a blank filter means no constraint.
func (h *DonorHandler) Search(c *fiber.Ctx) error {
	var req searchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	query := h.db.Model(&models.User{}).Where("role = ?", models.RoleUser)

	if bg := strings.TrimSpace(req.BloodGroup); bg != "" {
		query = query.Where("blood_group = ?", bg)
	}
	for column, value := range map[string]string{
		"country":  req.Country,
		"state":    req.State,
		"district": req.District,
		"city":     req.City,
	} {
		if v := strings.TrimSpace(value); v != "" {
			query = query.Where("LOWER("+column+") = LOWER(?)", v)
		}
	}

	query = query.Select(directoryColumns).
		Order("availability desc").
		Order("full_name asc")

	// Optional pagination; without page/limit the full result comes back
	// and the client slices it.
	if pg, ok := utils.ParseOptionalPagination(c); ok {
		query = query.Limit(pg.Limit).Offset(pg.Offset)
	}

	var donors []models.User
	if err := query.Find(&donors).Error; err != nil {
		return err
	}

	return c.JSON(donors)
}

// ListAvailable returns every available donor ordered by name.
func (h *DonorHandler) ListAvailable(c *fiber.Ctx) error {
	var donors []models.User
	err := h.db.Model(&models.User{}).
		Where("role = ? AND availability = ?", models.RoleUser, true).
		Select(directoryColumns).
		Order("full_name asc").
		Find(&donors).Error
	if err != nil {
		return err
	}

	return c.JSON(donors)
}
