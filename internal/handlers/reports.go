package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/donorfinder/internal/models"
	"github.com/example/donorfinder/internal/utils"
)

// ReportHandler implements the donor-report workflow: public submission,
// admin review of the pending queue, and resolution into the archive.
type ReportHandler struct {
	db *gorm.DB
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

type submitReportRequest struct {
	DonorID     string `json:"donor_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Submit files a report against a donor identified by ID. Public: reporters
// are not required to have an account.
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var req submitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.DonorID == "" || req.Reason == "" {
		return fiber.NewError(fiber.StatusBadRequest, "donor_id and reason are required")
	}

	donorID, err := uuid.Parse(req.DonorID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid donor_id")
	}

	var donor models.User
	if err := h.db.First(&donor, "id = ?", donorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Donor not found")
		}
		return err
	}

	return h.createReport(c, donor, req.Reason, req.Description)
}

type submitReportByEmailRequest struct {
	DonorName   string `json:"donor_name"`
	Email       string `json:"email"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// SubmitByEmail files a report against the donor registered under the given
// email address. This is the admin dashboard's manual entry point.
func (h *ReportHandler) SubmitByEmail(c *fiber.Ctx) error {
	var req submitReportByEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Reason == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and reason are required")
	}

	var donor models.User
	if err := h.db.First(&donor, "email = ?", req.Email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Donor not found")
		}
		return err
	}

	return h.createReport(c, donor, req.Reason, req.Description)
}

func (h *ReportHandler) createReport(c *fiber.Ctx, donor models.User, reason, description string) error {
	report := models.DonorReport{
		DonorID:     donor.ID,
		Reason:      reason,
		Description: description,
		Status:      models.ReportStatusPending,
		ReportedAt:  time.Now(),
	}

	if err := h.db.Create(&report).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Report submitted successfully",
		"report": fiber.Map{
			"id":          report.ID,
			"donor_id":    report.DonorID,
			"donor_name":  donor.FullName,
			"reason":      report.Reason,
			"status":      report.Status,
			"reported_at": report.ReportedAt,
		},
	})
}

// ListPending returns the pending queue, searchable by donor name or reason.
// Ordering is reported_at desc with id as tiebreaker so pages stay stable
// between calls.
func (h *ReportHandler) ListPending(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.DonorReport{}).
		Joins("JOIN users ON users.id = donor_reports.donor_id")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(users.full_name) LIKE ? OR LOWER(donor_reports.reason) LIKE ?",
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	// A raw select expression keeps the joined users columns out of the
	// scan; a plain Select("donor_reports.*") would be quoted as one
	// column name and fail.
	var reports []models.DonorReport
	if err := query.Clauses(clause.Select{Expression: clause.Expr{SQL: "donor_reports.*"}}).
		Preload("Donor").
		Order("donor_reports.reported_at desc").
		Order("donor_reports.id asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&reports).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"items": reports,
		"total": total,
		"page":  pg.Page,
		"limit": pg.Limit,
	})
}

type resolveRequest struct {
	Notes  string `json:"notes"`
	Status string `json:"status"`
}

// Resolve archives a pending report. The copy into resolved_reports and the
// delete of the original run in one transaction; the conditional delete makes
// a concurrent second resolve fail with not found instead of duplicating the
// archive row.
func (h *ReportHandler) Resolve(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid report id")
	}

	var req resolveRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// The legacy dashboard sends {"status": "..."} to this endpoint; only
	// the resolved transition exists.
	if req.Status != "" && req.Status != "resolved" {
		return fiber.NewError(fiber.StatusBadRequest, "unsupported status")
	}

	var archived models.ResolvedReport
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var report models.DonorReport
		if err := tx.Preload("Donor").First(&report, "id = ?", reportID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Report not found")
			}
			return err
		}

		archived = models.ResolvedReport{
			DonorID:         report.DonorID,
			DonorName:       report.Donor.FullName,
			Reason:          report.Reason,
			Description:     report.Description,
			ResolutionNotes: req.Notes,
			ReportedAt:      report.ReportedAt,
			ResolvedAt:      time.Now(),
		}
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", reportID).Delete(&models.DonorReport{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Another resolve won the race; rolling back also discards
			// our archive copy.
			return fiber.NewError(fiber.StatusNotFound, "Report not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Report resolved",
		"resolved": archived,
	})
}

// ListResolved returns the archive with the same pagination contract as the
// pending queue.
func (h *ReportHandler) ListResolved(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.ResolvedReport{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(donor_name) LIKE ? OR LOWER(reason) LIKE ?",
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var reports []models.ResolvedReport
	if err := query.Order("resolved_at desc").
		Order("id asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&reports).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"items": reports,
		"total": total,
		"page":  pg.Page,
		"limit": pg.Limit,
	})
}
