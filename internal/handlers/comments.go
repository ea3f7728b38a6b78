package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/donorfinder/internal/models"
)

// CommentHandler serves the public comment board.
type CommentHandler struct {
	db *gorm.DB
}

// NewCommentHandler constructs CommentHandler.
func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

type commentRequest struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Create posts a comment, attributed to a registered user when user_id is
// given and to an anonymous display name otherwise.
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "content is required")
	}

	comment := models.Comment{Content: req.Content}

	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid user_id")
		}

		var user models.User
		if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}

		comment.UserID = &userID
		comment.Name = user.FullName
	} else {
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required for anonymous comments")
		}
		comment.Name = req.Name
	}

	if err := h.db.Create(&comment).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// List returns all comments, newest first.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	var comments []models.Comment
	if err := h.db.Order("created_at desc").Find(&comments).Error; err != nil {
		return err
	}

	return c.JSON(comments)
}
