package handlers

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/queue"
	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/internal/service"
	"github.com/velora-ai/companion/internal/transfer"
)

type PostHandler struct {
	posts   repository.ContentPostRepository
	users   repository.UserRepository
	content service.ContentService
	images  service.ImageService
	queue   *queue.Client
}

func NewPostHandler(
	posts repository.ContentPostRepository,
	users repository.UserRepository,
	content service.ContentService,
	images service.ImageService,
	queueClient *queue.Client) *PostHandler {
	return &PostHandler{
		posts:   posts,
		users:   users,
		content: content,
		images:  images,
		queue:   queueClient,
	}
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	posts, err := h.posts.List(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not list posts",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"posts":   posts,
	})
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid post ID",
		})
	}

	post, err := h.posts.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not load post",
		})
	}
	if post == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "post not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// Create builds a post from the request, filling any missing content from the
// generator, and enqueues it for publication at its scheduled time.
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req transfer.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	contentType := req.ContentType
	if contentType != models.ContentTypeReel {
		contentType = models.ContentTypeImage
	}

	post := &models.ContentPost{
		Title:       req.Title,
		Caption:     req.Caption,
		Hashtags:    req.Hashtags,
		ImageURL:    req.ImageURL,
		ContentType: contentType,
		Platforms:   req.Platforms,
		Status:      models.PostStatusScheduled,
	}
	if post.Platforms == "" {
		post.Platforms = models.DefaultPlatforms
	}

	if post.Title == "" || post.Caption == "" {
		bundle := h.content.GenerateThemed(req.Theme, req.Style)
		if post.Title == "" {
			post.Title = bundle.Title
		}
		if post.Caption == "" {
			post.Caption = bundle.Caption
		}
		if post.Hashtags == "" {
			post.Hashtags = bundle.Hashtags
		}
		if post.ImageURL == "" {
			post.ImageURL = bundle.ImageURL
			post.ImagePrompt = bundle.ImagePrompt
		}
	}

	var publishAt time.Time
	if req.ScheduledFor != "" {
		at, err := time.Parse(time.RFC3339, req.ScheduledFor)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "scheduled_for must be RFC 3339",
			})
		}
		publishAt = at
		post.ScheduledFor = sql.NullTime{Time: at, Valid: true}
	} else {
		post.ScheduledFor = sql.NullTime{Time: time.Now(), Valid: true}
	}

	id, err := h.posts.Create(c.Context(), nil, post)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not create post",
		})
	}
	post.ID = id

	if err := h.queue.EnqueuePost(id, publishAt); err != nil {
		// The scheduler loop will still pick the post up when it is due.
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"post":    post,
			"message": "post created; queue unavailable, scheduler will publish it",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

func (h *PostHandler) Reschedule(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid post ID",
		})
	}

	var req transfer.ReschedulePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	at, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "scheduled_for must be RFC 3339",
		})
	}

	post, err := h.posts.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not load post",
		})
	}
	if post == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "post not found",
		})
	}
	if post.Status != models.PostStatusDraft && post.Status != models.PostStatusScheduled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "only draft or scheduled posts can be rescheduled",
		})
	}

	if err := h.posts.UpdateSchedule(c.Context(), id, at); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not reschedule post",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid post ID",
		})
	}

	if err := h.posts.Remove(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not delete post",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// GenerateImage renders a persona image on demand. Quota-gated for non-admin
// users; each render consumes one unit of the daily allowance.
func (h *PostHandler) GenerateImage(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req transfer.GenerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	user, err := h.users.GetByID(c.Context(), userID)
	if err != nil || user == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not load user",
		})
	}
	if !user.CanGenerateImage() {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"success": false,
			"message": "image generation requires an active subscription with remaining quota",
		})
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = h.content.Generate("").ImagePrompt
	}

	imageURL, err := h.images.Generate(c.Context(), prompt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not generate image",
		})
	}

	if !user.IsAdmin {
		if err := h.users.ConsumeImageQuota(c.Context(), userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "could not update quota",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"image_url": imageURL,
	})
}
