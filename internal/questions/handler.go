package questions

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/askanon/board/internal/models"
	"github.com/askanon/board/internal/sanitize"
	"github.com/askanon/board/internal/store"
	"github.com/askanon/board/pkg/response"
)

// CreateRequest is the body for POST /questions.
type CreateRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpvoteRequest is the body for POST /upvote.
type UpvoteRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
}

// ModerateRequest is the body for the admin resolve and hide endpoints.
type ModerateRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Resolved   bool   `json:"resolved"`
	Hidden     bool   `json:"hidden"`
}

// Handler handles question HTTP endpoints.
type Handler struct {
	store     *store.Store
	logger    *zap.Logger
	maxPerDay int
}

// NewHandler creates a questions handler. maxPerDay bounds submissions per
// IP per rate-limit window.
func NewHandler(st *store.Store, maxPerDay int, logger *zap.Logger) *Handler {
	return &Handler{store: st, logger: logger, maxPerDay: maxPerDay}
}

// List handles GET /questions. Hidden questions never appear regardless of
// filters; sortBy defaults to recent, timeFilter to all.
func (h *Handler) List(c *gin.Context) {
	sortBy := c.DefaultQuery("sortBy", "recent")
	timeFilter := c.DefaultQuery("timeFilter", "all")

	visible := make([]models.Question, 0)
	for _, q := range h.store.Questions() {
		if !q.Hidden {
			visible = append(visible, q)
		}
	}

	if cutoff, ok := filterCutoff(timeFilter, time.Now()); ok {
		filtered := visible[:0]
		for _, q := range visible {
			if !q.Timestamp.Before(cutoff) {
				filtered = append(filtered, q)
			}
		}
		visible = filtered
	}

	if sortBy == "upvotes" {
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Upvotes > visible[j].Upvotes
		})
	} else {
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Timestamp.After(visible[j].Timestamp)
		})
	}

	response.OK(c, gin.H{"questions": visible})
}

// Create handles POST /questions: sanitize, validate, rate-limit, persist.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "question text required")
		return
	}

	text := sanitize.Clean(req.Text)
	if err := sanitize.ValidateQuestion(req.Text); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ip := clientIP(c)
	allowed, err := h.store.CheckRateLimit(ip, h.maxPerDay)
	if err != nil {
		h.logger.Error("check rate limit", zap.Error(err))
		response.Internal(c, "failed to create question")
		return
	}
	if !allowed {
		response.RateLimited(c, "rate limit reached, maximum 10 questions per day")
		return
	}

	q, err := h.store.AddQuestion(text, "")
	if err != nil {
		h.logger.Error("add question", zap.Error(err))
		response.Internal(c, "failed to create question")
		return
	}
	response.Created(c, gin.H{"question": q})
}

// Upvote handles POST /upvote. Each IP may upvote a question once.
func (h *Handler) Upvote(c *gin.Context) {
	var req UpvoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "question ID required")
		return
	}

	q, err := h.store.UpvoteQuestion(req.QuestionID, clientIP(c))
	switch {
	case errors.Is(err, store.ErrQuestionNotFound):
		response.NotFound(c, "question not found")
		return
	case errors.Is(err, store.ErrAlreadyUpvoted):
		response.Conflict(c, "already upvoted")
		return
	case err != nil:
		h.logger.Error("upvote question", zap.Error(err))
		response.Internal(c, "failed to upvote question")
		return
	}
	response.OK(c, gin.H{"question": q, "upvotes": q.Upvotes})
}

// Resolve handles POST /admin/resolve (admin cookie required upstream).
func (h *Handler) Resolve(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "question ID required")
		return
	}

	q, err := h.store.SetResolved(req.QuestionID, req.Resolved)
	switch {
	case errors.Is(err, store.ErrQuestionNotFound):
		response.NotFound(c, "question not found")
		return
	case err != nil:
		h.logger.Error("resolve question", zap.Error(err))
		response.Internal(c, "internal server error")
		return
	}
	response.OK(c, gin.H{"question": q})
}

// Hide handles POST /admin/hide. Hiding cascades the resolve transition.
func (h *Handler) Hide(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "question ID required")
		return
	}

	q, err := h.store.SetHidden(req.QuestionID, req.Hidden)
	switch {
	case errors.Is(err, store.ErrQuestionNotFound):
		response.NotFound(c, "question not found")
		return
	case err != nil:
		h.logger.Error("hide question", zap.Error(err))
		response.Internal(c, "internal server error")
		return
	}
	response.OK(c, gin.H{"question": q})
}

// clientIP derives the requester identity used for rate limiting and upvote
// dedup from proxy headers. Without a reverse proxy setting them, every
// client shares the "unknown" bucket.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return "unknown"
}

// filterCutoff maps a timeFilter value to its cutoff instant. Unknown values
// behave like "all".
func filterCutoff(timeFilter string, now time.Time) (time.Time, bool) {
	switch timeFilter {
	case "24h":
		return now.Add(-24 * time.Hour), true
	case "7d":
		return now.AddDate(0, 0, -7), true
	case "30d":
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}
