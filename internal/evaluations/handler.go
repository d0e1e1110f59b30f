package evaluations

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches evaluation routes to the router group. pre runs
// before the create handler (body limits, rate limits).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, pre ...gin.HandlerFunc) {
	rg.POST("/evaluations", append(pre, h.create)...)
	rg.GET("/evaluations/:id", h.get)
	rg.GET("/evaluations", h.list)
}

// FeedbackRequested reports whether the multipart form asks for AI feedback.
func FeedbackRequested(c *gin.Context) bool {
	return parseBool(c.PostForm("useFeedback"))
}

func (h *Handler) create(c *gin.Context) {
	req := Request{
		JobDescription: c.PostForm("jobDescription"),
		UseFeedback:    FeedbackRequested(c),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "Upload exceeds size limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "missing_input", "Missing input", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	req.FileName = fileHeader.Filename
	req.Data, err = io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	res, err := h.Svc.Evaluate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingInput):
			respond.Error(c, http.StatusBadRequest, "missing_input", "Missing input", nil)
		case errors.Is(err, extract.ErrExtraction):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "Could not read resume", err.Error())
		case errors.Is(err, ErrScoring):
			respond.Error(c, http.StatusBadGateway, "scoring_failed", "Embedding model unavailable", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Evaluation failed", err.Error())
		}
		return
	}

	c.Set(middleware.EvaluationIDKey, res.ID)
	respond.JSON(c, http.StatusCreated, res)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.EvaluationIDKey, id)

	res, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch evaluation", nil)
		}
		return
	}
	respond.OK(c, res)
}

func (h *Handler) list(c *gin.Context) {
	limit, offset := respond.Page(c)
	res, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list evaluations", nil)
		return
	}
	respond.OK(c, res)
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
