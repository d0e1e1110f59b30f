package rankings

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/ranking"
	"resume-matcher/internal/report"
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

// RegisterRoutes attaches ranking routes to the router group. pre runs
// before the create handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, pre ...gin.HandlerFunc) {
	rg.POST("/rankings", append(pre, h.create)...)
	rg.GET("/rankings", h.list)
	rg.GET("/rankings/:id", h.get)
	rg.GET("/rankings/:id/report.csv", h.reportCSV)
	rg.GET("/rankings/:id/report.pdf", h.reportPDF)
}

func (h *Handler) create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "Upload exceeds size limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "missing_input", "Missing input", nil)
		return
	}

	jd := ""
	if values := form.Value["jobDescription"]; len(values) > 0 {
		jd = values[0]
	}

	headers := form.File["files"]
	inputs := make([]ranking.Input, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		inputs = append(inputs, ranking.Input{Name: fh.Filename, Data: data})
	}

	res, err := h.Svc.Rank(c.Request.Context(), jd, inputs)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingInput):
			respond.Error(c, http.StatusBadRequest, "missing_input", "Missing input", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Ranking failed", err.Error())
		}
		return
	}

	c.Set(middleware.RunIDKey, res.ID)
	respond.JSON(c, http.StatusCreated, res)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RunIDKey, id)

	res, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fetchError(c, err)
		return
	}
	respond.OK(c, res)
}

func (h *Handler) list(c *gin.Context) {
	limit, offset := respond.Page(c)
	res, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list rankings", nil)
		return
	}
	respond.OK(c, res)
}

func (h *Handler) reportCSV(c *gin.Context) {
	h.stream(c, KindCSV, report.CSVFileName, report.CSVContentType)
}

func (h *Handler) reportPDF(c *gin.Context) {
	h.stream(c, KindPDF, report.PDFFileName, report.PDFContentType)
}

func (h *Handler) stream(c *gin.Context, kind, fileName, contentType string) {
	id := c.Param("id")
	c.Set(middleware.RunIDKey, id)

	reader, err := h.Svc.OpenReport(c.Request.Context(), id, kind)
	if err != nil {
		h.fetchError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func (h *Handler) fetchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "ranking run not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch ranking run", nil)
	}
}
