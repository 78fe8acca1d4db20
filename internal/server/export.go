package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/policypilot/policypilot/internal/export"
	"github.com/policypilot/policypilot/internal/policy"
)

// PDFRenderer turns a parsed document into a complete PDF binary.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, doc export.ParsedDocument) ([]byte, error)
}

// ExportHandler exposes the PDF export endpoint.
type ExportHandler struct {
	Renderer PDFRenderer
	Logger   *log.Logger
	now      func() time.Time
}

func NewExportHandler(renderer PDFRenderer, logger *log.Logger) *ExportHandler {
	if logger == nil {
		logger = log.New(log.Writer(), "[EXPORT] ", log.LstdFlags)
	}
	return &ExportHandler{Renderer: renderer, Logger: logger, now: time.Now}
}

func (h *ExportHandler) Register(g *echo.Group) {
	g.POST("/export/pdf", h.exportPDF)
}

func (h *ExportHandler) exportPDF(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var doc export.ParsedDocument
	var mode string
	switch {
	case req.Policy != nil:
		if req.Policy.Title == "" || len(req.Policy.Sections) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "valid policy document is required")
		}
		doc = documentFromPolicy(req.Policy)
		mode = "policy"
	case strings.TrimSpace(req.Markdown) != "":
		doc = export.ParseMarkdown(req.Markdown)
		mode = "markdown"
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "markdown or policy is required")
	}

	pdf, err := h.Renderer.RenderPDF(c.Request().Context(), doc)
	if err != nil {
		h.Logger.Printf("pdf export failed: %v", err)
		pdfExports.WithLabelValues(mode, "error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate PDF")
	}
	pdfExports.WithLabelValues(mode, "ok").Inc()

	title := doc.Title
	if title == "" {
		title = export.FallbackTitle
	}
	filename := fmt.Sprintf("%s_%s.pdf",
		strings.Join(strings.Fields(title), "_"),
		h.now().Format("2006-01-02"))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(pdf)))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// documentFromPolicy lays a structured artifact out for rendering. Section
// content is split back into lines so the list/paragraph heuristic applies.
func documentFromPolicy(p *policy.Document) export.ParsedDocument {
	doc := export.ParsedDocument{
		Title: p.Title,
	}
	if p.Metadata.EffectiveDate != "" {
		doc.Subtitle = fmt.Sprintf("Version %s, effective %s", p.Metadata.Version, p.Metadata.EffectiveDate)
	}
	for _, section := range p.Sections {
		parsed := export.ParsedSection{Title: section.Title, Level: 2}
		for _, line := range strings.Split(section.Content, "\n") {
			if strings.TrimSpace(line) != "" {
				parsed.Lines = append(parsed.Lines, strings.TrimSpace(line))
			}
		}
		doc.Sections = append(doc.Sections, parsed)
	}
	return doc
}
