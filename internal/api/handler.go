package api

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-converter/internal/converter"
	"github.com/insightdelivered/statement-converter/internal/extractor"
	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/parser"
	"github.com/insightdelivered/statement-converter/internal/writer"
)

// pageBreak separates pages in client-side extracted text.
const pageBreak = "\n---PAGE_BREAK---\n"

// ProcessResponse is the JSON response of the parse endpoints.
type ProcessResponse struct {
	Success    bool              `json:"success"`
	Data       *models.Statement `json:"data"`
	PagesUsed  int               `json:"pages_used"`
	DocumentID string            `json:"document_id"`
	Report     *parser.Report    `json:"report,omitempty"`
	RawText    string            `json:"raw_text,omitempty"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Service       *converter.Service
	Version       string
	DefaultLayout writer.Layout
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

// HandleProcessPDF parses an uploaded statement and returns the record as
// JSON. With debug=true the parse report and flattened text are included.
func (h *Handler) HandleProcessPDF(c *fiber.Ctx) error {
	doc, err := documentFromForm(c)
	if err != nil {
		return err
	}

	res, err := h.Service.Convert(c.UserContext(), doc, converter.Options{})
	if err != nil {
		return err
	}
	return c.JSON(h.processResponse(res, doc, c.FormValue("debug") == "true"))
}

type parseTextRequest struct {
	Text  string `json:"text"`
	Debug bool   `json:"debug"`
}

// HandleParseText parses statement text that the client already extracted.
func (h *Handler) HandleParseText(c *fiber.Ctx) error {
	var req parseTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body.")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Field 'text' is required.")
	}

	doc := converter.Document{Name: "text", Pages: splitPages(req.Text)}
	res, err := h.Service.Convert(c.UserContext(), doc, converter.Options{})
	if err != nil {
		return err
	}
	return c.JSON(h.processResponse(res, doc, req.Debug))
}

// HandleAnonymousConvert converts an upload and returns the rendered file
// as an attachment. format selects xlsx (default) or csv; layout applies
// to csv output.
func (h *Handler) HandleAnonymousConvert(c *fiber.Ctx) error {
	target, err := writer.ParseTarget(c.FormValue("format", "xlsx"))
	if err != nil {
		return err
	}
	layout := h.DefaultLayout
	if v := c.FormValue("layout"); v != "" {
		if layout, err = writer.ParseLayout(v); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	doc, err := documentFromForm(c)
	if err != nil {
		return err
	}

	res, err := h.Service.Convert(c.UserContext(), doc, converter.Options{
		Targets: []writer.Target{target},
		Layout:  layout,
	})
	if err != nil {
		return err
	}

	c.Attachment(outputName(doc.Name, target))
	c.Set(fiber.HeaderContentType, target.ContentType())
	c.Set("X-Document-ID", res.DocumentID)
	c.Set("X-Pages-Processed", strconv.Itoa(res.Pages))
	return c.Send(res.Outputs[target])
}

func (h *Handler) processResponse(res *converter.Result, doc converter.Document, debug bool) ProcessResponse {
	resp := ProcessResponse{
		Success:    true,
		Data:       res.Statement,
		PagesUsed:  res.Pages,
		DocumentID: res.DocumentID,
	}
	if debug {
		resp.Report = res.Report
		if len(doc.Pages) > 0 {
			resp.RawText = strings.Join(doc.Pages, pageBreak)
		}
	}
	return resp
}

// documentFromForm reads the multipart "file" field and the optional
// "extractedText" field. Text extracted by the client takes precedence over
// server-side extraction of the upload.
func documentFromForm(c *fiber.Ctx) (converter.Document, error) {
	var doc converter.Document
	if text := c.FormValue("extractedText"); strings.TrimSpace(text) != "" {
		doc.Pages = splitPages(text)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if len(doc.Pages) > 0 {
			doc.Name = "statement"
			return doc, nil
		}
		return doc, fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	doc.Name = fh.Filename
	if len(doc.Pages) > 0 {
		return doc, nil
	}

	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return doc, fiber.NewError(fiber.StatusBadRequest, "Only PDF files are supported.")
	}
	f, err := fh.Open()
	if err != nil {
		return doc, fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return doc, fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file.")
	}
	if !extractor.IsPDF(data) {
		return doc, extractor.ErrNotPDF
	}
	doc.Data = data
	return doc, nil
}

func splitPages(text string) []string {
	var pages []string
	for _, page := range strings.Split(text, pageBreak) {
		if page = strings.TrimSpace(page); page != "" {
			pages = append(pages, page)
		}
	}
	return pages
}

// outputName derives the download name from the uploaded file name.
func outputName(name string, target writer.Target) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." || base == "/" {
		base = "statement"
	}
	return base + "." + target.Extension()
}
