package returns

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/callil/tax-ui/internal/taxes"
	"github.com/callil/tax-ui/pkg/handlers"
	"github.com/callil/tax-ui/pkg/routes"
)

// Handler serves stored returns, summaries, and the parse endpoints.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "returns"),
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/returns", Handler: h.All},
			{Method: "GET", Pattern: "/returns/{year}", Handler: h.Find},
			{Method: "GET", Pattern: "/returns/{year}/summary", Handler: h.YearSummary},
			{Method: "GET", Pattern: "/returns/{year}/source", Handler: h.Source},
			{Method: "DELETE", Pattern: "/returns/{year}", Handler: h.Delete},
			{Method: "GET", Pattern: "/summary", Handler: h.Summary},
			{Method: "POST", Pattern: "/parse", Handler: h.Parse},
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
		},
	}
}

func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.All(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	rec, err := h.sys.Find(r.Context(), year)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) YearSummary(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	rec, err := h.sys.Find(r.Context(), year)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, taxes.SummarizeYear(rec.Return))
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	all, err := h.sys.All(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, taxes.Summarize(all))
}

func (h *Handler) Source(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	body, rec, err := h.sys.Source(r.Context(), year)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	filename := rec.Filename
	if filename == "" {
		filename = strconv.Itoa(year) + ".pdf"
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+strings.ReplaceAll(filename, `"`, "")+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("source stream interrupted", "year", year, "error", err)
	}
}

type deleteResult struct {
	Success bool `json:"success"`
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), year); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, deleteResult{Success: true})
}

// Parse accepts a multipart form with a "pdf" file and an optional API key,
// runs the full pipeline, stores the result, and returns the TaxReturn.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	up, ok := h.upload(w, r)
	if !ok {
		return
	}

	rec, err := h.sys.Parse(r.Context(), ParseCommand{
		Filename: up.filename,
		Data:     up.data,
		APIKey:   up.apiKey,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, rec.Return)
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	up, ok := h.upload(w, r)
	if !ok {
		return
	}

	result, err := h.sys.Classify(r.Context(), up.data, up.apiKey)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

type upload struct {
	filename string
	data     []byte
	apiKey   string
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return upload{}, false
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return upload{}, false
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return upload{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return upload{}, false
	}

	key := strings.TrimSpace(r.FormValue("apiKey"))
	if key == "" {
		key = strings.TrimSpace(r.FormValue("api_key"))
	}

	return upload{filename: header.Filename, data: data, apiKey: key}, true
}

func (h *Handler) year(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year <= 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidYear)
		return 0, false
	}
	return year, true
}
