package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Ubehebe/rowset/internal/dataset"
	"github.com/Ubehebe/rowset/internal/loader"
	"github.com/Ubehebe/rowset/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// parseResponse is the envelope for a materialized table. Every response
// carries a fresh ingest ID so clients and logs can correlate follow-ups.
type parseResponse struct {
	ID       string           `json:"id"`
	Columns  []string         `json:"columns"`
	Rows     []dataset.Record `json:"rows"`
	RowCount int              `json:"row_count"`
}

// ingestResponse reports a completed write to the sink.
type ingestResponse struct {
	ID         string `json:"id"`
	Table      string `json:"table"`
	RowsCopied int64  `json:"rows_copied"`
}

// handleHealth reports service liveness and whether the sink is configured.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sinkState := "disabled"
	if s.sink != nil {
		sinkState = "enabled"
	}
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
		"sink":   sinkState,
	})
}

// handleParse materializes a document posted in the request body.
//
// Query parameters:
//   - format:   "delimited" or "json"; empty means detect from content
//   - sep:      single-character field separator for delimited input
//   - coerce:   "true"/"false"; overrides the configured default
//   - encoding: source encoding of the body (utf-8, latin1, windows-1252)
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	s.parseAndRespond(w, r, data)
}

// handleLoad fetches a document by URL or filesystem path, then materializes
// it. Accepts the same parse parameters as POST /api/parse.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("url")
	if ref == "" {
		writeError(w, r, http.StatusBadRequest, "missing url parameter")
		return
	}

	data, err := s.loader.Load(r.Context(), ref)
	if err != nil {
		if errors.Is(err, loader.ErrTooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, r, http.StatusBadGateway, fmt.Sprintf("load document: %v", err))
		return
	}

	s.parseAndRespond(w, r, data)
}

// handleIngest materializes the posted document and lands it in the sink
// under the table name from the URL.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if s.sink == nil {
		writeError(w, r, http.StatusNotImplemented, "ingestion sink is not configured")
		return
	}
	table := chi.URLParam(r, "table")

	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	t, ok := s.materialize(w, r, data)
	if !ok {
		return
	}

	copied, err := s.sink.Store(r.Context(), table, t)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("store table %s: %v", table, err))
		return
	}

	id := uuid.NewString()
	logging.FromContext(r.Context()).Info("ingest complete",
		"ingest_id", id, "table", table, "rows", copied)

	writeJSON(w, r, http.StatusOK, ingestResponse{
		ID:         id,
		Table:      table,
		RowsCopied: copied,
	})
}

// readBody reads the request body under the configured size limit. On
// failure it writes the error response and returns ok=false.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Loader.MaxDocumentSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("document exceeds %d byte limit", s.cfg.Loader.MaxDocumentSize))
			return nil, false
		}
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return nil, false
	}
	if len(data) == 0 {
		writeError(w, r, http.StatusBadRequest, "empty document")
		return nil, false
	}
	return data, true
}

// parseAndRespond runs the full normalize-and-materialize pipeline and
// writes the table envelope.
func (s *Server) parseAndRespond(w http.ResponseWriter, r *http.Request, data []byte) {
	t, ok := s.materialize(w, r, data)
	if !ok {
		return
	}

	id := uuid.NewString()
	logging.FromContext(r.Context()).Info("parse complete",
		"ingest_id", id, "columns", len(t.Columns), "rows", len(t.Rows))

	writeJSON(w, r, http.StatusOK, parseResponse{
		ID:       id,
		Columns:  t.Columns,
		Rows:     t.Rows,
		RowCount: len(t.Rows),
	})
}

// materialize decodes the source encoding and parses the document per the
// request's query parameters. On failure it writes the error response and
// returns ok=false.
func (s *Server) materialize(w http.ResponseWriter, r *http.Request, data []byte) (*dataset.Table, bool) {
	q := r.URL.Query()

	normalized, err := loader.Normalize(data, q.Get("encoding"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}

	spec, opts, err := s.parseParams(q)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}

	t, err := dataset.Read(normalized, spec, opts)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("parse document: %v", err))
		return nil, false
	}
	return t, true
}

// parseParams builds the format spec and options for one request, falling
// back to the configured defaults. A nil spec means detect from content.
func (s *Server) parseParams(q url.Values) (*dataset.FormatSpec, dataset.Options, error) {
	opts := dataset.Options{Coerce: s.cfg.Parse.Coerce}
	if v := q.Get("coerce"); v != "" {
		coerce, err := strconv.ParseBool(v)
		if err != nil {
			return nil, opts, fmt.Errorf("invalid coerce parameter %q", v)
		}
		opts.Coerce = coerce
	}

	sep := s.cfg.Parse.SeparatorRune()
	if v := q.Get("sep"); v != "" {
		runes := []rune(v)
		if len(runes) != 1 {
			return nil, opts, fmt.Errorf("separator %q must be a single character", v)
		}
		sep = runes[0]
	}

	switch format := q.Get("format"); format {
	case "":
		// A non-comma separator implies delimited input; otherwise let the
		// content decide.
		if sep != ',' {
			return &dataset.FormatSpec{Kind: dataset.FormatDelimited, Separator: sep}, opts, nil
		}
		return nil, opts, nil
	case string(dataset.FormatDelimited):
		return &dataset.FormatSpec{Kind: dataset.FormatDelimited, Separator: sep}, opts, nil
	case string(dataset.FormatJSON):
		return &dataset.FormatSpec{Kind: dataset.FormatJSON}, opts, nil
	default:
		return nil, opts, fmt.Errorf("unsupported format %q", format)
	}
}
