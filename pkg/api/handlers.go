package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/bitspect/pkg/codec"
	"github.com/ssargent/bitspect/pkg/descriptor"
	"github.com/ssargent/bitspect/pkg/input"
	"github.com/ssargent/bitspect/pkg/lookup"
	"github.com/ssargent/bitspect/pkg/sei"
)

// Record names used in responses and metric labels
const (
	RecordDescriptor = "descriptor"
	RecordSEI        = "sei_message"
	RecordSEIRBSP    = "sei_rbsp"
)

// Server holds the API server state
type Server struct {
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
	tables  []lookup.Lister
}

// NewServer creates a new API server. metrics may be nil.
func NewServer(config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	tables := append(descriptor.Tables(), sei.Tables()...)
	return &Server{
		config:  config,
		metrics: metrics,
		logger:  logger,
		tables:  tables,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, r, map[string]string{"status": "healthy"})
}

func (s *Server) handleDecodeDescriptor(w http.ResponseWriter, r *http.Request) {
	req, data, ok := s.readDecodeRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	ext, err := descriptor.Decode(data, req.Offset)
	s.recordDecode(r, RecordDescriptor, len(data), err, time.Since(start))
	if err != nil {
		s.sendDecodeError(w, r, err)
		return
	}

	sendSuccess(w, r, DecodeResult{
		Record: RecordDescriptor,
		Name:   ext.Name(),
		Offset: ext.Offset,
		Length: 2 + int(ext.Header.Length),
		Fields: ext.Fields(),
	})
}

func (s *Server) handleDecodeSEI(w http.ResponseWriter, r *http.Request) {
	req, data, ok := s.readDecodeRequest(w, r)
	if !ok {
		return
	}

	if req.All {
		start := time.Now()
		msgs, err := sei.DecodeMessages(data[req.Offset:])
		s.recordDecode(r, RecordSEIRBSP, len(data), err, time.Since(start))
		if err != nil {
			s.sendDecodeError(w, r, shiftOffset(err, req.Offset))
			return
		}
		length := 0
		for _, m := range msgs {
			length += m.Length
		}
		sendSuccess(w, r, DecodeResult{
			Record: RecordSEIRBSP,
			Name:   fmt.Sprintf("%d messages", len(msgs)),
			Offset: req.Offset,
			Length: length,
			Fields: sei.Messages(msgs).Fields(),
		})
		return
	}

	start := time.Now()
	m, err := sei.Decode(data, req.Offset)
	s.recordDecode(r, RecordSEI, len(data), err, time.Since(start))
	if err != nil {
		s.sendDecodeError(w, r, err)
		return
	}

	sendSuccess(w, r, DecodeResult{
		Record: RecordSEI,
		Name:   m.Name(),
		Offset: m.Offset,
		Length: m.Length,
		Fields: m.Fields(),
	})
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	summaries := make([]TableSummary, 0, len(s.tables))
	for _, t := range s.tables {
		summaries = append(summaries, summarize(t))
	}
	sendSuccess(w, r, summaries)
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	t, ok := lookup.Find(name, s.tables...)
	if !ok {
		sendError(w, r, fmt.Sprintf("Table %q not found", name), http.StatusNotFound)
		return
	}
	sendSuccess(w, r, TableResponse{
		TableSummary: summarize(t),
		Rows:         t.Rows(),
	})
}

func summarize(t lookup.Lister) TableSummary {
	return TableSummary{Name: t.Name(), Fallback: t.Fallback(), Entries: t.Len()}
}

// readDecodeRequest parses the JSON body and the hex data it carries. On
// failure the error response has already been written.
func (s *Server) readDecodeRequest(w http.ResponseWriter, r *http.Request) (DecodeRequest, []byte, bool) {
	var req DecodeRequest

	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			sendError(w, r, fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)
			return req, nil, false
		}
		sendError(w, r, "Invalid JSON in request body", http.StatusBadRequest)
		return req, nil, false
	}

	data, err := input.ParseHex(req.Data)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return req, nil, false
	}
	if s.config.MaxInputBytes > 0 && int64(len(data)) > s.config.MaxInputBytes {
		sendError(w, r, fmt.Sprintf("Decoded data exceeds %d bytes", s.config.MaxInputBytes), http.StatusRequestEntityTooLarge)
		return req, nil, false
	}
	if req.Offset < 0 || req.Offset > len(data) {
		sendError(w, r, fmt.Sprintf("Offset %d outside data of %d bytes", req.Offset, len(data)), http.StatusBadRequest)
		return req, nil, false
	}
	return req, data, true
}

func (s *Server) recordDecode(r *http.Request, record string, size int, err error, d time.Duration) {
	s.metrics.RecordDecode(record, size, err, d)
	if err != nil {
		s.logger.Warn("Decode failed",
			slog.String("request_id", RequestID(r.Context())),
			slog.String("record", record),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Debug("Decoded record",
		slog.String("request_id", RequestID(r.Context())),
		slog.String("record", record),
		slog.Int("bytes", size),
	)
}

func (s *Server) sendDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if off, ok := codec.OffsetOf(err); ok {
		sendErrorAt(w, r, err.Error(), http.StatusUnprocessableEntity, &off)
		return
	}
	sendError(w, r, err.Error(), http.StatusUnprocessableEntity)
}

// shiftOffset rebases the offset of a decode error found in data[base:]
func shiftOffset(err error, base int) error {
	var de *codec.DecodeError
	if base == 0 || !errors.As(err, &de) {
		return err
	}
	shifted := *de
	shifted.Offset += base
	return fmt.Errorf("at data offset %d: %w", base, &shifted)
}
