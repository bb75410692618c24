package server

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhruvd-1/semtok/pkg/codec"
	"github.com/dhruvd-1/semtok/pkg/errors"
	jsonx "github.com/dhruvd-1/semtok/pkg/json"
	"github.com/dhruvd-1/semtok/pkg/logger"
	"github.com/dhruvd-1/semtok/pkg/metrics"
)

const maxBodyBytes = 32 << 20 // 32MB request cap

type compressionRequest struct {
	Records       []codec.Record `json:"records"`
	Class         string         `json:"ontology_class"`
	UseDictionary *bool          `json:"use_dictionary,omitempty"`
}

type generateRequest struct {
	Class string `json:"ontology_class"`
	Count int    `json:"count"`
	Seed  int64  `json:"seed"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := jsonx.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "malformed request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := jsonx.NewEncoder(w).Encode(body); err != nil {
		logger.Error("cannot write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	errType := errors.ErrorTypeInternal

	var e *errors.Error
	if errors.As(err, &e) {
		errType = e.Type
		switch e.Type {
		case errors.ErrorTypeValidation:
			status = http.StatusBadRequest
		case errors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case errors.ErrorTypeConnection:
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, map[string]interface{}{
		"error": err.Error(),
		"type":  string(errType),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	endpoints := map[string]string{
		"/ontology":               "ontology metadata and structure",
		"/compression/compress":   "compress a record batch",
		"/compression/decompress": "restore records from an envelope",
		"/compression/evaluate":   "measure token reduction on a batch",
		"/generate":               "generate synthetic records for a class",
		"/metrics":                "prometheus metrics",
	}
	if s.store != nil {
		endpoints["/envelopes"] = "persist and list compressed envelopes"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "online",
		"api":       "semtok",
		"version":   Version,
		"endpoints": endpoints,
	})
}

func (s *Server) handleOntology(w http.ResponseWriter, _ *http.Request) {
	classes := make([]map[string]interface{}, 0, len(s.ont.Classes))
	for _, name := range s.ont.ClassNames() {
		class, _ := s.ont.Class(name)
		classes = append(classes, map[string]interface{}{
			"name":        class.Name,
			"description": class.Description,
			"parent":      class.Parent,
			"properties":  class.Properties,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metadata":          s.ont.Metadata,
		"num_classes":       len(s.ont.Classes),
		"num_properties":    len(s.ont.Properties),
		"num_relationships": len(s.ont.Relationships),
		"classes":           classes,
		"properties":        s.ont.Properties,
		"relationships":     s.ont.Relationships,
		"codec":             s.codec.Info(),
	})
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	var req compressionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Records) == 0 {
		writeError(w, errors.New(errors.ErrorTypeValidation, "no records provided"))
		return
	}

	useDictionary := s.codecCfg.UseDictionary
	if req.UseDictionary != nil {
		useDictionary = *req.UseDictionary
	}

	timer := metrics.NewTimer("compress")
	env := s.codec.CompressBatch(req.Records, req.Class, useDictionary)
	timer.Stop()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"num_records": len(req.Records),
		"envelope":    env,
	})
}

func (s *Server) handleDecompress(w http.ResponseWriter, r *http.Request) {
	env := new(codec.Envelope)
	if err := decodeBody(w, r, env); err != nil {
		writeError(w, err)
		return
	}
	if env.IsEmpty() {
		writeError(w, errors.New(errors.ErrorTypeValidation, "empty envelope"))
		return
	}

	timer := metrics.NewTimer("decompress")
	records := s.codec.DecompressBatch(env)
	timer.Stop()
	metrics.RecordDecompression(len(records))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"num_records": len(records),
		"records":     records,
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req compressionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	useDictionary := s.codecCfg.UseDictionary
	if req.UseDictionary != nil {
		useDictionary = *req.UseDictionary
	}

	report, err := s.evaluator.EvaluateBatch(req.Records, req.Class, useDictionary)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"num_records": report.Records,
		"reversible":  report.Reversible,
		"metrics":     report.Metrics,
		"structure": map[string]int{
			"schema_size":  len(report.Envelope.Schema),
			"num_patterns": len(report.Envelope.Patterns),
			"dict_size":    len(report.Envelope.Dictionary),
		},
		"envelope": report.Envelope,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Count <= 0 {
		req.Count = 10
	}
	if req.Count > 10000 {
		writeError(w, errors.New(errors.ErrorTypeValidation, "count too large").
			WithDetail("max", 10000))
		return
	}

	records, err := s.generatorFor(req.Seed).Records(req.Class, req.Count)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"num_records": len(records),
		"records":     records,
	})
}

func (s *Server) handleSaveEnvelope(w http.ResponseWriter, r *http.Request) {
	var req compressionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Records) == 0 {
		writeError(w, errors.New(errors.ErrorTypeValidation, "no records provided"))
		return
	}

	useDictionary := s.codecCfg.UseDictionary
	if req.UseDictionary != nil {
		useDictionary = *req.UseDictionary
	}

	env := s.codec.CompressBatch(req.Records, req.Class, useDictionary)
	id, err := s.store.SaveEnvelope(r.Context(), req.Class, env)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          id,
		"num_records": len(req.Records),
	})
}

func (s *Server) handleListEnvelopes(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListEnvelopes(r.Context(), r.URL.Query().Get("class"), 100)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(records),
		"envelopes": records,
	})
}

func parseEnvelopeID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.ErrorTypeValidation, "invalid envelope id")
	}
	return id, nil
}

func (s *Server) handleGetEnvelope(w http.ResponseWriter, r *http.Request) {
	id, err := parseEnvelopeID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.store.LoadEnvelope(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	records := s.codec.DecompressBatch(rec.Envelope)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":          rec.ID,
		"class":       rec.ClassName,
		"created_at":  rec.CreatedAt,
		"num_records": rec.RecordCount,
		"envelope":    rec.Envelope,
		"records":     records,
	})
}

func (s *Server) handleDeleteEnvelope(w http.ResponseWriter, r *http.Request) {
	id, err := parseEnvelopeID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.DeleteEnvelope(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
