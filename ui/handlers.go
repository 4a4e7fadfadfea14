package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bootstat/domain/bootstrap"
	"bootstat/domain/core"
	"bootstat/domain/run"
	"bootstat/internal/engine"
	apperrors "bootstat/internal/errors"
	"bootstat/internal/report"
	"bootstat/internal/statistics"
)

// testRequest is the body of POST /api/tests. Exactly one of Sample or Rows
// must be set; Reference is a number for scalar tests and an array for
// vector tests.
type testRequest struct {
	Name      string          `json:"name"`
	Suite     string          `json:"suite"`
	Sample    []float64       `json:"sample"`
	Rows      [][]float64     `json:"rows"`
	Statistic string          `json:"statistic"`
	Reference json.RawMessage `json:"reference"`
	Alpha     float64         `json:"alpha"`
	Resamples int             `json:"resamples"`
	Seed      *int64          `json:"seed"`
	FailMode  string          `json:"fail_mode"`
}

// testResponse is the body returned by POST /api/tests.
type testResponse struct {
	RunID  core.RunID        `json:"run_id"`
	Passed bool              `json:"passed"`
	Result *bootstrap.Result `json:"result"`
}

func (s *Server) handleListStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"scalar": statistics.Names(),
		"row":    statistics.RowNames(),
	})
}

func (s *Server) handleRunTest(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("request body is not valid JSON"))
		return
	}
	if (len(req.Sample) == 0) == (len(req.Rows) == 0) {
		writeError(w, apperrors.InvalidInput("exactly one of sample or rows must be provided"))
		return
	}
	if req.Statistic == "" {
		writeError(w, apperrors.InvalidInput("statistic is required"))
		return
	}

	e := engine.New()
	e.SetAlpha(s.defaultAlpha)
	e.SetResamples(s.defaultResamples)
	if req.Alpha > 0 {
		e.SetAlpha(req.Alpha)
	}
	if req.Resamples > 0 {
		e.SetResamples(req.Resamples)
	}
	if req.Seed != nil {
		e.SetSeed(*req.Seed)
	}
	if req.FailMode != "" {
		e.SetFailMode(engine.FailMode(req.FailMode))
	}

	result, err := s.evaluate(e, &req)
	if err != nil && !bootstrap.IsTestError(err) {
		writeError(w, apperrors.New(apperrors.CodeInvalidInput, err.Error()))
		return
	}

	record := run.NewRecord(req.Suite, req.Name, req.Statistic, result)
	if saveErr := s.ledger.SaveRun(r.Context(), record); saveErr != nil {
		s.log.Error("failed to record run: %v", saveErr)
	}

	writeJSON(w, http.StatusOK, testResponse{
		RunID:  record.ID,
		Passed: result.Passed(),
		Result: result,
	})
}

// evaluate dispatches scalar vs row tests from the request shape.
func (s *Server) evaluate(e *engine.Engine, req *testRequest) (*bootstrap.Result, error) {
	if len(req.Rows) > 0 {
		statistic, err := statistics.LookupRow(req.Statistic)
		if err != nil {
			return nil, err
		}
		reference, err := parseReferenceVector(req.Reference)
		if err != nil {
			return nil, err
		}
		return e.TestRows(req.Rows, statistic, reference)
	}

	statistic, err := statistics.Lookup(req.Statistic)
	if err != nil {
		return nil, err
	}
	reference, err := parseReferenceScalar(req.Reference)
	if err != nil {
		return nil, err
	}
	return e.TestScalar(req.Sample, statistic, reference)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, apperrors.InvalidInput("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := s.ledger.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, apperrors.Wrap(err, "failed to list runs"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": records})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	record, ok := s.fetchRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	record, ok := s.fetchRun(w, r)
	if !ok {
		return
	}
	md := report.BuildMarkdown(record)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.RenderHTML(md))
}

func (s *Server) fetchRun(w http.ResponseWriter, r *http.Request) (*run.Record, bool) {
	id := core.RunID(chi.URLParam(r, "id"))
	record, err := s.ledger.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRunNotFound) {
			writeError(w, apperrors.NotFound("run"))
		} else {
			writeError(w, apperrors.Wrap(err, "failed to fetch run"))
		}
		return nil, false
	}
	return record, true
}

func parseReferenceScalar(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, apperrors.InvalidInput("reference is required")
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, apperrors.InvalidInput("reference must be a number for scalar tests")
	}
	return value, nil
}

func parseReferenceVector(raw json.RawMessage) ([]float64, error) {
	if len(raw) == 0 {
		return nil, apperrors.InvalidInput("reference is required")
	}
	var values []float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, apperrors.InvalidInput("reference must be an array of numbers for row tests")
	}
	return values, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}
