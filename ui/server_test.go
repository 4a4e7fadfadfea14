package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"bootstat/adapters/memory"
	"bootstat/internal/statistics"
	"bootstat/internal/testkit"
)

func newTestServer() *Server {
	return NewServer(Config{DefaultAlpha: 0.01, DefaultResamples: 300}, memory.NewRunLedger())
}

func postTest(t *testing.T, server *Server, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/tests", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRunTestEndpoint(t *testing.T) {
	server := newTestServer()
	sample := testkit.Normal(1, 0, 1, 400)

	rec := postTest(t, server, map[string]interface{}{
		"name":      "mean-check",
		"sample":    sample,
		"statistic": "mean",
		"reference": statistics.Mean(sample),
		"seed":      42,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Passed)
	require.NotEmpty(t, resp.RunID)
	require.True(t, resp.Result.Scalar)
	require.Len(t, resp.Result.Lower, 1)
}

func TestRunTestEndpointFailedDecision(t *testing.T) {
	server := newTestServer()

	rec := postTest(t, server, map[string]interface{}{
		"name":      "far-reference",
		"sample":    testkit.Normal(2, 0, 1, 400),
		"statistic": "mean",
		"reference": 5,
		"seed":      42,
	})
	// A failed decision is still a completed evaluation, not a client error.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Passed)
	require.Equal(t, 5.0, resp.Result.Reference[0])
}

func TestRunTestEndpointRows(t *testing.T) {
	server := newTestServer()
	rows := testkit.NormalRows(3, []float64{0, 1, 2}, 1, 300)

	rec := postTest(t, server, map[string]interface{}{
		"name":      "vector-means",
		"rows":      rows,
		"statistic": "componentmeans",
		"reference": statistics.ComponentMeans(rows),
		"seed":      7,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Result.Scalar)
	require.Len(t, resp.Result.Lower, 3)
	require.InDelta(t, 0.01/3, resp.Result.AlphaCorrected, 1e-15)
}

func TestRunTestEndpointValidation(t *testing.T) {
	server := newTestServer()

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			name:    "missing statistic",
			payload: map[string]interface{}{"sample": []float64{1, 2}, "reference": 0},
		},
		{
			name: "unknown statistic",
			payload: map[string]interface{}{
				"sample": []float64{1, 2}, "statistic": "kurtosis", "reference": 0,
			},
		},
		{
			name: "both sample and rows",
			payload: map[string]interface{}{
				"sample": []float64{1}, "rows": [][]float64{{1}},
				"statistic": "mean", "reference": 0,
			},
		},
		{
			name: "vector reference for scalar test",
			payload: map[string]interface{}{
				"sample": []float64{1, 2}, "statistic": "mean", "reference": []float64{0},
			},
		},
		{
			name: "bad alpha",
			payload: map[string]interface{}{
				"sample": []float64{1, 2}, "statistic": "mean", "reference": 0, "alpha": 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postTest(t, server, tt.payload)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRunsEndpoints(t *testing.T) {
	server := newTestServer()
	sample := testkit.Normal(5, 0, 1, 300)

	rec := postTest(t, server, map[string]interface{}{
		"name":      "listed",
		"sample":    sample,
		"statistic": "mean",
		"reference": statistics.Mean(sample),
		"seed":      1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	listRec := httptest.NewRecorder()
	server.Handler().ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	require.Equal(t, http.StatusOK, listRec.Code)
	require.Contains(t, listRec.Body.String(), "listed")

	getRec := httptest.NewRecorder()
	server.Handler().ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s", resp.RunID), nil))
	require.Equal(t, http.StatusOK, getRec.Code)

	reportRec := httptest.NewRecorder()
	server.Handler().ServeHTTP(reportRec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s/report", resp.RunID), nil))
	require.Equal(t, http.StatusOK, reportRec.Code)
	require.Contains(t, reportRec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, reportRec.Body.String(), "<table>")

	missingRec := httptest.NewRecorder()
	server.Handler().ServeHTTP(missingRec, httptest.NewRequest(http.MethodGet, "/api/runs/unknown-id", nil))
	require.Equal(t, http.StatusNotFound, missingRec.Code)
}
