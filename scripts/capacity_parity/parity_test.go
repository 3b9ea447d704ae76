package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffFields(t *testing.T) {
	goBody := []byte(`{"data":{"outcome":"available_later","resolved_date":"2024-03-05","days_searched":1}}`)
	legacyBody := []byte(`{"data":{"outcome":"available_later","resolved_date":"2024-03-06","days_searched":2}}`)

	mismatched, err := diffFields(goBody, legacyBody, []string{"data.outcome", "data.resolved_date"})
	require.NoError(t, err)
	assert.Equal(t, []string{"data.resolved_date"}, mismatched)

	mismatched, err = diffFields(goBody, goBody, nil)
	require.NoError(t, err)
	assert.Empty(t, mismatched)

	_, err = diffFields([]byte("not json"), goBody, nil)
	assert.Error(t, err)
}

func TestDiffFieldsMissingPath(t *testing.T) {
	mismatched, err := diffFields([]byte(`{"data":{"available":true}}`), []byte(`{"error":{"code":"NOT_FOUND"}}`), []string{"data.available"})
	require.NoError(t, err)
	assert.Equal(t, []string{"data.available"}, mismatched)
}

func TestRunnerCompare(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	goSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"available":true,"reason_code":"fits"}}`))
	}))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"available":false,"reason_code":"holiday"}}`))
	}))
	defer legacySrv.Close()

	r := &runner{client: goSrv.Client(), goBase: goSrv.URL, legacyBase: legacySrv.URL, token: "abc"}
	res := r.compare(context.Background(), parityCase{
		Name:   "holiday",
		Path:   "capacity/evaluate",
		Body:   []byte(`{"shift_type":"1"}`),
		Fields: []string{"data.available", "data.reason_code"},
	})

	require.NoError(t, res.Err)
	assert.False(t, res.ok())
	assert.Equal(t, http.StatusOK, res.GoStatus)
	assert.Equal(t, []string{"data.available", "data.reason_code"}, res.Mismatched)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.JSONEq(t, `{"shift_type":"1"}`, string(gotBody))

	var buf bytes.Buffer
	printReport(&buf, []outcome{res})
	assert.Contains(t, buf.String(), "[DIFF] holiday")
}
