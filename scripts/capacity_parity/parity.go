package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

// parityCase is one capacity request replayed against both deployments.
type parityCase struct {
	Name     string          `json:"name"`
	Path     string          `json:"path"`
	Body     json.RawMessage `json:"body"`
	Fields   []string        `json:"fields"`
	Critical bool            `json:"critical"`
}

type caseFile struct {
	Cases []parityCase `json:"cases"`
}

// outcome records how the two deployments answered one case.
type outcome struct {
	Case           parityCase
	GoStatus       int
	LegacyStatus   int
	Mismatched     []string
	Err            error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func (o outcome) ok() bool {
	return o.Err == nil && o.GoStatus == o.LegacyStatus && len(o.Mismatched) == 0
}

func loadCases(path string) ([]parityCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file caseFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Cases) == 0 {
		return nil, fmt.Errorf("no cases defined in %s", path)
	}
	return file.Cases, nil
}

type runner struct {
	client     *http.Client
	goBase     string
	legacyBase string
	token      string
}

func (r *runner) compare(ctx context.Context, pc parityCase) outcome {
	res := outcome{Case: pc}

	goStatus, goBody, goDur, err := r.post(ctx, r.goBase, pc)
	if err != nil {
		res.Err = fmt.Errorf("go request failed: %w", err)
		return res
	}
	legacyStatus, legacyBody, legacyDur, err := r.post(ctx, r.legacyBase, pc)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}
	res.GoStatus, res.DurationGo = goStatus, goDur
	res.LegacyStatus, res.DurationLegacy = legacyStatus, legacyDur

	mismatched, err := diffFields(goBody, legacyBody, pc.Fields)
	if err != nil {
		res.Err = err
		return res
	}
	res.Mismatched = mismatched
	return res
}

func (r *runner) post(ctx context.Context, base string, pc parityCase) (int, []byte, time.Duration, error) {
	path := pc.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+path, bytes.NewReader(pc.Body))
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// diffFields lists the dotted paths whose values differ between the two bodies.
// Without fields the whole documents are compared.
func diffFields(goBody, legacyBody []byte, fields []string) ([]string, error) {
	var goDoc, legacyDoc interface{}
	if err := json.Unmarshal(goBody, &goDoc); err != nil {
		return nil, fmt.Errorf("decode go body: %w", err)
	}
	if err := json.Unmarshal(legacyBody, &legacyDoc); err != nil {
		return nil, fmt.Errorf("decode legacy body: %w", err)
	}

	if len(fields) == 0 {
		if reflect.DeepEqual(goDoc, legacyDoc) {
			return nil, nil
		}
		return []string{"<body>"}, nil
	}

	var mismatched []string
	for _, field := range fields {
		a, aok := lookup(goDoc, field)
		b, bok := lookup(legacyDoc, field)
		if aok != bok || !reflect.DeepEqual(a, b) {
			mismatched = append(mismatched, field)
		}
	}
	return mismatched, nil
}

func lookup(doc interface{}, path string) (interface{}, bool) {
	cur := doc
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func printReport(w io.Writer, results []outcome) {
	fmt.Fprintln(w, "Capacity Parity Report")
	fmt.Fprintln(w, "======================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Err != nil:
			status = "ERROR"
		case !res.ok():
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Case.Name, res.Case.Path)
		if res.Err != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Err)
			continue
		}
		fmt.Fprintf(w, "  Go: %d (%s) | Legacy: %d (%s)\n", res.GoStatus, res.DurationGo, res.LegacyStatus, res.DurationLegacy)
		if len(res.Mismatched) > 0 {
			fmt.Fprintf(w, "  Mismatched: %s | Critical: %t\n", strings.Join(res.Mismatched, ", "), res.Case.Critical)
		}
	}
}
