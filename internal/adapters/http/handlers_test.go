package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/hvmartinez/coordsim/internal/adapters/http"
	"github.com/hvmartinez/coordsim/internal/core/domain"
	"github.com/hvmartinez/coordsim/internal/core/usecases"
	"github.com/hvmartinez/coordsim/internal/pkg/config"
)

func testSimulatorConfig() config.SimulatorConfig {
	return config.SimulatorConfig{
		CationMin: 0.1, CationMax: 2.0, CationDefault: 1.0,
		AnionMin: 0.1, AnionMax: 2.5, AnionDefault: 1.4,
		Step: 0.01, SweepSteps: 241,
	}
}

func newTestApp() *fiber.App {
	deps := &handler.Dependencies{
		Classifier: usecases.NewClassifierService(domain.Pauling, nil),
		Simulator:  testSimulatorConfig(),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func TestClassify_Success(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		cation   float64
		anion    float64
		wantNC   float64
		wantGeom string
	}{
		{0.3, 1.0, 4, "tetrahedral"},
		{0.5, 1.0, 6, "octahedral"},
		{0.9, 1.0, 8, "cubic"},
		{1.0, 1.0, 12, "close-packed"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", fmt.Sprintf("/v1/classify?cation=%g&anion=%g", tt.cation, tt.anion), nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("classify(%g, %g): status %d", tt.cation, tt.anion, resp.StatusCode)
		}

		var result struct {
			Ratio              float64 `json:"ratio"`
			CoordinationNumber float64 `json:"coordination_number"`
			Geometry           string  `json:"geometry"`
			Interval           struct {
				Lower float64 `json:"lower"`
			} `json:"interval"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.CoordinationNumber != tt.wantNC {
			t.Errorf("classify(%g, %g): NC %v, want %v", tt.cation, tt.anion, result.CoordinationNumber, tt.wantNC)
		}
		if result.Geometry != tt.wantGeom {
			t.Errorf("classify(%g, %g): geometry %q, want %q", tt.cation, tt.anion, result.Geometry, tt.wantGeom)
		}
	}
}

func TestClassify_MissingParams(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/classify?cation=0.5", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestClassify_NonNumericParam(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/classify?cation=abc&anion=1.0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestClassify_ZeroAnion(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/classify?cation=1.0&anion=0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var apiErr handler.APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if apiErr.Code != "undefined_ratio" {
		t.Errorf("code = %q, want undefined_ratio", apiErr.Code)
	}
}

func TestClassify_NegativeRadius(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/classify?cation=-1.0&anion=2.0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var apiErr handler.APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if apiErr.Code != "invalid_radius" {
		t.Errorf("code = %q, want invalid_radius", apiErr.Code)
	}
}

func TestTable_ReturnsOrderedIntervals(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/table", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var intervals []struct {
		Lower              float64 `json:"lower"`
		CoordinationNumber int     `json:"coordination_number"`
		Geometry           string  `json:"geometry"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&intervals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(intervals) != 6 {
		t.Fatalf("got %d intervals, want 6", len(intervals))
	}
	if intervals[0].CoordinationNumber != 2 || intervals[5].CoordinationNumber != 12 {
		t.Errorf("table order wrong: first NC %d, last NC %d",
			intervals[0].CoordinationNumber, intervals[5].CoordinationNumber)
	}

	if cc := resp.Header.Get("Cache-Control"); !strings.Contains(cc, "immutable") {
		t.Errorf("Cache-Control = %q, want immutable", cc)
	}
}

func TestSweep_Success(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/sweep?cation=1.0&min_anion=0.5&max_anion=1.5&steps=11", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var points []struct {
		AnionRadius        float64 `json:"anion_radius"`
		Ratio              float64 `json:"ratio"`
		CoordinationNumber int     `json:"coordination_number"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(points) != 11 {
		t.Fatalf("got %d points, want 11", len(points))
	}
	if points[0].Ratio != 2.0 {
		t.Errorf("first ratio = %g, want 2.0", points[0].Ratio)
	}
}

func TestSweep_DefaultsFromConfig(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/sweep?cation=1.0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var points []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(points) != 241 {
		t.Errorf("got %d points, want configured default 241", len(points))
	}
}

func TestSweep_ReversedRange(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/sweep?cation=1.0&min_anion=2.0&max_anion=1.0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealth_Returns200(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestReady_ValidTableNoCache(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Checks["table"] != "ok" {
		t.Errorf("table check = %q, want ok", body.Checks["table"])
	}
	if body.Checks["cache"] != "not configured" {
		t.Errorf("cache check = %q, want not configured", body.Checks["cache"])
	}
}

func TestSimulatorPage(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	// Slider bounds come from the simulator config.
	for _, want := range []string{`min="0.1"`, `max="2.5"`, `value="1.4"`, "Radius-Ratio Coordination Simulator"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestGraphQL_Classify(t *testing.T) {
	app := newTestApp()

	query := `{"query":"{ classify(cation: 0.5, anion: 1.0) { ratio coordination_number geometry } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Classify struct {
				Ratio              float64 `json:"ratio"`
				CoordinationNumber int     `json:"coordination_number"`
				Geometry           string  `json:"geometry"`
			} `json:"classify"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) > 0 {
		t.Fatalf("graphql errors: %v", body.Errors)
	}
	if body.Data.Classify.CoordinationNumber != 6 || body.Data.Classify.Geometry != "octahedral" {
		t.Errorf("classify = %+v", body.Data.Classify)
	}
}

func TestGraphQL_Table(t *testing.T) {
	app := newTestApp()

	query := `{"query":"{ table { lower coordination_number geometry } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Table []interface{} `json:"table"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data.Table) != 6 {
		t.Errorf("got %d table rows, want 6", len(body.Data.Table))
	}
}

func TestAPIVersionHeader(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if got := resp.Header.Get("X-API-Version"); got != "1.0.0" {
		t.Errorf("X-API-Version = %q, want 1.0.0", got)
	}
}

func TestClassify_CacheControlHeader(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/classify?cation=0.5&anion=1.0", nil)
	resp, _ := app.Test(req, -1)
	if cc := resp.Header.Get("Cache-Control"); !strings.Contains(cc, "max-age=3600") {
		t.Errorf("Cache-Control = %q, want max-age=3600", cc)
	}
}

func TestTable_ETag(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/v1/table", nil)
	resp, _ := app.Test(req, -1)
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag on /v1/table response")
	}

	// Replaying with If-None-Match yields 304.
	req = httptest.NewRequest("GET", "/v1/table", nil)
	req.Header.Set("If-None-Match", etag)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 304 {
		t.Errorf("status with If-None-Match = %d, want 304", resp.StatusCode)
	}
}

func TestWebSocketRoute_RequiresUpgrade(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/ws", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 426 {
		t.Errorf("status = %d, want 426 Upgrade Required", resp.StatusCode)
	}
}
