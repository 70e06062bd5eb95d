package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lox/inmetdash/internal/api"
	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/ingest"
	"github.com/lox/inmetdash/internal/store"
)

const header = "Data;Hora (UTC);Temp. Ins. (C);Temp. Max. (C);Temp. Min. (C);Umi. Ins. (%);Umi. Max. (%);Umi. Min. (%);Pto Orvalho Ins. (C);Pressao Ins. (hPa);Pressao Max. (hPa);Pressao Min. (hPa);Vel. Vento (m/s);Dir. Vento (m/s);Raj. Vento (m/s);Radiacao (KJ/m²);Chuva (mm)\n"

// fixtureCSV has 20 January rows and 3 March rows.
func fixtureCSV() string {
	var b strings.Builder
	b.WriteString(header)
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "%02d/01/2025;%d00;%d,5;;;%d;;;;1010,0;;;%d,0;%d;;;0\n", 1+i%28, i%24, 24+i%5, 60+i, 1+i%6, (i*20)%360)
	}
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "%02d/03/2025;1200;30,0;;;80;;;;1008,0;;;2,0;225;;;0\n", 1+i)
	}
	return b.String()
}

func setupTestServer(t *testing.T) *api.Server {
	t.Helper()
	ds, err := ingest.Load(strings.NewReader(fixtureCSV()), ingest.Options{})
	if err != nil {
		t.Fatalf("ingest.Load: %v", err)
	}
	obs := store.New(ds)
	srv, err := api.NewServer(obs, store.Aggregate(obs.All()), ":0", nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func get(t *testing.T, srv *api.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	w := get(t, srv, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var health api.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "ok" || health.Observations != 23 {
		t.Errorf("health = %+v", health)
	}
	if len(health.Months) != 2 || health.Months[0] != "Janeiro" || health.Months[1] != "Março" {
		t.Errorf("months = %v", health.Months)
	}
}

func TestIndexPage(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`<title>Dashboard Meteorológico INMET</title>`,
		`<option value="Todos" selected>Todos</option>`,
		`<option value="Março">Março</option>`,
		`id="kpi-vento"`,
		`id="serie-vento"`,
		`id="rosa"`,
		`id="tabela"`,
		`página 1 de 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if got := strings.Count(body, `class="kpi"`); got != 5 {
		t.Errorf("kpi cards = %d, want 5", got)
	}
	if got := strings.Count(body, `<figure`); got != 8 {
		t.Errorf("figures = %d, want 8", got)
	}
}

func TestIndexPage_UnknownRoute(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)
	if w := get(t, srv, "/nope"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDashboardPartial(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	w := get(t, srv, "/partials/dashboard?mes=Mar%C3%A7o")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("partial should not contain the page shell")
	}
	if !strings.Contains(body, "30.0 °C") {
		t.Error("expected March mean temperature 30.0 °C")
	}
	if !strings.Contains(body, "3 registros") {
		t.Error("expected 3 rows for March")
	}

	w = get(t, srv, "/partials/dashboard?mes=Fevereiro")
	if got := strings.Count(w.Body.String(), dashboard.NoData); got < 5 {
		t.Errorf("empty month should show %q for every KPI, found %d", dashboard.NoData, got)
	}
}

func TestTablePartial(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"second page", "?page=2", []string{"página 2 de 2", "23 de 23 linhas"}},
		{"page clamps", "?page=99", []string{"página 2 de 2"}},
		{"filter", "?col=Dir.+Vento+%28m%2Fs%29&q=%3D225", []string{"página 1 de 1", "3 de 23 linhas"}},
		{"month", "?mes=Janeiro", []string{"20 de 20 linhas"}},
		{"sort", "?sort=Vel.+Vento+%28m%2Fs%29&desc=true", []string{" ▼"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, srv, "/partials/table"+tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			body := w.Body.String()
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}

func TestAPIRender(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	w := get(t, srv, "/api/render?mes=Janeiro")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var res dashboard.Result
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Selection != "Janeiro" || res.Rows != 20 {
		t.Errorf("selection/rows = %s/%d", res.Selection, res.Rows)
	}
	if len(res.KPIs) != 5 || len(res.Figures) != 8 {
		t.Errorf("kpis=%d figures=%d", len(res.KPIs), len(res.Figures))
	}
	if len(res.Table.Rows) != 20 {
		t.Errorf("table rows = %d, want 20", len(res.Table.Rows))
	}
}

func TestAPIMonths(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	var opts []dashboard.Option
	if err := json.NewDecoder(get(t, srv, "/api/months").Body).Decode(&opts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(opts) != 3 || opts[0].Value != "Todos" || opts[2].Value != "Março" {
		t.Errorf("options = %+v", opts)
	}
}

func TestFigureImages(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	for _, id := range dashboard.FigureIDs {
		t.Run(id, func(t *testing.T) {
			w := get(t, srv, "/figures/"+id+".png?mes=Janeiro")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q", ct)
			}
			if !strings.HasPrefix(w.Body.String(), "\x89PNG") {
				t.Error("body is not a PNG")
			}
		})
	}

	for _, path := range []string{"/figures/pizza.png", "/figures/rosa.svg"} {
		if w := get(t, srv, path); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestKPIImage(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	w := get(t, srv, "/kpi.png?mes=Fevereiro&tema=escuro")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "\x89PNG") {
		t.Error("body is not a PNG")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	srv := setupTestServer(t)

	get(t, srv, "/api/months")
	w := get(t, srv, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "inmetdash_http_requests_total") {
		t.Error("expected http request counter in exposition")
	}
}
