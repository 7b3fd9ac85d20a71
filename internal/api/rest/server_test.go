package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/JaviLianes8/RealTajoFCBack/internal/reprocess"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

type testAPI struct {
	handler http.Handler
	store   *store.FileStore
}

func newTestAPI(t *testing.T, maxUpload int64) *testAPI {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	services := service.New(service.Deps{Store: fs, Archive: fs, Team: "REAL TAJO"})
	reprocessSvc := reprocess.NewService(fs, services.Processors())
	srv := NewServer(Options{Version: "test", MaxUploadBytes: maxUpload}, services, reprocessSvc, fs)
	return &testAPI{handler: srv.Handler(), store: fs}
}

func (a *testAPI) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func multipartRequest(t *testing.T, method, path, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func htmlDoc(lines ...string) []byte {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, l := range lines {
		b.WriteString("<p>" + l + "</p>")
	}
	b.WriteString("</body></html>")
	return []byte(b.String())
}

func roundDoc(n int) []byte {
	return htmlDoc(
		fmt.Sprintf("Jornada %d", n),
		"Descansa AMERICA",
		"REAL SPORT 2 - 1",
		"11-10-2025",
		"15:30",
		"REAL TAJO",
		"Campo: ENRIQUE MORENO - B - Hierba Artificial",
	)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

func TestRootAndStatus(t *testing.T) {
	api := newTestAPI(t, 0)

	rec := api.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	var root map[string]string
	decode(t, rec, &root)
	if rec.Code != http.StatusOK || root["message"] != "RUNNING REAL TAJO BACK" {
		t.Fatalf("unexpected root response %d %v", rec.Code, root)
	}

	rec = api.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	var status map[string]string
	decode(t, rec, &status)
	if status["status"] != "ok" || status["version"] != "test" {
		t.Fatalf("unexpected status %v", status)
	}

	rec = api.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("unexpected health response %d", rec.Code)
	}
}

func TestMatchdayUploadAndRetrieve(t *testing.T) {
	api := newTestAPI(t, 0)

	rec := api.do(t, multipartRequest(t, http.MethodPut, "/api/v1/matchdays", "jornada.html", "text/html", roundDoc(7)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/api/v1/matchdays/7" {
		t.Fatalf("unexpected location %q", loc)
	}
	uploaded := rec.Body.String()

	var payload struct {
		Number   int `json:"number"`
		Fixtures []struct {
			HomeTeam string `json:"home_team"`
			AwayTeam string `json:"away_team"`
		} `json:"fixtures"`
	}
	decode(t, rec, &payload)
	if payload.Number != 7 || len(payload.Fixtures) != 1 || payload.Fixtures[0].AwayTeam != "REAL TAJO" {
		t.Fatalf("expected the tracked team's fixture only, got %+v", payload)
	}

	for _, path := range []string{"/api/v1/matchdays/7", "/api/v1/matchdays/last"} {
		rec := api.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != uploaded {
			t.Fatalf("%s: unexpected response %d %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestMatchdayNotFound(t *testing.T) {
	api := newTestAPI(t, 0)

	for _, path := range []string{"/api/v1/matchdays/99", "/api/v1/matchdays/last", "/api/v1/classification", "/api/v1/top-scorers", "/api/v1/results/last"} {
		rec := api.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		var body errorBody
		decode(t, rec, &body)
		if body.Status != http.StatusNotFound || body.Error == "" {
			t.Fatalf("%s: unexpected error body %+v", path, body)
		}
	}
}

func TestUploadValidation(t *testing.T) {
	api := newTestAPI(t, 64)

	cases := []struct {
		name        string
		contentType string
		data        []byte
		want        int
	}{
		{"wrong type", "text/plain", []byte("hello"), http.StatusBadRequest},
		{"empty", "application/pdf", nil, http.StatusBadRequest},
		{"too large", "application/pdf", bytes.Repeat([]byte("x"), 65), http.StatusRequestEntityTooLarge},
		{"unreadable", "application/pdf", []byte("%PDF-garbage"), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		rec := api.do(t, multipartRequest(t, http.MethodPost, "/api/v1/classification", "doc.pdf", tc.contentType, tc.data))
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classification", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if rec := api.do(t, req); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing file: expected 400, got %d", rec.Code)
	}
}

func TestUnprocessableDocument(t *testing.T) {
	api := newTestAPI(t, 0)

	rec := api.do(t, multipartRequest(t, http.MethodPost, "/api/v1/classification", "c.html", "text/html", htmlDoc("Clasificación", "sin tabla")))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestClassificationUploadCreated(t *testing.T) {
	api := newTestAPI(t, 0)

	doc := htmlDoc("Equipos Puntos", "1EQUIPOA 3 1 1 0 0 2 1 3 0", "(*) Resultado provisional")
	rec := api.do(t, multipartRequest(t, http.MethodPost, "/api/v1/classification", "c.html", "text/html", doc))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var view struct {
		Teams []struct {
			Position int    `json:"position"`
			Team     string `json:"team"`
		} `json:"teams"`
	}
	decode(t, rec, &view)
	if len(view.Teams) != 1 || view.Teams[0].Team != "EQUIPOA" {
		t.Fatalf("unexpected view %+v", view)
	}

	rec = api.do(t, multipartRequest(t, http.MethodPut, "/api/v1/classification", "c.html", "text/html", doc))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on PUT, got %d", rec.Code)
	}
}

func TestUpdateAndDeleteLastMatchday(t *testing.T) {
	api := newTestAPI(t, 0)

	update := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/matchdays/last", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return api.do(t, req)
	}

	if rec := update(`{"number": 3, "fixtures": []}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without matchdays, got %d", rec.Code)
	}
	api.do(t, multipartRequest(t, http.MethodPut, "/api/v1/matchdays", "j.html", "text/html", roundDoc(3)))

	if rec := update(`{"number": 2, "fixtures": []}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on number mismatch, got %d", rec.Code)
	}
	if rec := update(`not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on invalid body, got %d", rec.Code)
	}
	rec := update(`{"number": 3, "fixtures": [{"home_team": "REAL TAJO", "away_team": null, "home_score": null, "away_score": null, "is_bye": true}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/matchdays/last", nil))
	var deleted map[string]interface{}
	decode(t, rec, &deleted)
	if rec.Code != http.StatusOK || deleted["matchday"] != float64(3) {
		t.Fatalf("unexpected delete response %d %v", rec.Code, deleted)
	}
	if rec := api.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/matchdays/last", nil)); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := api.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/matchdays/3", nil)); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestReprocessEndpoints(t *testing.T) {
	api := newTestAPI(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reprocess", strings.NewReader(`{"kind": "fixtures"}`))
	if rec := api.do(t, req); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/reprocess", strings.NewReader(`{"kinds": ["matchday"], "dry_run": true}`))
	rec := api.do(t, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/reprocess/status", nil))
	var status struct {
		Status  string        `json:"status"`
		History []interface{} `json:"history"`
	}
	decode(t, rec, &status)
	if rec.Code != http.StatusOK || len(status.History) != 1 {
		t.Fatalf("unexpected status %d %+v", rec.Code, status)
	}
}

func TestCORSPreflight(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	srv := NewServer(Options{AllowedOrigins: []string{"https://realtajo.example"}}, service.New(service.Deps{Store: fs}), nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/matchdays", nil)
	req.Header.Set("Origin", "https://realtajo.example")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "https://realtajo.example" {
		t.Fatalf("unexpected preflight %d %v", rec.Code, rec.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unexpected allowed origin")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
