package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/teamtab/internal/config"
	"github.com/JonMunkholm/teamtab/internal/core"
	_ "github.com/JonMunkholm/teamtab/internal/core/layouts"
)

func testConfig() *config.Config {
	return &config.Config{
		UI:     config.UIConfig{Host: "127.0.0.1", Port: 5173, RequestTimeout: 5 * time.Second, EnableCSP: true},
		Upload: config.UploadConfig{MaxFileSize: 1 << 20},
		Remote: config.RemoteConfig{MaxConcurrent: 2},
		Load:   config.LoadConfig{MaxConcurrent: 1, MaxWaitTime: 100 * time.Millisecond},
		Export: config.ExportConfig{DefaultLayout: "embedded", StatusTTL: 2500 * time.Millisecond},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	svc, err := core.NewService(cfg)
	require.NoError(t, err)
	return NewServer(svc, cfg)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func apiRequest(method, target string, body *bytes.Buffer, contentType string) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".json")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeRows(t *testing.T, rec *httptest.ResponseRecorder) RowsResponse {
	t.Helper()
	var resp RowsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestPage_Empty(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<th>Team Name</th>")
	assert.Contains(t, body, "No data yet")
	assert.Contains(t, body, `id="copy-table" class="outline" disabled`)
	assert.Contains(t, body, "const statusTTL = 2500;")
	assert.NotContains(t, body, "/api/load/remote")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestLoadMock_JSON(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/mock", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeRows(t, rec)
	assert.Equal(t, "embedded", resp.Layout)
	assert.Equal(t, 3, resp.Teams)
	assert.Len(t, resp.Rows, 5)
	assert.Equal(t, "Showing sample data / 3 teams", resp.Status)
	assert.NotEmpty(t, resp.LoadID)
}

func TestLoadMock_SeparateLayout(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/mock?layout=separate", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeRows(t, rec)
	assert.Equal(t, "separate", resp.Layout)
	assert.Equal(t, []string{"Team Name", "Team ID", "Business Unit", "Email", "Role Name", "Privilege", "Environment"}, resp.Header)
}

func TestLoadMock_UnknownLayout(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/mock?layout=wide", nil, ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EXP002", decodeError(t, rec).Code)
}

func TestLoadMock_FormRedirects(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/load/mock", strings.NewReader(url.Values{"layout": {"embedded"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := do(t, s, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	page := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	body := page.Body.String()
	assert.Contains(t, body, "Showing sample data / 3 teams")
	assert.Contains(t, body, "<td>APAC Sales Squad</td>")
	assert.Contains(t, body, "Quote Approver")
	assert.Contains(t, body, "&#34;_businessunitid_value&#34;")
}

func TestLoadFile(t *testing.T) {
	s := newTestServer(t, testConfig())
	body, contentType := multipartBody(t, map[string]string{
		"file": `{"value":[{"teamid":"t1","name":"A","description":"multi\nline","teamroles_association":[]}]}`,
	}, nil)

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/file", body, contentType))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeRows(t, rec)
	assert.Equal(t, [][]string{{"A", "t1", "", "", "", ""}}, resp.Rows)
	assert.Equal(t, "Showing JSON file / 1 teams", resp.Status)
}

func TestLoadFile_WithRoles(t *testing.T) {
	s := newTestServer(t, testConfig())
	body, contentType := multipartBody(t, map[string]string{
		"file":  `{"value":[{"teamid":"t1","name":"A","emailaddress":"a@example.com"}]}`,
		"roles": `{"value":[{"name":"X","parentId":"t1","privilege":"Read","environment":"prod"}]}`,
	}, nil)

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/file", body, contentType))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeRows(t, rec)
	assert.Equal(t, "separate", resp.Layout)
	assert.Equal(t, [][]string{{"A", "t1", "", "a@example.com", "X", "Read", "prod"}}, resp.Rows)
}

func TestLoadFile_InvalidJSONKeepsState(t *testing.T) {
	s := newTestServer(t, testConfig())
	require.Equal(t, http.StatusOK, do(t, s, apiRequest(http.MethodPost, "/api/load/mock", nil, "")).Code)

	body, contentType := multipartBody(t, map[string]string{"file": `{"value": [`}, nil)
	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/file", body, contentType))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FILE002", decodeError(t, rec).Code)

	rows := decodeRows(t, do(t, s, apiRequest(http.MethodGet, "/api/rows", nil, "")))
	assert.Equal(t, 3, rows.Teams)
	assert.True(t, strings.HasPrefix(rows.Error, "load failed: invalid json:"), rows.Error)
}

func TestLoadFile_Missing(t *testing.T) {
	s := newTestServer(t, testConfig())
	body, contentType := multipartBody(t, nil, map[string]string{"layout": ""})

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/file", body, contentType))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FILE004", decodeError(t, rec).Code)
}

func TestLoadFile_TooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxFileSize = 64
	s := newTestServer(t, cfg)
	body, contentType := multipartBody(t, map[string]string{
		"file": `{"value":[` + strings.Repeat(`{"teamid":"t"},`, 20) + `{}]}`,
	}, nil)

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/file", body, contentType))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "FILE001", decodeError(t, rec).Code)
}

func TestLoadRemote_NotConfigured(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/remote", nil, ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "SRC004", decodeError(t, rec).Code)
}

func TestLoadRemote(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/teams":
			w.Write([]byte(`{"value":[{"teamid":"t1","name":"A"},{"teamid":"t2","name":"B"}]}`))
		case "/teams/t1/roles":
			w.Write([]byte(`{"value":[{"name":"X"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.Remote.BaseURL = upstream.URL
	s := newTestServer(t, cfg)

	rec := do(t, s, apiRequest(http.MethodPost, "/api/load/remote", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeRows(t, rec)
	assert.Equal(t, "separate", resp.Layout)
	assert.Equal(t, [][]string{
		{"A", "t1", "", "", "X", "", ""},
		{"B", "t2", "", "", "", "", ""},
	}, resp.Rows)
}

func TestClear(t *testing.T) {
	s := newTestServer(t, testConfig())
	require.Equal(t, http.StatusOK, do(t, s, apiRequest(http.MethodPost, "/api/load/mock", nil, "")).Code)

	rec := do(t, s, apiRequest(http.MethodPost, "/api/clear", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeRows(t, rec)
	assert.Zero(t, resp.Teams)
	assert.Empty(t, resp.Rows)
	assert.Empty(t, resp.LoadID)
}

func TestExportTSV(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, apiRequest(http.MethodGet, "/api/export/tsv", nil, ""))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EXP001", decodeError(t, rec).Code)

	require.Equal(t, http.StatusOK, do(t, s, apiRequest(http.MethodPost, "/api/load/mock", nil, "")).Code)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/export/tsv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/tab-separated-values; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Team Name\tTeam ID\tBusiness Unit\tCategory\tRole ID\tRole Name", lines[0])
	assert.Equal(t, "APAC Sales Squad\td4d7cd62-e35c-4807-83c1-8651724af010\tBU-SALES\t1001\trole-001\tSales Manager", lines[1])

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/export/tsv?download=1", nil))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="teams_`)
}

func TestExportXLSX(t *testing.T) {
	s := newTestServer(t, testConfig())
	require.Equal(t, http.StatusOK, do(t, s, apiRequest(http.MethodPost, "/api/load/mock", nil, "")).Code)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/export/xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(core.XLSXSheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}

func TestPreview(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/preview", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	body, contentType := multipartBody(t, map[string]string{
		"file": `{"value":[{"teamid":"t1","overriddencreatedon":"2024-05-01"}]}`,
	}, nil)
	require.Equal(t, http.StatusOK, do(t, s, apiRequest(http.MethodPost, "/api/load/file", body, contentType)).Code)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/preview", nil))
	assert.Contains(t, rec.Body.String(), `"overriddencreatedon": "2024-05-01"`)
}

func TestLayouts(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/layouts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var layouts []LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layouts))
	require.Len(t, layouts, 2)
	assert.Equal(t, "embedded", layouts[0].Key)
	assert.Equal(t, "separate", layouts[1].Key)
}

func TestStatus(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 1, status.Loads.MaxConcurrent)
	assert.False(t, status.Remote)
}

func TestErrorPage_HTML(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/export/tsv", nil)
	req.Header.Set("Accept", "text/html")
	rec := do(t, s, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "There is nothing to export (Code: EXP001)")
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		accept string
		want   bool
	}{
		{name: "api default", path: "/api/rows", want: true},
		{name: "explicit json", path: "/", accept: "application/json", want: true},
		{name: "browser form", path: "/api/load/mock", accept: "text/html,application/xhtml+xml", want: false},
		{name: "page", path: "/", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, wantsJSON(req))
		})
	}
}
