package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/coolbeans/attex/pkg/group"
)

func newTestServer() *Server {
	return New(DefaultConfig(), zerolog.Nop())
}

// multipartUpload builds a multipart body with a file part and optional
// extra form values.
func multipartUpload(t *testing.T, filename, content string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	for key, value := range values {
		if err := w.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestExtractEndpoint(t *testing.T) {
	doc := `I. Awards

See Attachment 1 - National Award.
`
	body, contentType := multipartUpload(t, "cover.txt", doc, map[string]string{"dialect": "outline"})
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}

	var result group.GroupedResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not valid json: %v", err)
	}
	if len(result.Sections) != 1 || result.Sections[0].Name != "I. Awards" {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(result.Sections[0].Items) != 1 || result.Sections[0].Items[0].Num != 1 {
		t.Errorf("unexpected items: %+v", result.Sections[0].Items)
	}
}

func TestExtractEndpointDefaultDialect(t *testing.T) {
	// No dialect form value: the configured default applies.
	doc := `I. Awards

See Attachment 1 - National Award.
`
	body, contentType := multipartUpload(t, "cover.txt", doc, nil)
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestExtractEndpointErrors(t *testing.T) {
	cases := []struct {
		name         string
		method       string
		filename     string
		content      string
		values       map[string]string
		expectedCode int
	}{
		{
			name:         "get not allowed",
			method:       http.MethodGet,
			expectedCode: http.StatusMethodNotAllowed,
		},
		{
			name:         "unsupported extension",
			method:       http.MethodPost,
			filename:     "cover.pdf",
			content:      "data",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown dialect",
			method:       http.MethodPost,
			filename:     "cover.txt",
			content:      "See Attachment 1 - Award.",
			values:       map[string]string{"dialect": "cursive"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty document",
			method:       http.MethodPost,
			filename:     "cover.txt",
			content:      "   \n\n  ",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req *http.Request
			if tc.method == http.MethodPost {
				body, contentType := multipartUpload(t, tc.filename, tc.content, tc.values)
				req = httptest.NewRequest(tc.method, "/extract", body)
				req.Header.Set("Content-Type", contentType)
			} else {
				req = httptest.NewRequest(tc.method, "/extract", nil)
			}
			rec := httptest.NewRecorder()

			newTestServer().Handler().ServeHTTP(rec, req)

			if rec.Code != tc.expectedCode {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tc.expectedCode, rec.Body)
			}
			var fault errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &fault); err != nil {
				t.Fatalf("error body is not valid json: %v", err)
			}
			if fault.Code != "input_error" {
				t.Errorf("fault code = %q, want input_error", fault.Code)
			}
		})
	}
}

func TestExtractEndpointMissingFile(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("dialect", "outline"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/extract", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestExtractEndpointRejectsOversizedUpload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxUploadBytes = 64
	srv := New(cfg, zerolog.Nop())

	body, contentType := multipartUpload(t, "cover.txt", strings.Repeat("x", 4096), nil)
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body)
	}
}
