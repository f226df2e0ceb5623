package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pthm/doclint/internal/annotate"
	"github.com/pthm/doclint/internal/engine"
	"github.com/pthm/doclint/internal/rules"
)

func newTestServer(maxUpload int64) *Server {
	return NewServer(Options{
		Engine:         engine.New(engine.WithAnnotator(annotate.Naive{}), engine.WithWorkers(2)),
		Source:         rules.DefaultRegistry(),
		MaxUploadBytes: maxUpload,
	})
}

func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte(content))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decode(t, rec)["status"]; got != "ok" {
		t.Errorf("status field = %v, want ok", got)
	}
}

func TestUpload(t *testing.T) {
	content := "The file was saved by the user. Please click Submit.\n\nRun the tool."
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, uploadRequest(t, "file", "guide.txt", content))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Paragraphs []engine.ParagraphReport `json:"paragraphs"`
		Report     engine.AggregateReport   `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(resp.Paragraphs))
	}
	first := resp.Paragraphs[0]
	if first.ParagraphNumber != 1 || first.QualityScore != 70 || len(first.Feedback) != 6 {
		t.Errorf("first paragraph = %+v", first)
	}
	if resp.Paragraphs[1].Text != "Run the tool." {
		t.Errorf("second paragraph text = %q", resp.Paragraphs[1].Text)
	}
	if resp.Report.ParagraphCount != 2 || resp.Report.TotalWords != 13 {
		t.Errorf("report = %+v", resp.Report)
	}
}

func TestUploadWireFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, uploadRequest(t, "file", "a.md", "Run the tool."))

	body := rec.Body.String()
	for _, key := range []string{
		`"paragraphNumber"`, `"readabilityScores"`, `"flesch_reading_ease"`,
		`"gunning_fog"`, `"smog_index"`, `"automated_readability_index"`,
		`"qualityScore"`, `"avgQualityScore"`, `"paragraphCount"`, `"totalWords"`,
		`"color"`, `"message"`, `"feedback"`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("response missing %s: %s", key, body)
		}
	}
}

func TestUploadEmptyDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, uploadRequest(t, "file", "empty.txt", "  \n\n "))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"paragraphs":[],"report":{}}` {
		t.Errorf("body = %s", got)
	}
}

func TestUploadErrors(t *testing.T) {
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		code     int
		messages []string
	}{
		{
			name: "wrong field",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "document", "a.txt", "text")
			},
			code:     http.StatusBadRequest,
			messages: []string{"No file part"},
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("x"))
			},
			code:     http.StatusBadRequest,
			messages: []string{"No file part"},
		},
		{
			name: "empty filename",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "", "text")
			},
			code:     http.StatusBadRequest,
			messages: []string{"No selected file", "No file part"},
		},
		{
			name: "broken docx",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "a.docx", "not a zip")
			},
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestServer(0).ServeHTTP(rec, tt.req(t))
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.code, rec.Body.String())
			}
			msg, _ := decode(t, rec)["error"].(string)
			if msg == "" {
				t.Fatal("expected an error message")
			}
			if len(tt.messages) == 0 {
				return
			}
			for _, m := range tt.messages {
				if msg == m {
					return
				}
			}
			t.Errorf("error = %q, want one of %q", msg, tt.messages)
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(10).ServeHTTP(rec, uploadRequest(t, "file", "big.txt", strings.Repeat("word ", 100)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestFeedback(t *testing.T) {
	s := newTestServer(0)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		s.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"feedback": "Great tool"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp["message"] != "Feedback submitted successfully" {
		t.Errorf("message = %v", resp["message"])
	}

	post(`{"feedback": "Needs dark mode"}`)

	for _, body := range []string{`{}`, `{"feedback": ""}`, `not json`} {
		rec := post(body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s status = %d, want 400", body, rec.Code)
		}
		if got := decode(t, rec)["error"]; got != "No feedback provided" {
			t.Errorf("POST %s error = %v", body, got)
		}
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedbacks", nil))
	var list struct {
		FeedbackList []string `json:"feedback_list"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.FeedbackList) != 2 || list.FeedbackList[0] != "Great tool" || list.FeedbackList[1] != "Needs dark mode" {
		t.Errorf("feedback_list = %q", list.FeedbackList)
	}
}

func TestFeedbackListEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedbacks", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != `{"feedback_list":[]}` {
		t.Errorf("body = %s", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\docs\guide.docx`, "guide.docx"},
		{"", "unnamed"},
		{"a..b.txt", "a_b.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sanitizeFilename(tt.in); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
