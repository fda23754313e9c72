package recordings

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	localstore "callcenter-backend/internal/shared/storage/object/local"
)

type stubStarter struct {
	started []Recording
	id      string
}

func (s *stubStarter) Start(ctx context.Context, rec Recording) (string, error) {
	s.started = append(s.started, rec)
	return s.id, nil
}

func setupUploadRouter(t *testing.T) (*gin.Engine, *MemoryRepo, *stubStarter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	repo := NewMemoryRepo()
	starter := &stubStarter{id: "analysis-1"}
	handler := NewHandler(&Service{Store: store, Repo: repo}, starter)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r, repo, starter
}

func multipartBody(t *testing.T, fieldName, fileName string, contents []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(contents); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, w.FormDataContentType()
}

func TestUploadAcceptedAndStartsAnalysis(t *testing.T) {
	router, repo, starter := setupUploadRouter(t)

	body, contentType := multipartBody(t, "file", "support_call.wav", []byte("fake audio"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recordings", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		RecordingID string `json:"recording_id"`
		AnalysisID  string `json:"analysis_id"`
		FileName    string `json:"file_name"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.RecordingID == "" {
		t.Fatalf("expected recording_id")
	}
	if payload.AnalysisID != "analysis-1" {
		t.Fatalf("expected analysis id from starter, got %q", payload.AnalysisID)
	}
	if payload.FileName != "support_call.wav" {
		t.Fatalf("unexpected file name: %q", payload.FileName)
	}
	if payload.Status != "uploaded" {
		t.Fatalf("unexpected status: %q", payload.Status)
	}

	rec, err := repo.GetByID(context.Background(), payload.RecordingID)
	if err != nil {
		t.Fatalf("get recording: %v", err)
	}
	if rec.SizeBytes != int64(len("fake audio")) {
		t.Fatalf("unexpected size: %d", rec.SizeBytes)
	}
	if len(starter.started) != 1 || starter.started[0].ID != payload.RecordingID {
		t.Fatalf("expected starter called with stored recording, got %+v", starter.started)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	router, _, starter := setupUploadRouter(t)

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("text"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recordings", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if len(starter.started) != 0 {
		t.Fatalf("expected no analysis started")
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	router, _, _ := setupUploadRouter(t)

	body, contentType := multipartBody(t, "wrong_field", "call.mp3", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recordings", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestGetRecordingNotFound(t *testing.T) {
	router, _, _ := setupUploadRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recordings/missing", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
