package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
	"github.com/talentflow/talentflow-backend/internal/extraction/engine"
	"github.com/talentflow/talentflow-backend/internal/extraction/handler"
	"github.com/talentflow/talentflow-backend/internal/extraction/service"
	"github.com/talentflow/talentflow-backend/internal/extraction/storage"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

// passthroughExtractor treats every upload as plain text
type passthroughExtractor struct{}

func (passthroughExtractor) ExtractText(_ context.Context, data []byte, _ domain.DocumentFormat) (string, error) {
	return string(data), nil
}

func newTestRouter() chi.Router {
	log := &logger.Logger{Logger: zerolog.Nop()}
	svc := service.NewService(
		passthroughExtractor{},
		nil,
		engine.New(),
		storage.NewJobStore(time.Minute),
		nil,
		nil,
		log,
	)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		handler.NewHandler(svc, log).Routes(r)
	})
	return r
}

func uploadRequest(t *testing.T, url, format, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", "resume."+format)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)

	if format != "" {
		require.NoError(t, w.WriteField("format", format))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestExtractSync(t *testing.T) {
	router := newTestRouter()

	req := uploadRequest(t, "/api/v1/profiles/extract/sync", "txt",
		"MSc in computer science from TU Munich. Skills: python, docker.")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			EducationLevel string   `json:"educationLevel"`
			FieldOfStudy   []string `json:"fieldOfStudy"`
			Country        string   `json:"country"`
			Confidence     int      `json:"confidence"`
			TextPreview    string   `json:"textPreview"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "Master's", resp.Data.EducationLevel)
	assert.Equal(t, []string{"Computer Science"}, resp.Data.FieldOfStudy)
	assert.Equal(t, "Germany", resp.Data.Country)
	assert.Equal(t, 100, resp.Data.Confidence)
	assert.NotEmpty(t, resp.Data.TextPreview)
}

func TestExtractSyncUnsupportedFormat(t *testing.T) {
	router := newTestRouter()

	req := uploadRequest(t, "/api/v1/profiles/extract/sync", "xlsx", "irrelevant")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNSUPPORTED_FORMAT")
}

func TestExtractSyncEmptyDocument(t *testing.T) {
	router := newTestRouter()

	req := uploadRequest(t, "/api/v1/profiles/extract/sync", "txt", "   \n  ")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_DOCUMENT")
}

func TestExtractAsyncLifecycle(t *testing.T) {
	router := newTestRouter()

	req := uploadRequest(t, "/api/v1/profiles/extract", "txt", "PhD in physics, Berlin")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var accepted struct {
		Data struct {
			JobID  string `json:"job_id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	require.NotEmpty(t, accepted.Data.JobID)

	// Poll until the background goroutine finishes
	deadline := time.Now().Add(2 * time.Second)
	for {
		getReq := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/extract/"+accepted.Data.JobID, nil)
		getRec := httptest.NewRecorder()
		router.ServeHTTP(getRec, getReq)
		require.Equal(t, http.StatusOK, getRec.Code)

		var polled struct {
			Data struct {
				Status string `json:"status"`
				Result *struct {
					EducationLevel string `json:"educationLevel"`
				} `json:"result"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &polled))

		if polled.Data.Status != string(domain.StatusProcessing) {
			require.Equal(t, string(domain.StatusCompleted), polled.Data.Status)
			require.NotNil(t, polled.Data.Result)
			assert.Equal(t, "PhD", polled.Data.Result.EducationLevel)
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("job did not finish in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestExtractText(t *testing.T) {
	router := newTestRouter()

	body := bytes.NewBufferString(`{"text": "PhD in mathematics, Zurich. Skills: rust."}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/extract/text", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"PhD"`)
	assert.Contains(t, rec.Body.String(), "Switzerland")
}

func TestExtractTextValidation(t *testing.T) {
	router := newTestRouter()

	body := bytes.NewBufferString(`{"text": ""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/extract/text", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestGetResultUnknownJob(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/extract/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestExtractMissingFile(t *testing.T) {
	router := newTestRouter()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("format", "txt"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/extract", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing file")
}

func TestFormatInferredFromFilename(t *testing.T) {
	router := newTestRouter()

	// No explicit format field; handler falls back to the file extension
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Bachelor's degree in marketing"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/extract/sync", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bachelor's")
}
