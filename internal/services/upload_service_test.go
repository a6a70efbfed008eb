package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"stickyflow-backend/internal/config"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newTestFile(content string) multipart.File {
	return memFile{bytes.NewReader([]byte(content))}
}

func newTestHeader(filename, mimeType string, size int64) *multipart.FileHeader {
	header := &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	header.Header.Set("Content-Type", mimeType)
	return header
}

func uploadConfig(endpoint string) *config.Config {
	cfg := &config.Config{}
	cfg.File.MaxImageSize = 33554432
	cfg.File.AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	cfg.ImageHost.URL = endpoint
	cfg.ImageHost.APIKey = "test-key"
	return cfg
}

func TestUploadRejectsOversizeBeforeNetwork(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	service := NewUploadService(uploadConfig(server.URL))

	// 33MB：超限，校验阶段就拒绝
	_, err := service.Upload(context.Background(), newTestFile("x"), newTestHeader("big.png", "image/png", 33*1024*1024))

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "上传失败"))
	assert.Zero(t, atomic.LoadInt32(&hits), "校验失败不应发起网络请求")
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	service := NewUploadService(uploadConfig(server.URL))

	_, err := service.Upload(context.Background(), newTestFile("x"), newTestHeader("doc.pdf", "application/pdf", 1024))

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "上传失败"))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestUploadRejectsMissingFile(t *testing.T) {
	service := NewUploadService(uploadConfig("http://unused.invalid"))

	_, err := service.Upload(context.Background(), nil, nil)

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "上传失败"))
}

func TestUploadSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "test-key", r.FormValue("key"))

		_, header, err := r.FormFile("image")
		if assert.NoError(t, err) {
			assert.Equal(t, "pic.png", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"url":"https://i.example.com/abc.png"}}`))
	}))
	defer server.Close()

	service := NewUploadService(uploadConfig(server.URL))

	url, err := service.Upload(context.Background(), newTestFile("png-bytes"), newTestHeader("pic.png", "image/png", 9))

	require.NoError(t, err)
	assert.Equal(t, "https://i.example.com/abc.png", url)
}

func TestUploadServiceErrorMessagePassedThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"message":"Invalid API key"}}`))
	}))
	defer server.Close()

	service := NewUploadService(uploadConfig(server.URL))

	_, err := service.Upload(context.Background(), newTestFile("x"), newTestHeader("pic.png", "image/png", 1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
	assert.True(t, strings.HasPrefix(err.Error(), "上传失败"))
}

func TestUploadFailureFlagInSuccessResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	service := NewUploadService(uploadConfig(server.URL))

	_, err := service.Upload(context.Background(), newTestFile("x"), newTestHeader("pic.png", "image/png", 1))

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "上传失败"))
}

func TestUploadUnparseableErrorBodyFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	service := NewUploadService(uploadConfig(server.URL))

	_, err := service.Upload(context.Background(), newTestFile("x"), newTestHeader("pic.png", "image/png", 1))

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "上传失败"))
	assert.Contains(t, err.Error(), "502")
}
