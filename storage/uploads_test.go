package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartRequest(t *testing.T, field string, fileCount int) *gin.Context {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for i := 0; i < fileCount; i++ {
		part, err := writer.CreateFormFile(field, "photo.jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/incidents", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c
}

func TestSavePhotos(t *testing.T) {
	orig := UploadDir
	UploadDir = t.TempDir()
	defer func() { UploadDir = orig }()

	c := multipartRequest(t, "photos", 3)

	refs, err := SavePhotos(c, "photos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}
	for _, ref := range refs {
		if !strings.HasPrefix(ref, "/uploads/") {
			t.Errorf("ref %q should start with /uploads/", ref)
		}
		if !strings.HasSuffix(ref, ".jpg") {
			t.Errorf("ref %q should keep the original extension", ref)
		}
	}
}

func TestSavePhotos_TooMany(t *testing.T) {
	orig := UploadDir
	UploadDir = t.TempDir()
	defer func() { UploadDir = orig }()

	c := multipartRequest(t, "photos", MaxFilesPerRequest+1)

	if _, err := SavePhotos(c, "photos"); err == nil {
		t.Errorf("expected error for more than %d files", MaxFilesPerRequest)
	}
}

func TestSavePhotos_NoFiles(t *testing.T) {
	c := multipartRequest(t, "other-field", 1)

	refs, err := SavePhotos(c, "photos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected no refs, got %v", refs)
	}
}
