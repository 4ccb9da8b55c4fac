// Package storage turns uploaded files into opaque reference paths that the
// core stores alongside incidents.
package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxFilesPerRequest mirrors the lifecycle engine's photo cap.
const MaxFilesPerRequest = 5

// UploadDir is where photo files land; it is served statically under /uploads.
var UploadDir = "uploads"

// SavePhotos writes the multipart files under field into UploadDir and
// returns their reference paths in upload order. More than
// MaxFilesPerRequest files is an error before anything is written.
func SavePhotos(c *gin.Context, field string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all means no photos.
		return []string{}, nil
	}

	files := form.File[field]
	if len(files) == 0 {
		return []string{}, nil
	}
	if len(files) > MaxFilesPerRequest {
		return nil, fmt.Errorf("at most %d photos per request", MaxFilesPerRequest)
	}

	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(files))
	for _, file := range files {
		ref, err := saveOne(c, file)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func saveOne(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := primitive.NewObjectID().Hex() + filepath.Ext(file.Filename)
	dst := filepath.Join(UploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
