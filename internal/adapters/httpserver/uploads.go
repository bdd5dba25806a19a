package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

const (
	maxUploadSize  = 5 << 20  // 5MB por archivo
	maxFormMemory  = 25 << 20 // buffer del multipart completo
	maxProductImgs = 5
)

var errBadImage = errors.New("only image files (jpeg, jpg, png, gif, webp) are allowed")

var allowedImageExt = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// saveUpload valida y persiste una imagen subida, devolviendo su URL pública.
func (s *Server) saveUpload(ctx context.Context, fh *multipart.FileHeader, dir string) (string, error) {
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file %s exceeds the 5MB limit", fh.Filename)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return "", errBadImage
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", errBadImage
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxUploadSize {
		return "", fmt.Errorf("file %s exceeds the 5MB limit", fh.Filename)
	}
	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
	return s.storage.Save(ctx, dir, name, data)
}
