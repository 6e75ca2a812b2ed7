package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shashiranjanraj/campuskart/pkg/ctx"
	"github.com/shashiranjanraj/campuskart/pkg/storage"
)

const maxUploadBytes = 5 << 20 // 5 MB

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// Image accepts a multipart product image and stores it on the configured
// disk (local in dev, S3 in production). Responds with the public URL.
func (uc *UploadController) Image(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := c.R.ParseMultipartForm(maxUploadBytes); err != nil {
		c.Error(http.StatusUnprocessableEntity, "file too large or malformed upload")
		return
	}

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusUnprocessableEntity, "missing image file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		c.Error(http.StatusUnprocessableEntity, "unsupported image type")
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		fail(c, err)
		return
	}

	path := fmt.Sprintf("products/%s-%d%s", userID.Hex(), time.Now().UnixNano(), ext)
	if err := storage.Put(path, content); err != nil {
		fail(c, err)
		return
	}

	c.Created(map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}
