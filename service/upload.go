package service

import (
	"context"
	"io"

	"vidtube-api/logger"
	"vidtube-api/storage"

	"github.com/sirupsen/logrus"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func store(ctx context.Context, media storage.MediaStore, folder string, file *Upload) (*storage.Asset, error) {
	return media.Upload(ctx, folder, file.Filename, file.Body, file.Size, file.ContentType)
}

// discard removes a replaced or orphaned asset. Failures are only logged.
func discard(ctx context.Context, media storage.MediaStore, url string) {
	if url == "" {
		return
	}
	if err := media.Delete(ctx, url); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{"url": url}).Warn("Failed to delete media asset")
	}
}
