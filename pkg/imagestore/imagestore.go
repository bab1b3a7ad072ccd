// Package imagestore uploads experience images to an external image host
// over its unsigned HTTP upload endpoint and hands back the hosted URL. The
// API never serves image bytes itself.
package imagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"booklt/pkg/logger"
)

type Store interface {
	// Upload pushes one image and returns its public URL.
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type httpStore struct {
	uploadURL    string
	uploadPreset string
	client       *http.Client
	log          *logger.Logger
}

// NewHTTPStore targets a Cloudinary-style unsigned upload endpoint. Returns
// nil when no endpoint is configured; callers treat a nil store as "no image
// hosting" and persist an empty image URL, mirroring the optional file in
// the upload form.
func NewHTTPStore(uploadURL, uploadPreset string, log *logger.Logger) Store {
	if uploadURL == "" {
		log.Warn("Image upload endpoint not configured, experiences will be stored without hosted images")
		return nil
	}
	return &httpStore{
		uploadURL:    uploadURL,
		uploadPreset: uploadPreset,
		client:       &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

func (s *httpStore) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if s.uploadPreset != "" {
		if err := writer.WriteField("upload_preset", s.uploadPreset); err != nil {
			return "", fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image host returned %d: %s", resp.StatusCode, string(detail))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode image host response: %w", err)
	}

	url := parsed.SecureURL
	if url == "" {
		url = parsed.URL
	}
	if url == "" {
		return "", fmt.Errorf("image host response carried no URL")
	}

	s.log.Debug("Image uploaded", "filename", filename, "url", url)
	return url, nil
}
