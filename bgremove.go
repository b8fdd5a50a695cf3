package treads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// removeBackground sends buf to the background removal service and returns
// the PNG it answers with.
func removeBackground(ctx context.Context, buf []byte, filename string, c *Config) ([]byte, error) {
	st := time.Now()
	log := c.logger()
	log.Info("[>] Remove background", zap.String("filename", filename))
	defer func() {
		log.Info("[<] Remove background", zap.Duration("at", time.Since(st)))
	}()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image_file", filename)
	if err != nil {
		return nil, err
	}
	if _, err = part.Write(buf); err != nil {
		return nil, err
	}
	if err = w.WriteField("size", "auto"); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.RemoveBgURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Api-Key", c.RemoveBgToken)
	req.Header.Set("Accept", "image/png")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("background removal: %s: %s", resp.Status, bytes.TrimSpace(out))
	}
	return out, nil
}
