package treads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// fetchSource returns the bytes behind a local path or an http(s) URL.
func fetchSource(ctx context.Context, source string, c *Config) ([]byte, error) {
	if !isURL(source) {
		buf, err := os.ReadFile(source)
		if err != nil {
			return nil, &IOError{Path: source, Err: err}
		}
		return buf, nil
	}

	file, err := downloadFileTemporary(ctx, source, c)
	if err != nil {
		return nil, &IOError{Path: source, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger().Warn("Error closing file", zap.Error(err))
		}
		if !c.DebugMode {
			if err := os.Remove(file.Name()); err != nil {
				c.logger().Warn("Error removing file", zap.String("path", file.Name()), zap.Error(err))
			}
		}
	}()

	buf, err := os.ReadFile(file.Name())
	if err != nil {
		return nil, &IOError{Path: file.Name(), Err: err}
	}
	return buf, nil
}

// downloadFileTemporary get url to file and return file object after downloading
func downloadFileTemporary(ctx context.Context, link string, c *Config) (*os.File, error) {
	st := time.Now()
	log := c.logger()
	log.Info("[>] Downloading file temporary", zap.String("url", link))
	defer func() {
		log.Info("[<] Downloading file temporary", zap.String("url", link), zap.Duration("at", time.Since(st)))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	ext := strings.TrimPrefix(path.Ext(req.URL.Path), ".")
	if ext == "" {
		ext = "bin"
	}
	file, err := os.CreateTemp("", fmt.Sprintf("tmpfile-*.%s", ext))
	if err != nil {
		return nil, err
	}

	if _, err = io.Copy(file, resp.Body); err == nil {
		err = file.Sync()
	}
	if err != nil {
		file.Close()
		os.Remove(file.Name())
		return nil, err
	}
	return file, nil
}

func execCmd(command string, args ...string) ([]byte, error) {
	cmd := exec.Command(command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("%s: %w", output, err)
	}
	return output, nil
}

func syncToS3(id, dir string, c *Config) error {
	st := time.Now()
	log := c.logger()
	log.Info("[>] Copy to S3", zap.String("host", c.S3Host), zap.String("bucket", c.S3Bucket))

	var err error

	if err = os.Setenv("MC_NO_COLOR", "1"); err != nil {
		return err
	}

	aliasName := fmt.Sprintf("treads%s", strings.ReplaceAll(id, "-", ""))
	to := fmt.Sprintf("%s/%s/%s", aliasName, c.S3Bucket, id)
	from := fmt.Sprintf("%s/", dir)

	if _, err = execCmd("mc", "alias", "set", aliasName, c.S3Host, c.S3Key, c.S3Secret); err != nil {
		return err
	}

	defer func() {
		if _, err := execCmd("mc", "alias", "rm", aliasName); err != nil {
			log.Warn("[!] Error removing mc alias", zap.Error(err))
		}
		log.Info("[<] Copy to S3", zap.Duration("at", time.Since(st)))
	}()

	_, err = execCmd("mc", "cp", "-r", from, to, "--quiet")
	return err
}
