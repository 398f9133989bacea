package vbox

import (
	"context"
	"crypto"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/common"
)

const (
	// partSuffix marks files that are still being downloaded.
	partSuffix = ".part"
	// oldSuffix marks the replaced file until the swap completes.
	oldSuffix = ".old"
	// artifactMode is the mode of placed downloads.
	artifactMode os.FileMode = 0o644
	// progressStep is the percentage between progress log entries.
	progressStep = 10
)

// downloadAll fetches every selected artifact. A missing extension pack or
// guest additions image is not an error, a failed package download is.
func (r *runner) downloadAll(ctx context.Context) error {
	var err error

	if r.artifacts.Package != "" {
		r.files.Package, err = r.download(ctx, r.artifacts.Package)
		if err != nil {
			return fmt.Errorf("download package: %w", err)
		}
	}

	if r.artifacts.ExtensionPack != "" {
		r.files.ExtensionPack, err = r.download(ctx, r.artifacts.ExtensionPack)
		if err != nil {
			logger.Warnf(ctx, "Extension pack download failed: %v", err)
		}
	}

	if r.artifacts.GuestAdditions != "" {
		r.files.GuestAdditions, err = r.download(ctx, r.artifacts.GuestAdditions)
		if err != nil {
			logger.Warnf(ctx, "Guest additions download failed: %v", err)
		}
	}

	return nil
}

// download fetches name into the download directory and returns its path.
// A present file whose digest matches SHA256SUMS is reused.
func (r *runner) download(ctx context.Context, name string) (string, error) {
	target := filepath.Join(r.cfg.DownloadDir, name)

	var digest string
	if !r.cfg.SkipChecksums {
		digest, _ = r.inventory.SHA256(name)
	}

	if digest != "" {
		if actual, err := fileSHA256(target); err == nil && actual == digest {
			logger.InfoKV(ctx, "Reusing downloaded file", "path", target)
			return target, nil
		}
	}

	url := r.url(name)
	partial := target + partSuffix

	if !r.client.Exists(ctx, url) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		return "", fmt.Errorf("%s: %w", url, ErrNotPublished)
	}

	logger.Infof(ctx, "Downloading %s -> %s", url, target)

	if err := r.fetch(ctx, url, partial); err != nil {
		_ = os.Remove(partial)
		return "", err
	}

	defer func() {
		_ = os.Remove(partial)
	}()

	if err := place(partial, target, digest); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	logger.InfoKV(ctx, "Downloaded file", "path", target)

	return target, nil
}

func (r *runner) fetch(ctx context.Context, url, path string) error {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}

	_, err = r.client.Download(ctx, url, file, progressLogger(ctx, filepath.Base(path)))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	return err
}

// place verifies the downloaded file and moves it over target.
func place(partial, target, digest string) error {
	options := goupdate.Options{
		TargetPath:  target,
		TargetMode:  artifactMode,
		Hash:        crypto.SHA256,
		OldSavePath: target + oldSuffix,
	}

	if digest != "" {
		actual, err := fileSHA256(partial)
		if err != nil {
			return err
		}

		if actual != digest {
			return fmt.Errorf("expected %s, got %s: %w", digest, actual, ErrChecksumMismatch)
		}

		options.Checksum, err = hex.DecodeString(digest)
		if err != nil {
			return err
		}
	}

	// go-update swaps an existing file, so the target has to exist first.
	created := false

	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		file, createErr := os.Create(filepath.Clean(target))
		if createErr != nil {
			return createErr
		}

		_ = file.Close()
		created = true
	}

	source, err := os.Open(filepath.Clean(partial))
	if err != nil {
		return err
	}

	defer func() {
		_ = source.Close()
	}()

	if err = goupdate.Apply(source, options); err != nil {
		if created {
			_ = os.Remove(target)
		}

		return fmt.Errorf("place %s: %w", target, err)
	}

	_ = os.Remove(options.OldSavePath)

	return nil
}

// fileSHA256 returns the lowercase hex SHA-256 digest of the file at path.
func fileSHA256(path string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err = io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// progressLogger reports download progress at debug level every progressStep percent.
func progressLogger(ctx context.Context, name string) common.ProgressFunc {
	next := int64(progressStep)

	return func(written, total int64) {
		if total <= 0 {
			return
		}

		percent := written * 100 / total
		if percent < next {
			return
		}

		logger.DebugKV(ctx, "Download progress", "file", name, "percent", percent)

		next = percent - percent%progressStep + progressStep
	}
}
