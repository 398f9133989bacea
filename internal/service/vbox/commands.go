package vbox

import (
	"context"
	"fmt"

	"github.com/oshokin/installer-helpers/internal/logger"
)

// RunLatest prints the latest stable version.
func RunLatest(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, toolName)

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	v, err := r.resolveVersion(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(r.out, v)

	return err
}

// RunArtifacts resolves the files for the host and prints their URLs
// without downloading anything.
func RunArtifacts(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, toolName)

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	if err = r.prepare(ctx); err != nil {
		return err
	}

	rows := []struct{ label, value string }{
		{"Version", r.version.String()},
		{"Distribution", r.query.Distro.String()},
		{"Package", r.url(r.artifacts.Package)},
		{"Extension Pack", r.url(r.artifacts.ExtensionPack)},
		{"Guest Additions", r.url(r.artifacts.GuestAdditions)},
	}

	if r.query.Source {
		rows[1].value = "source"
	}

	for _, row := range rows {
		value := row.value
		if value == "" {
			value = "not found"
		}

		if _, err = fmt.Fprintf(r.out, "%-16s %s\n", row.label+":", value); err != nil {
			return err
		}
	}

	return nil
}

// RunDownload resolves and downloads the files for the host without installing them.
func RunDownload(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, toolName)

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	if err = r.prepare(ctx); err != nil {
		return err
	}

	if err = r.downloadAll(ctx); err != nil {
		return err
	}

	for _, path := range []string{r.files.Package, r.files.ExtensionPack, r.files.GuestAdditions} {
		if path == "" {
			continue
		}

		if _, err = fmt.Fprintln(r.out, path); err != nil {
			return err
		}
	}

	return nil
}
