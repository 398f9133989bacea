package vbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/oshokin/installer-helpers/internal/domain/release"
	"github.com/oshokin/installer-helpers/internal/domain/vbox"
	"github.com/oshokin/installer-helpers/internal/logger"
)

// resolveVersion reads LATEST-STABLE.TXT and falls back to the highest
// version directory of the index.
func (r *runner) resolveVersion(ctx context.Context) (release.Version, error) {
	if r.opts.Version != "" {
		return release.Parse(r.opts.Version)
	}

	latestURL := vbox.LatestStableURL(r.cfg.BaseURL)

	text, err := r.client.GetText(ctx, latestURL)
	if err == nil {
		v, parseErr := release.Parse(text)
		if parseErr == nil {
			return v, nil
		}

		logger.Warnf(ctx, "%s holds an invalid version: %q", vbox.LatestStableFilename, strings.TrimSpace(text))
	} else {
		logger.Warnf(ctx, "Unable to read %s: %v", vbox.LatestStableFilename, err)
	}

	index, err := r.client.GetText(ctx, vbox.IndexURL(r.cfg.BaseURL))
	if err != nil {
		return release.Version{}, fmt.Errorf("read version index: %w", err)
	}

	dirs, err := vbox.ParseDirectoryVersions(strings.NewReader(index))
	if err != nil {
		return release.Version{}, fmt.Errorf("parse version index: %w", err)
	}

	v, err := release.Max(dirs)
	if err != nil {
		return release.Version{}, fmt.Errorf("determine the latest stable version: %w", err)
	}

	logger.Infof(ctx, "Fallback: version %s taken from the index", v)

	return v, nil
}

// buildInventory merges the version listing with the checksum lists.
// Checksum lists are optional.
func (r *runner) buildInventory(ctx context.Context) error {
	listing, err := r.client.GetText(ctx, vbox.BaseURL(r.cfg.BaseURL, r.version.String()))
	if err != nil {
		return fmt.Errorf("read file listing: %w", err)
	}

	names, err := vbox.ParseDirectoryLinks(strings.NewReader(listing))
	if err != nil {
		return fmt.Errorf("parse file listing: %w", err)
	}

	inv := vbox.NewInventory(names...)

	if sums, ok := r.checksums(ctx, vbox.SHA256SumsFilename); ok {
		inv.AddSHA256(sums)
	}

	if sums, ok := r.checksums(ctx, vbox.MD5SumsFilename); ok {
		for name := range sums {
			inv.Add(name)
		}
	}

	logger.DebugKV(ctx, "File inventory built", "files", inv.Len())

	r.inventory = inv

	return nil
}

func (r *runner) checksums(ctx context.Context, filename string) (map[string]string, bool) {
	text, err := r.client.GetText(ctx, r.url(filename))
	if err != nil {
		logger.Debugf(ctx, "Skipping %s: %v", filename, err)
		return nil, false
	}

	return vbox.ParseChecksums(text), true
}
