package pyversions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/installer-helpers/internal/config"
	"github.com/oshokin/installer-helpers/internal/domain/python"
	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/common"
	"github.com/oshokin/installer-helpers/internal/version"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

const (
	toolName   = "py-versions"
	noDataText = "No data found."
)

// ErrUnknownFormat is returned for an output format other than text or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Options are inputs accepted by Run.
type Options struct {
	// Config holds the settings; nil means defaults.
	Config *config.Config
	// All lists end-of-life and every security release too.
	All bool
	// Format is FormatText or FormatYAML. Empty means text.
	Format string
	// HTTPClient performs the request. Defaults to a plain http.Client.
	HTTPClient *http.Client
	// Stdout receives the report. Defaults to os.Stdout.
	Stdout io.Writer
}

// Run fetches the downloads page and prints the selected release cycles.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, toolName)

	// The report shares stdout with the log, so only problems are logged
	// unless debugging.
	if logger.Level() > zapcore.DebugLevel {
		ctx = logger.ToContext(ctx, logger.FromContext(ctx).WithOptions(logger.WithLevel(zapcore.WarnLevel)))
	}

	if opts == nil {
		opts = new(Options)
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = FormatText
	}

	if format != FormatText && format != FormatYAML {
		return fmt.Errorf("%q: %w", opts.Format, ErrUnknownFormat)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent(toolName)
	}

	client := common.NewClient(
		common.WithCallTimeout(cfg.RequestTimeout),
		common.WithUserAgent(userAgent),
		common.WithHTTPClient(opts.HTTPClient),
	)

	page, err := client.GetText(ctx, cfg.Python.DownloadsURL)
	if err != nil {
		return fmt.Errorf("fetch downloads page: %w", err)
	}

	releases, err := python.ParseDownloadsPage(strings.NewReader(page))
	if errors.Is(err, python.ErrNoData) {
		_, err = fmt.Fprintln(out, noDataText)
		return err
	}

	if err != nil {
		return err
	}

	selected := python.Select(releases, opts.All)

	logger.DebugKV(ctx, "Release cycles parsed", "total", len(releases), "selected", len(selected))

	if format == FormatYAML {
		return writeYAML(out, selected)
	}

	return writeText(out, selected)
}

func writeText(w io.Writer, releases []python.Release) error {
	for _, rel := range releases {
		if _, err := fmt.Fprintf(w, "Python version: %s\nMaintenance status: %s\n\n", rel.Version, rel.Status); err != nil {
			return err
		}
	}

	return nil
}

func writeYAML(w io.Writer, releases []python.Release) error {
	if releases == nil {
		releases = []python.Release{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(releases); err != nil {
		return fmt.Errorf("encode releases: %w", err)
	}

	return encoder.Close()
}
