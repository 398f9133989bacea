package vbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/installer-helpers/internal/domain/distro"
	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/system"
)

// resolveQuery decides which distribution packages are matched for.
func (r *runner) resolveQuery(ctx context.Context) error {
	r.query.Arch = r.cfg.Arch
	r.query.Strict = !r.cfg.LooseCodename

	if r.opts.Select || r.opts.Target != "" {
		target, err := r.selectTarget()
		if err != nil {
			return err
		}

		r.distro = target.Distro
		r.query.Distro = target.Distro
		r.query.Source = target.Source
		r.query.Strict = r.query.Strict && !target.Loose

		logger.InfoKV(ctx, "Selected package", "target", target.Label)

		return nil
	}

	r.distro = DetectDistro(ctx, r.system, r.osReleasePath())

	if r.opts.DistroID != "" {
		r.distro.ID = strings.ToLower(r.opts.DistroID)
	}

	if r.opts.Codename != "" {
		r.distro.Codename = strings.ToLower(r.opts.Codename)
	}

	if r.opts.VersionID != "" {
		r.distro.VersionID = r.opts.VersionID
	}

	if r.distro.Codename == "" && r.distro.Family() == distro.FamilyDebian {
		logger.Warnf(ctx, "Unable to determine the codename, using %s", distro.DefaultCodename)
		r.distro.Codename = distro.DefaultCodename
	}

	r.query.Distro = r.distro

	logger.InfoKV(ctx, "Detected distribution", "distro", r.distro.String())

	return nil
}

func (r *runner) selectTarget() (distro.Target, error) {
	if r.opts.Target != "" {
		target, ok := distro.TargetByKey(r.opts.Target)
		if !ok {
			return distro.Target{}, fmt.Errorf("%q: %w", r.opts.Target, ErrUnknownTarget)
		}

		return target, nil
	}

	if r.prompter == nil {
		return distro.Target{}, errNotInteractive
	}

	targets := distro.Targets()

	index, err := r.prompter.Select("Choose the package for your Linux distribution:", distro.Labels())
	if err != nil {
		return distro.Target{}, err
	}

	if index < 0 || index >= len(targets) {
		return distro.Target{}, fmt.Errorf("menu entry %d: %w", index+1, ErrUnknownTarget)
	}

	return targets[index], nil
}

func (r *runner) osReleasePath() string {
	if r.opts.OSReleasePath != "" {
		return r.opts.OSReleasePath
	}

	return defaultOSReleasePath
}

// DetectDistro reads os-release at path and fills what it lacks from lsb_release.
// Failures are logged and leave the fields empty.
func DetectDistro(ctx context.Context, runner system.Runner, path string) distro.Distro {
	var d distro.Distro

	data, err := os.ReadFile(filepath.Clean(path))
	if err == nil {
		d, err = distro.ParseOSRelease(string(data))
	}

	if err != nil {
		logger.Warnf(ctx, "Unable to read %s: %v", path, err)
	}

	if d.Codename == "" {
		d.Codename = lsbRelease(ctx, runner, "-cs")
	}

	if d.ID == "" {
		d.ID = lsbRelease(ctx, runner, "-is")
	}

	return d
}

func lsbRelease(ctx context.Context, runner system.Runner, flag string) string {
	if _, err := runner.LookPath("lsb_release"); err != nil {
		return ""
	}

	result, err := runner.Run(ctx, system.New("lsb_release", flag).Captured())
	if err != nil {
		logger.Debugf(ctx, "lsb_release %s failed: %v", flag, err)
		return ""
	}

	return strings.ToLower(strings.TrimSpace(result.Stdout))
}
