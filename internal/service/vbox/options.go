package vbox

import (
	"io"
	"net/http"

	"github.com/oshokin/installer-helpers/internal/config"
	"github.com/oshokin/installer-helpers/internal/service/system"
)

// Options are inputs accepted by the installer entry points.
type Options struct {
	// Config holds the settings; nil means defaults.
	Config *config.Config

	// DistroID replaces the detected distribution id.
	DistroID string
	// Codename replaces the detected codename.
	Codename string
	// VersionID replaces the detected release number.
	VersionID string
	// Version pins the VirtualBox release instead of the latest stable one.
	Version string
	// Select shows the package catalogue instead of detecting the host.
	Select bool
	// Target picks a catalogue entry by its 1-based number without asking.
	Target string
	// Force installs even while VirtualBox is running.
	Force bool
	// Yes skips the confirmation before privileged steps.
	Yes bool

	// Runner executes shell commands. Defaults to system.NewExecRunner.
	Runner system.Runner
	// HTTPClient performs requests. Defaults to a plain http.Client.
	HTTPClient *http.Client
	// Prompter asks questions. Defaults to a terminal prompter when stdin is a terminal.
	Prompter Prompter
	// Stdout receives reports. Defaults to os.Stdout.
	Stdout io.Writer
	// OSReleasePath is read for distribution detection. Defaults to /etc/os-release.
	OSReleasePath string
	// User is added to the vboxusers group. Defaults to the invoking user.
	User string
	// Kernel is the release used for header packages. Defaults to uname -r.
	Kernel string
}
