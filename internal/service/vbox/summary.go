package vbox

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"

	"github.com/oshokin/installer-helpers/internal/domain/vbox"
)

// colorEnabled reports whether w is a terminal that can show colours.
func colorEnabled(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// writeSummary prints what was installed and what is left on disk.
func (r *runner) writeSummary() {
	au := aurora.NewAurora(colorEnabled(r.out))
	w := r.out

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, au.Bold("==== Summary ===="))

	switch {
	case r.artifacts.Kind == vbox.KindSource && r.files.Package != "":
		_, _ = fmt.Fprintf(w, "Source tarball: %s\n", au.Cyan(r.files.Package))
	case r.packageInstalled:
		_, _ = fmt.Fprintf(w, "VirtualBox %s installed from: %s\n", au.Green(r.version), r.files.Package)

		if r.installedVersion != "" {
			_, _ = fmt.Fprintf(w, "VBoxManage --version: %s\n", r.installedVersion)
		}

		if r.packageRemoved {
			_, _ = fmt.Fprintln(w, "The downloaded package was removed after installation")
		}
	default:
		_, _ = fmt.Fprintln(w, au.Red("VirtualBox was not installed"))
	}

	switch {
	case r.files.ExtensionPack == "":
		_, _ = fmt.Fprintln(w, "Extension Pack:", au.Yellow("not found or not installed"))
	case r.extensionPackInstalled:
		_, _ = fmt.Fprintf(w, "Extension Pack: %s (%s)\n", r.files.ExtensionPack, au.Green("installed"))
	default:
		_, _ = fmt.Fprintf(w, "Extension Pack: %s (%s)\n", r.files.ExtensionPack, au.Yellow("not installed"))
	}

	if r.extensionPackRemoved {
		_, _ = fmt.Fprintln(w, "The downloaded Extension Pack was removed after installation")
	}

	if r.files.GuestAdditions != "" {
		_, _ = fmt.Fprintf(w, "Guest Additions ISO: %s\n", r.files.GuestAdditions)
	} else {
		_, _ = fmt.Fprintln(w, "Guest Additions ISO:", au.Yellow("not found"))
	}

	_, _ = fmt.Fprintf(w, "Download directory: %s\n", r.cfg.DownloadDir)

	if r.packageInstalled {
		_, _ = fmt.Fprintln(w, au.Bold("Log out and back in to apply the vboxusers group membership."))
	}
}
