package vbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"

	"github.com/oshokin/installer-helpers/internal/domain/distro"
	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/pkgmgr"
	"github.com/oshokin/installer-helpers/internal/service/system"
)

// errEmptyKeyring is returned when the armored key holds no public keys.
var errEmptyKeyring = errors.New("no keys in the armored key file")

// publicFileMode is the mode of installed keyrings and source lists.
const publicFileMode = "0644"

// RunRepo registers the vendor apt repository: the signing key is fetched,
// converted to a binary keyring and referenced from a sources list.
func RunRepo(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, toolName)

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	if err = r.resolveQuery(ctx); err != nil {
		return err
	}

	if r.query.Distro.Family() != distro.FamilyDebian {
		return fmt.Errorf("apt repository on %s: %w", r.query.Distro, pkgmgr.ErrUnsupportedDistro)
	}

	armored, err := r.client.GetText(ctx, r.cfg.APTKeyURL)
	if err != nil {
		return fmt.Errorf("fetch signing key: %w", err)
	}

	keyring, err := Dearmor(armored)
	if err != nil {
		return err
	}

	if err = r.installFile(ctx, r.cfg.APTKeyring, keyring); err != nil {
		return fmt.Errorf("install keyring: %w", err)
	}

	line := SourcesLine(r.cfg.Arch, r.cfg.APTKeyring, r.cfg.APTRepoURL, r.query.Distro.Codename)
	logger.InfoKV(ctx, "Writing apt source", "path", r.cfg.APTList, "line", line)

	if err = r.installFile(ctx, r.cfg.APTList, []byte(line+"\n")); err != nil {
		return fmt.Errorf("install sources list: %w", err)
	}

	return pkgmgr.NewApt(r.system).Refresh(ctx)
}

// Dearmor converts an ASCII-armored public key into the binary keyring
// format apt expects in signed-by.
func Dearmor(armored string) ([]byte, error) {
	entities, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armored))
	if err != nil {
		return nil, fmt.Errorf("read armored key: %w", err)
	}

	if len(entities) == 0 {
		return nil, errEmptyKeyring
	}

	var keyring bytes.Buffer

	for _, entity := range entities {
		if err = entity.Serialize(&keyring); err != nil {
			return nil, fmt.Errorf("serialize key %X: %w", entity.PrimaryKey.Fingerprint, err)
		}
	}

	return keyring.Bytes(), nil
}

// SourcesLine builds the one-line apt source of the vendor repository.
func SourcesLine(arch, keyring, repoURL, codename string) string {
	return fmt.Sprintf("deb [arch=%s signed-by=%s] %s %s contrib", arch, keyring, repoURL, codename)
}

// installFile writes data to a temporary file and installs it at path with sudo.
func (r *runner) installFile(ctx context.Context, path string, data []byte) error {
	tmp, err := os.CreateTemp("", "vbox-installer-*")
	if err != nil {
		return err
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	_, err = r.system.Run(ctx, system.New("install", "-D", "-m", publicFileMode, tmp.Name(), path).Sudo())

	return err
}
