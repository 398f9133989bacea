package integration

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/installer-helpers/internal/config"
	"github.com/oshokin/installer-helpers/internal/service/pyversions"
)

const downloadsPage = `<html><body>
<ol class="list-row-container menu">
  <li><span class="release-version">3.14</span><span class="release-status">prerelease</span></li>
  <li><span class="release-version">3.13</span><span class="release-status">bugfix</span></li>
  <li><span class="release-version">3.12</span><span class="release-status">security</span></li>
  <li><span class="release-version">3.11</span><span class="release-status">security</span></li>
  <li><span class="release-version">3.8</span><span class="release-status">end-of-life</span></li>
</ol>
</body></html>`

// TestPyVersions_FromSettingsFile reads the downloads URL from a saved settings file.
func TestPyVersions_FromSettingsFile(t *testing.T) {
	t.Parallel()

	userAgents := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case userAgents <- r.Header.Get("User-Agent"):
		default:
		}

		_, _ = w.Write([]byte(downloadsPage))
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Python.DownloadsURL = server.URL + "/downloads/"
	cfg.UserAgent = "curl/8 installer-helpers"

	cfgPath := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(cfgPath, cfg))

	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)

	var out bytes.Buffer

	require.NoError(t, pyversions.Run(context.Background(), &pyversions.Options{
		Config: loaded,
		Stdout: &out,
	}))

	require.Equal(t, "Python version: 3.14\nMaintenance status: prerelease\n\n"+
		"Python version: 3.13\nMaintenance status: bugfix\n\n"+
		"Python version: 3.12\nMaintenance status: security\n\n", out.String())
	require.Equal(t, "curl/8 installer-helpers", <-userAgents)
}
