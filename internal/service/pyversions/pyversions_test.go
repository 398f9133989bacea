package pyversions_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/installer-helpers/internal/config"
	"github.com/oshokin/installer-helpers/internal/domain/python"
	"github.com/oshokin/installer-helpers/internal/service/common"
	"github.com/oshokin/installer-helpers/internal/service/pyversions"
)

func serve(t *testing.T, status int, body string) *config.Config {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Python.DownloadsURL = server.URL + "/downloads/"

	return cfg
}

func downloadsPage(t *testing.T) string {
	t.Helper()

	page, err := os.ReadFile("../../domain/python/testdata/downloads.html")
	require.NoError(t, err)

	return string(page)
}

func TestRun_Text(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := pyversions.Run(context.Background(), &pyversions.Options{
		Config: serve(t, http.StatusOK, downloadsPage(t)),
		Stdout: &out,
	})
	require.NoError(t, err)

	require.Equal(t, "Python version: 3.14\nMaintenance status: prerelease\n\n"+
		"Python version: 3.13\nMaintenance status: bugfix\n\n"+
		"Python version: 3.12\nMaintenance status: bugfix\n\n"+
		"Python version: 3.11\nMaintenance status: security\n\n", out.String())
}

func TestRun_YAMLAll(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := pyversions.Run(context.Background(), &pyversions.Options{
		Config: serve(t, http.StatusOK, downloadsPage(t)),
		All:    true,
		Format: "YAML",
		Stdout: &out,
	})
	require.NoError(t, err)

	var releases []python.Release
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &releases))
	require.Greater(t, len(releases), 4)
	require.Equal(t, "3.14", releases[0].Version)
	require.Equal(t, "https://peps.python.org/pep-0745/", releases[0].PEP)
}

func TestRun_NoData(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := pyversions.Run(context.Background(), &pyversions.Options{
		Config: serve(t, http.StatusOK, "<html><body><p>maintenance</p></body></html>"),
		Stdout: &out,
	})
	require.NoError(t, err)
	require.Equal(t, "No data found.\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	err := pyversions.Run(context.Background(), &pyversions.Options{
		Config: serve(t, http.StatusServiceUnavailable, ""),
		Stdout: new(bytes.Buffer),
	})
	require.ErrorIs(t, err, common.ErrBadHTTPStatus)

	err = pyversions.Run(context.Background(), &pyversions.Options{Format: "json"})
	require.ErrorIs(t, err, pyversions.ErrUnknownFormat)
}
