package e2e

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	binaryPath := buildBinary(t)
	configDir := t.TempDir()
	sessionPath := filepath.Join(configDir, "session.json")
	server := startFakeAPI(t)

	env := []string{
		"VRCSWITCH_CONFIG_DIR=" + configDir,
		"VRCSWITCH_SESSION_PATH=" + sessionPath,
		"VRCSWITCH_API_BASE_URL=" + server.URL,
	}

	stdout, stderr, err := runCLI(t, binaryPath, env, "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "dev")

	_, _, err = runCLI(t, binaryPath, env, "status")
	require.Error(t, err, "status without a session must fail")

	stdout, stderr, err = runCLI(t, binaryPath, env, "login", "--username", "alice", "--password", "hunter2")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Logged in as Alice")

	stdout, stderr, err = runCLI(t, binaryPath, env, "status", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "wrld_smoke:1")

	stdout, stderr, err = runCLI(t, binaryPath, env, "logout")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Logged out")

	_, statErr := os.Stat(sessionPath)
	assert.True(t, os.IsNotExist(statErr))
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "vrcswitch-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/vrcswitch")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build vrcswitch binary: %s", string(output))
	return binaryPath
}

func startFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/user", func(w http.ResponseWriter, r *http.Request) {
		if username, password, ok := r.BasicAuth(); ok {
			if username != "alice" || password != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "auth", Value: "authcookie-smoke"})
			_, _ = w.Write([]byte(`{"id":"usr_smoke","displayName":"Alice"}`))
			return
		}

		cookie, err := r.Cookie("auth")
		if err != nil || cookie.Value != "authcookie-smoke" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"usr_smoke","displayName":"Alice"}`))
	})
	mux.HandleFunc("/users/usr_smoke", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"location":"wrld_smoke:1"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func runCLI(t *testing.T, binaryPath string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
