package sshutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfNoSSH skips unless BEACON_TEST_SSH_HOST names a reachable host.
func skipIfNoSSH(t *testing.T) string {
	t.Helper()
	host := os.Getenv("BEACON_TEST_SSH_HOST")
	if host == "" {
		t.Skip("Skipping SSH test: BEACON_TEST_SSH_HOST not set")
	}
	return host
}

func TestDialAndExec(t *testing.T) {
	host := skipIfNoSSH(t)

	client, err := Dial(context.Background(), host, 10*time.Second)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, host, client.Host)
	assert.NotEmpty(t, client.Address)

	out, code, err := client.Exec(context.Background(), "echo 42")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "42\n", string(out))

	_, code, err = client.Exec(context.Background(), "exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestExec_Cancelled(t *testing.T) {
	host := skipIfNoSSH(t)

	client, err := Dial(context.Background(), host, 10*time.Second)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, code, err := client.Exec(ctx, "sleep 10")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, -1, code)
}

func TestResolveSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvUser, "")
	t.Setenv("USER", "alice")

	tests := []struct {
		host     string
		hostname string
		user     string
		port     string
	}{
		{"example.com", "example.com", "alice", "22"},
		{"bob@example.com", "example.com", "bob", "22"},
		{"example.com:2222", "example.com", "alice", "2222"},
		{"admin@server.example.com:2222", "server.example.com", "admin", "2222"},
		{"host:notaport", "host:notaport", "alice", "22"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			s := resolveSettings(tt.host)
			assert.Equal(t, tt.hostname, s.hostname)
			assert.Equal(t, tt.user, s.user)
			assert.Equal(t, tt.port, s.port)
		})
	}
}

func TestResolveSettings_FromSSHConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvUser, "")
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ssh"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ssh", "config"),
		[]byte("Host gateway\n    HostName 10.1.2.3\n    Port 2200\n    User ops\n    IdentityFile ~/.ssh/gateway_key\n"), 0o600))

	s := resolveSettings("gateway")
	assert.Equal(t, "10.1.2.3", s.hostname)
	assert.Equal(t, "2200", s.port)
	assert.Equal(t, "ops", s.user)
	assert.Equal(t, filepath.Join(home, ".ssh", "gateway_key"), s.identityFile)
	assert.Equal(t, "10.1.2.3:2200", s.address())
}

func TestResolveSettings_EnvUser(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvUser, "ci")

	assert.Equal(t, "ci", resolveSettings("example.com").user)
	assert.Equal(t, "explicit", resolveSettings("explicit@example.com").user)
}

func TestExpandPath(t *testing.T) {
	home := homeDir()
	assert.Equal(t, filepath.Join(home, "test"), expandPath("~/test"))
	assert.Equal(t, "/absolute/path", expandPath("/absolute/path"))
	assert.Equal(t, "relative/path", expandPath("relative/path"))
}

func TestSuggestionForDialError(t *testing.T) {
	tests := []struct {
		err      error
		contains string
	}{
		{errors.New("dial tcp: connection refused"), "Is SSH running"},
		{errors.New("no route to host"), "Can't route"},
		{errors.New("i/o timeout"), "timed out"},
		{context.DeadlineExceeded, "timed out"},
		{errors.New("random error"), "reachable"},
	}

	for _, tt := range tests {
		assert.Contains(t, suggestionForDialError(tt.err), tt.contains, tt.err.Error())
	}
}

func TestSuggestionForHandshakeError(t *testing.T) {
	assert.Contains(t, suggestionForHandshakeError(errors.New("unable to authenticate"), nil), "ssh-add -l")
	assert.Contains(t, suggestionForHandshakeError(errors.New("unable to authenticate"), []string{"/k/id_rsa"}), "ssh-add /k/id_rsa")
	assert.Contains(t, suggestionForHandshakeError(errors.New("bad host key"), nil), "Host key issue")
	assert.Contains(t, suggestionForHandshakeError(errors.New("eof"), nil), "Something went wrong")
}

func TestReadSSHConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("Host a\n  User x\nMatch all\n  User y\n"), 0o600))

	content, line, err := readSSHConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, line)
	assert.Equal(t, "Host a\n  User x", string(content))
}
