package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/llmops-go/internal/core/domain"
)

func TestRepl_SessionLastsUntilLogout(t *testing.T) {
	srv := newMockServer(t)
	srv.reply("POST /auth/login", domain.CodeSuccess, "ok", map[string]string{"access_token": "tok"})
	srv.reply("POST /auth/logout", domain.CodeSuccess, "bye", nil)
	srv.reply("GET /openapi/api-keys", domain.CodeSuccess, "ok", sampleKeys())

	input := strings.Join([]string{
		"login -e a@b.c -p pw",
		"-o json whoami",
		"logout",
		"apikey list",
		"exit",
	}, "\n") + "\n"

	res := runCLI(t, srv, input, "repl")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Connected to "+srv.URL)
	assert.Contains(t, res.stdout, `"email": "a@b.c"`)
	assert.Contains(t, res.stdout, `"authenticated": true`)
	assert.Contains(t, res.stdout, "ok: bye")

	reqs := srv.recorded()
	require.Len(t, reqs, 3)
	assert.Equal(t, "Bearer tok", reqs[1].Authorization, "logout carries the session")
	assert.Empty(t, reqs[2].Authorization, "logout cleared the session")
}

func TestRepl_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	srv := newMockServer(t)
	srv.reply("GET /openapi/api-keys", domain.CodeForbidden, "forbidden", nil)

	res := runCLI(t, srv, "apikey list\nnope\nrepl\nversion\n", "repl")
	require.NoError(t, res.err)

	assert.Equal(t, 1, strings.Count(res.stderr, "error: forbidden"), "dispatcher notification is not repeated")
	assert.Contains(t, res.stderr, `error: unknown command "nope"`)
	assert.Contains(t, res.stdout, `unknown command "nope", type "?" to list commands`)
	assert.Contains(t, res.stderr, "error: already in interactive mode")
	assert.Contains(t, res.stdout, "go_version")
}

func TestRepl_CompletionListsCommands(t *testing.T) {
	res := runCLI(t, nil, "apikey ?\n", "repl")
	require.NoError(t, res.err)

	for _, want := range []string{"apikey list", "apikey create", "apikey delete"} {
		assert.Contains(t, res.stdout, want+"\n")
	}
}

func TestRepl_WritesHistory(t *testing.T) {
	history := filepath.Join(t.TempDir(), "history")
	t.Setenv("LLMOPS_HISTORY", history)

	res := runCLI(t, nil, "version\nexit\n", "repl")
	require.NoError(t, res.err)

	data, err := os.ReadFile(history)
	require.NoError(t, err)
	assert.Equal(t, "version\nexit\n", string(data))
}
