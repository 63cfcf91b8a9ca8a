package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/greenteam/opsboard/internal/client/api"
	"github.com/greenteam/opsboard/internal/client/auth"
	"github.com/greenteam/opsboard/internal/client/storage/boltdb"
)

// fakeIO собирает вывод и отдает заранее заготовленные ответы на prompt
type fakeIO struct {
	out       strings.Builder
	inputs    []string
	passwords []string
}

func (f *fakeIO) Println(a ...any) {
	f.out.WriteString(fmt.Sprintln(a...))
}

func (f *fakeIO) Printf(format string, a ...any) {
	f.out.WriteString(fmt.Sprintf(format, a...))
}

func (f *fakeIO) ReadInput(string) (string, error) {
	if len(f.inputs) == 0 {
		return "", io.EOF
	}
	v := f.inputs[0]
	f.inputs = f.inputs[1:]
	return v, nil
}

func (f *fakeIO) ReadPassword(string) (string, error) {
	if len(f.passwords) == 0 {
		return "", io.EOF
	}
	v := f.passwords[0]
	f.passwords = f.passwords[1:]
	return v, nil
}

func setupTestCli(t *testing.T) (*Cli, *fakeIO) {
	t.Helper()
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	boltStorage, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = boltStorage.Close() })

	// Сервер не слушает: команды, требующие сети, должны падать ошибкой
	apiClient := clientapi.NewClient("http://127.0.0.1:1")
	authService := auth.NewService(apiClient, boltStorage)

	fio := &fakeIO{}
	return New(apiClient, authService, boltStorage, fio, logger), fio
}

func TestRun_UnknownCommand(t *testing.T) {
	c, _ := setupTestCli(t)

	err := c.Run(context.Background(), "mow-the-lawn", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRunStatus_NotAuthenticated(t *testing.T) {
	c, fio := setupTestCli(t)

	require.NoError(t, c.Run(context.Background(), "status", nil))
	assert.Contains(t, fio.out.String(), "Not authenticated")
}

func TestDataCommand_RequiresLogin(t *testing.T) {
	c, _ := setupTestCli(t)

	err := c.Run(context.Background(), "announce", []string{"list"})
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	c, fio := setupTestCli(t)
	fio.inputs = []string{"marcus"}
	fio.passwords = []string{"password123", "different123"}

	err := c.Run(context.Background(), "register", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")
}

func TestSubcommand(t *testing.T) {
	sub, rest := subcommand(nil, "list")
	assert.Equal(t, "list", sub)
	assert.Empty(t, rest)

	sub, rest = subcommand([]string{"add", "x", "y"}, "list")
	assert.Equal(t, "add", sub)
	assert.Equal(t, []string{"x", "y"}, rest)
}
