package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/finance_dashboard/internal/platform/config"
	"github.com/SscSPs/finance_dashboard/internal/repositories/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useSharedMemoryStore makes every command in the test see the same store.
func useSharedMemoryStore(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	shared := kv.NewNotifyingStore(kv.NewMemoryStore())
	previous := openStore
	openStore = func(context.Context, *config.Config, *slog.Logger) (portsrepo.NotifyingStore, func(), error) {
		return shared, func() {}, nil
	}
	t.Cleanup(func() { openStore = previous })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedShowExportReset(t *testing.T) {
	useSharedMemoryStore(t)

	out, err := run(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No ledger stored.")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 accounts, 3 transactions and 3 goals. Total balance $28,825.26.")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "already stored")

	out, err = run(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "$28,825.26")
	assert.Contains(t, out, "Total income:    $4,500.00 (1 transactions)")
	assert.Contains(t, out, "Total expenses:  $1,014.99 (2 transactions)")

	out, err = run(t, "export")
	require.NoError(t, err)
	var state domain.LedgerState
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Len(t, state.Accounts, 4)
	assert.Equal(t, "28825.26", state.TotalBalance.StringFixed(2))

	out, err = run(t, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Ledger removed.")

	_, err = run(t, "export")
	assert.EqualError(t, err, "no ledger stored")
}

func TestResetReseed(t *testing.T) {
	useSharedMemoryStore(t)

	_, err := run(t, "reset", "--reseed")
	require.NoError(t, err)

	out, err := run(t, "export")
	require.NoError(t, err)
	var state domain.LedgerState
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Len(t, state.Goals, 3)
}

func TestMigrate_MemoryHasNoSchema(t *testing.T) {
	useSharedMemoryStore(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStorageNoneIsRejected(t *testing.T) {
	useSharedMemoryStore(t)
	t.Setenv("STORAGE_DRIVER", "none")

	_, err := run(t, "show")
	assert.ErrorContains(t, err, "STORAGE_DRIVER is none")
}
