package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/spread-pickem/internal/config"
	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

func TestParseScore(t *testing.T) {
	v, err := parseScore("24")
	require.NoError(t, err)
	assert.Equal(t, 24, v)

	_, err = parseScore("-3")
	assert.Error(t, err)
	_, err = parseScore("ten")
	assert.Error(t, err)
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)
}

func TestScopeFlags_Resolve(t *testing.T) {
	fallback := game.Scope{Season: 2025, WeekType: game.WeekTypePreseason, Week: 1}

	scope, err := (&scopeFlags{}).resolve(fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, scope)

	scope, err = (&scopeFlags{weekType: "regular", week: 3}).resolve(fallback)
	require.NoError(t, err)
	assert.Equal(t, game.Scope{Season: 2025, WeekType: game.WeekTypeRegular, Week: 3}, scope)

	_, err = (&scopeFlags{weekType: "bowl"}).resolve(fallback)
	assert.Error(t, err)
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", "")

	got, err := resolveMigrationsDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))
	t.Setenv("MIGRATIONS_DIR", nested)
	got, err = resolveMigrationsDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Equal(t, nested, got)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cmd := tokenCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"alice", "--ttl", "1h"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 3, len(bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("."))))
}

func TestCLIConfig_DisablesCacheAndReportsAPIStaleness(t *testing.T) {
	cfg, staleFor := cliConfig(config.Config{CacheEnabled: true, CacheTTL: 30 * time.Second})
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 30*time.Second, staleFor)

	cfg, staleFor = cliConfig(config.Config{CacheEnabled: false, CacheTTL: 30 * time.Second})
	assert.False(t, cfg.CacheEnabled)
	assert.Zero(t, staleFor)
}
