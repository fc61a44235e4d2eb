package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsSqliteDSN(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{Mode: "dev", Driver: "sqlite", Data: dir, Secret: "test-secret"}
	require.NoError(t, p.Validate())
	require.Equal(t, filepath.Join(dir, "studyloop_dev.db"), p.DSN)
}

func TestValidateUnknownModeFallsBackToDev(t *testing.T) {
	p := &Profile{Mode: "staging", Driver: "sqlite", Data: t.TempDir(), Secret: "s"}
	require.NoError(t, p.Validate())
	require.Equal(t, "dev", p.Mode)
	require.True(t, p.IsDev())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	p := &Profile{Mode: "dev", Driver: "mysql", Secret: "s"}
	require.Error(t, p.Validate())
}

func TestValidatePostgresRequiresDSN(t *testing.T) {
	p := &Profile{Mode: "prod", Driver: "postgres", Secret: "s"}
	require.Error(t, p.Validate())

	p.DSN = "postgresql://studyloop:pw@localhost/studyloop"
	require.NoError(t, p.Validate())
}

func TestValidateRequiresSecret(t *testing.T) {
	p := &Profile{Mode: "dev", Driver: "sqlite", Data: t.TempDir()}
	require.Error(t, p.Validate())
}

func TestValidateMissingDataDir(t *testing.T) {
	p := &Profile{Mode: "dev", Driver: "sqlite", Data: "/does/not/exist", Secret: "s"}
	require.Error(t, p.Validate())
}
