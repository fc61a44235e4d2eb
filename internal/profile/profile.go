// Package profile holds the server runtime configuration.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev".
	Mode string
	// Addr is the binding address for server.
	Addr string
	// Port is the binding port for server.
	Port int
	// Data is the data directory.
	Data string
	// DSN points to where studyloop stores its own data.
	DSN string
	// Driver is the database driver (sqlite or postgres).
	Driver string
	// Secret signs and verifies API access tokens.
	Secret string
	// Version is the current version of server.
	Version string
}

// IsDev reports whether the server runs in development mode.
func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes the profile and fills driver-dependent defaults.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}

	if p.Driver == "sqlite" {
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			return err
		}
		p.Data = dataDir
		if p.DSN == "" {
			p.DSN = filepath.Join(dataDir, fmt.Sprintf("studyloop_%s.db", p.Mode))
		}
	}

	if p.Secret == "" {
		return errors.New("secret is required to sign access tokens")
	}

	return nil
}
