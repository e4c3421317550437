package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	EnvSiteURL    = "SITE_URL"
	EnvOutDir     = "SSG_OUT_DIR"
	EnvAPIBaseURL = "API_BASE_URL"

	DefaultOutDir     = "dist"
	DevAPIBaseURL     = "http://127.0.0.1:8000"
	defaultEnvFile    = ".env"
	defaultEnvFileDev = ".env.local"
)

// Env holds the environment-driven settings. Every field is optional.
type Env struct {
	// SiteURL is the configured site origin without trailing slashes.
	SiteURL string
	// OutDir is the static build output directory.
	OutDir string
	// APIBaseURL is the content API base without a trailing slash.
	APIBaseURL string
}

// LoadDotEnv loads the given env files, then .env and .env.local. Missing
// files are skipped and variables already present in the process
// environment are never overridden.
func LoadDotEnv(files ...string) error {
	candidates := append([]string{}, files...)
	candidates = append(candidates, defaultEnvFile, defaultEnvFileDev)

	for _, file := range candidates {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(err, "stat env file %s", file)
		}
		if err := godotenv.Load(file); err != nil {
			return errors.Wrapf(err, "loading env file %s", file)
		}
	}

	return nil
}

// EnvFromOS reads Env from the process environment.
func EnvFromOS() Env {
	env := Env{
		SiteURL:    TrimOrigin(os.Getenv(EnvSiteURL)),
		OutDir:     strings.TrimSpace(os.Getenv(EnvOutDir)),
		APIBaseURL: strings.TrimSuffix(strings.TrimSpace(os.Getenv(EnvAPIBaseURL)), "/"),
	}
	if env.OutDir == "" {
		env.OutDir = DefaultOutDir
	}
	return env
}

// ArtifactOrigin returns the origin used for build artifacts: the
// configured site URL, else the manifest origin.
func (e Env) ArtifactOrigin(manifest *SiteManifest) string {
	if e.SiteURL != "" {
		return e.SiteURL
	}
	if manifest != nil {
		return manifest.Origin
	}
	return ""
}

// ResolveAPIBaseURL returns the content API base. In dev mode an unset
// value falls back to the local backend; otherwise it stays empty and the
// blog loaders are disabled.
func (e Env) ResolveAPIBaseURL(dev bool) string {
	if e.APIBaseURL != "" {
		return e.APIBaseURL
	}
	if dev {
		return DevAPIBaseURL
	}
	return ""
}
