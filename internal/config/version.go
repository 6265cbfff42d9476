package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Version is set at build time with -ldflags "-X ikdashboard/internal/config.Version=..."
var Version = ""

// GetVersion returns the build version, the APP_VERSION environment variable
// or the content of the VERSION file, in that order
func GetVersion() string {
	if Version != "" {
		return Version
	}

	// Set by CI/CD for container builds
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	return getBaseVersion()
}

// getBaseVersion reads the base version from VERSION file
func getBaseVersion() string {
	for _, versionPath := range []string{"VERSION", filepath.Join("..", "VERSION"), filepath.Join("..", "..", "VERSION")} {
		if content, err := os.ReadFile(versionPath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	// Final fallback
	return "0.1.0"
}
