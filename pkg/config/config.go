// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// GitHub repository used for self-update
	GitHubRepo = "snapvault/snapctl"
	GitHubAPI  = "https://api.github.com"

	// Configuration
	EnvPrefix        = "SNAPCTL" // Environment variable prefix for Viper
	ConfigFileName   = "config"  // Config file name for XDG config dir (without extension)
	LocalConfigFile  = "snapctl" // Config file name for current directory (without extension)
	ConfigType       = "yaml"    // Config file type
	DefaultConfigExt = ".yaml"   // Default config file extension

	// DefaultServerURL is the daemon admin API endpoint when nothing is configured
	DefaultServerURL = "http://127.0.0.1:9600"
)

// Paths holds all XDG-compliant directory paths
type Paths struct {
	DataDir   string
	CacheDir  string
	ConfigDir string
	BinDir    string

	// Subdirectories
	StagingDir string // Self-update download staging area (in cache)
}

var (
	// GlobalPaths is the global paths instance
	GlobalPaths *Paths
)

func init() {
	GlobalPaths = GetPaths()
}

// GetPaths returns XDG-compliant directory paths
func GetPaths() *Paths {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		cacheHome = filepath.Join(home, ".cache")
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		configHome = filepath.Join(home, ".config")
	}

	dataDir := filepath.Join(dataHome, "snapctl")
	cacheDir := filepath.Join(cacheHome, "snapctl")
	configDir := filepath.Join(configHome, "snapctl")

	return &Paths{
		DataDir:    dataDir,
		CacheDir:   cacheDir,
		ConfigDir:  configDir,
		BinDir:     filepath.Join(dataDir, "bin"),
		StagingDir: filepath.Join(cacheDir, "staging"),
	}
}

// IsProjectMode returns true when a snapctl.yaml exists in the current
// working directory, meaning the CLI runs inside a project checkout that
// carries shared team settings.
func IsProjectMode() bool {
	_, err := os.Stat(filepath.Join(".", LocalConfigFile+DefaultConfigExt))
	return err == nil
}

// InitDirs creates all necessary directories
func InitDirs() error {
	dirs := []string{
		GlobalPaths.ConfigDir,
		GlobalPaths.DataDir,
		GlobalPaths.BinDir,
		GlobalPaths.CacheDir,
		GlobalPaths.StagingDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetGitHubToken returns the GitHub token used by the self-update client
// Priority: ENV:SNAPCTL_GITHUB_TOKEN > user config > defaults
func GetGitHubToken() string {
	return viper.GetString("github-token")
}
