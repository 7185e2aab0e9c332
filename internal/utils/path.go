package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// PathResolver locates the lexicon document and config files relative to
// the running binary, the working dir and the user config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver resolves the executable location (following symlinks).
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "lexserve")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "lexserve")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "lexserve")
	}
	return filepath.Join(homeDir, ".config", "lexserve")
}

// IsRemote reports whether source names an http(s) URL rather than a file.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ResolveSource returns the first existing file for a lexicon source.
// URLs are returned untouched. Candidates, in order:
// the path itself, relative to the cwd, the executable dir, then the config dir.
func (pr *PathResolver) ResolveSource(source string) string {
	if source == "" || IsRemote(source) || filepath.IsAbs(source) {
		return source
	}

	candidates := []string{source}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, source))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, source),
		filepath.Join(pr.configDir, source),
	)

	for _, c := range candidates {
		if FileExists(c) {
			log.Debugf("Found lexicon source: %s", c)
			return c
		}
		log.Debugf("Lexicon source candidate missing: %s", c)
	}
	return source
}

// ConfigDir returns the platform config directory.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}
