package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// environment variable that overrides every other lookup
const EnvPath = "SUBAUDIT_FFMPEG_PATH"

var ErrNotFound = errors.New("ffmpeg binary not found")

// FFmpegPath resolves the ffmpeg executable. The environment variable wins,
// then the configured path, then PATH.
func FFmpegPath(configured string) (string, error) {
	if env := strings.TrimSpace(os.Getenv(EnvPath)); env != "" {
		if !fileExists(env) {
			return "", fmt.Errorf("%w: %s=%s", ErrNotFound, EnvPath, env)
		}
		return env, nil
	}

	if configured = strings.TrimSpace(configured); configured != "" {
		if !fileExists(configured) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, configured)
		}
		return configured, nil
	}

	found, err := exec.LookPath("ffmpeg" + executableSuffix())
	if err != nil {
		return "", fmt.Errorf("%w: install ffmpeg or set %s", ErrNotFound, EnvPath)
	}
	return found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
