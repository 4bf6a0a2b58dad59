package scenes

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultScene is the scene loaded when none is configured.
const DefaultScene = "scene.yaml"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads a speed script, preferring scenes/scripts on disk so
// edits are picked up on reload.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	data, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, eris.Wrapf(err, "scenes: script %s", name)
	}
	return data, nil
}

//go:embed *.yaml
var ScenesFS embed.FS

// Load reads a scene file from disk when present, otherwise from the
// embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if clean == "" {
		clean = DefaultScene
	}
	if filepath.IsAbs(name) {
		return os.ReadFile(name)
	}
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

// ModTime reports when the on-disk copy of a scene was last modified. ok is
// false when the scene only exists in the embedded copy.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(scenePath(name))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// NeedsReload decides whether the watcher events in changed affect the scene
// loaded from name at modification time loaded. Any script edit counts. A
// scene file counts only if it is this scene and its modification time moved.
func NeedsReload(name string, loaded time.Time, changed []string) bool {
	path := scenePath(name)
	for _, c := range changed {
		if isScriptFile(c) {
			return true
		}
		if filepath.Base(c) != filepath.Base(path) {
			continue
		}
		mod, ok := ModTime(name)
		if !ok || !mod.Equal(loaded) {
			return true
		}
	}
	return false
}

func scenePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	clean := cleanScenePath(name)
	if clean == "" {
		clean = DefaultScene
	}
	return diskPath(clean)
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join("scenes", filepath.FromSlash(clean))
}
