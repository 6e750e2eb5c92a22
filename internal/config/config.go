package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/cdplay/internal/library"
)

const (
	appName = "cdplay"

	// EnvConfig overrides config discovery with an explicit file path.
	EnvConfig = "CDPLAY_CONFIG"

	defaultBinary = "mpv"
	defaultVolume = 100
	maxVolume     = 130
)

var fileNames = []string{"config.json", "config.toml"}

type Config struct {
	Library library.Library `koanf:"-"`
	Player  PlayerConfig    `koanf:"player"`

	// Keys overrides default bindings, keyed by action name ("up", "next", ...).
	Keys map[string][]string `koanf:"keys"`

	// Notifications shows a desktop notification for each track (Linux).
	Notifications bool `koanf:"notifications"`

	// Path is the file the config was loaded from.
	Path string `koanf:"-"`
}

// PlayerConfig configures the external playback process.
type PlayerConfig struct {
	Binary    string   `koanf:"binary"`     // default: mpv
	Volume    int      `koanf:"volume"`     // 0-130, default: 100
	IPCPath   string   `koanf:"ipc_path"`   // control socket / named pipe
	ExtraArgs []string `koanf:"extra_args"` // appended after the built-in flags
}

// Load locates the config file and loads it.
func Load() (*Config, error) {
	path, err := Locate()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads and validates the config at path.
func LoadFile(path string) (*Config, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, &Error{File: path, Reason: "cannot read file", Err: err}
	}

	lib, err := parseLibrary(k)
	if err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) {
			cfgErr.File = path
		}
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, &Error{File: path, Reason: "invalid settings", Err: err}
	}
	cfg.Library = lib
	cfg.Path = path
	cfg.Player = cfg.Player.withDefaults(k.Exists("player.volume"))

	return cfg, nil
}

// Locate returns the config file to load: $CDPLAY_CONFIG, then a file next
// to the executable, then the XDG config directory.
func Locate() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return expandPath(p), nil
	}

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", &Error{Reason: "missing config file next to the " + appName + " executable"}
}

func getConfigPaths() []string {
	var paths []string

	if dir, err := executableDir(); err == nil {
		for _, name := range fileNames {
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	for _, name := range fileNames {
		paths = append(paths, filepath.Join(xdg.ConfigHome, appName, name))
	}

	return paths
}

// executableDir returns the directory holding the running binary. Binaries
// built by "go run" live in the temp dir, so the working directory is used.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	if isUnder(dir, os.TempDir()) {
		return os.Getwd()
	}
	return dir, nil
}

func isUnder(path, root string) bool {
	if root == "" {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, &Error{File: path, Reason: "unsupported config format (want .json or .toml)"}
	}
}

// withDefaults fills unset fields. volumeSet tells an explicit 0 (muted)
// from a missing volume.
func (p PlayerConfig) withDefaults(volumeSet bool) PlayerConfig {
	if p.Binary == "" {
		p.Binary = defaultBinary
	}
	p.Binary = expandPath(p.Binary)
	if !volumeSet || p.Volume < 0 || p.Volume > maxVolume {
		p.Volume = defaultVolume
	}
	if p.IPCPath == "" {
		p.IPCPath = defaultIPCPath()
	}
	p.IPCPath = expandPath(p.IPCPath)
	return p
}

// defaultIPCPath is $XDG_RUNTIME_DIR/cdplay/mpv-<pid>.sock, so two running
// instances never share a socket.
func defaultIPCPath() string {
	if runtime.GOOS == "windows" {
		return `\\.\pipe\` + appName + "-mpv"
	}
	name := fmt.Sprintf("mpv-%d.sock", os.Getpid())
	if path, err := xdg.RuntimeFile(filepath.Join(appName, name)); err == nil {
		return path
	}
	return filepath.Join(os.TempDir(), appName+"-"+name)
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
