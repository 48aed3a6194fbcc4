// Package config loads the JSON settings shared by the command-line tools
// and merges them with flag overrides and defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"tinylib/internal/mathutil"
)

// ErrInvalid reports a setting that Validate rejects.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds paths and render settings.
type Config struct {
	// Paths
	DataDir   string `json:"data_dir"`
	OutputDir string `json:"output_dir"`

	// Output
	Format      string  `json:"format"`
	Quality     int     `json:"quality"`
	Size        int     `json:"size"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Fill        float32 `json:"fill"`      // mesh renders: crop and rescale, 0 keeps camera framing
	Despeckle   float32 `json:"despeckle"` // mesh renders: minimum pixel group share

	Noise  Noise  `json:"noise"`
	Camera Camera `json:"camera"`
}

// Noise configures the Perlin heightmap tiles. Seed is a pointer because
// zero is a valid seed; nil means unset and Resolve fills DefaultSeed.
type Noise struct {
	Octaves int     `json:"octaves"`
	Freq    float32 `json:"freq"`
	Amp     float32 `json:"amp"`
	Seed    *int64  `json:"seed,omitempty"`
	Tiles   int     `json:"tiles"`
}

// SeedValue returns the configured seed, or DefaultSeed when unset.
func (n Noise) SeedValue() int64 {
	if n.Seed == nil {
		return DefaultSeed
	}
	return *n.Seed
}

// Camera configures the mesh viewer. Rotate holds model Euler angles in
// degrees, applied X then Y then Z.
type Camera struct {
	FOV    float32       `json:"fov"`
	Eye    mathutil.Vec3 `json:"eye"`
	Target mathutil.Vec3 `json:"target"`
	Up     mathutil.Vec3 `json:"up"`
	Rotate mathutil.Vec3 `json:"rotate"`
}

// Defaults applied by Resolve to zero fields.
const (
	DefaultFormat      = "png"
	DefaultSize        = 256
	DefaultSupersample = 2
	DefaultQuality     = 90
	DefaultOctaves     = 4
	DefaultFreq        = 4
	DefaultAmp         = 1
	DefaultSeed        = 94
	DefaultFOV         = 45
)

// Load reads a JSON config file. Fields not set in the file keep their zero
// values until Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Zero
// values leave the file setting alone, except Seed where only nil does.
type Flags struct {
	DataDir     string
	OutputDir   string
	Format      string
	Quality     int
	Size        int
	Supersample int
	Workers     int
	Fill        float32
	Despeckle   float32

	Octaves int
	Freq    float32
	Amp     float32
	Seed    *int64
	Tiles   int

	FOV    float32
	Rotate mathutil.Vec3
}

// Resolve applies flag overrides, then fills empty fields with defaults and
// auto-detected paths.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	setString(&c.DataDir, flags.DataDir)
	setString(&c.OutputDir, flags.OutputDir)
	setString(&c.Format, strings.ToLower(flags.Format))
	setPositive(&c.Quality, flags.Quality)
	setPositive(&c.Size, flags.Size)
	setPositive(&c.Supersample, flags.Supersample)
	setPositive(&c.Workers, flags.Workers)
	setPositive(&c.Noise.Octaves, flags.Octaves)
	setPositive(&c.Noise.Tiles, flags.Tiles)
	if flags.Freq != 0 {
		c.Noise.Freq = flags.Freq
	}
	if flags.Amp != 0 {
		c.Noise.Amp = flags.Amp
	}
	if flags.Seed != nil {
		seed := *flags.Seed
		c.Noise.Seed = &seed
	}
	if flags.Fill != 0 {
		c.Fill = flags.Fill
	}
	if flags.Despeckle != 0 {
		c.Despeckle = flags.Despeckle
	}
	if flags.FOV != 0 {
		c.Camera.FOV = flags.FOV
	}
	for i, r := range flags.Rotate {
		if r != 0 {
			c.Camera.Rotate[i] = r
		}
	}

	if c.DataDir == "" {
		c.DataDir = detectDataDir()
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
		if c.DataDir != "" {
			c.OutputDir = filepath.Join(filepath.Dir(c.DataDir), "out")
		}
	}

	// Defaults for render settings
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	c.Format = strings.ToLower(c.Format)
	orDefault(&c.Size, DefaultSize)
	orDefault(&c.Supersample, DefaultSupersample)
	orDefault(&c.Quality, DefaultQuality)
	orDefault(&c.Workers, runtime.NumCPU())

	orDefault(&c.Noise.Octaves, DefaultOctaves)
	orDefault(&c.Noise.Tiles, 1)
	if c.Noise.Freq == 0 {
		c.Noise.Freq = DefaultFreq
	}
	if c.Noise.Amp == 0 {
		c.Noise.Amp = DefaultAmp
	}
	if c.Noise.Seed == nil {
		seed := int64(DefaultSeed)
		c.Noise.Seed = &seed
	}

	if c.Camera.FOV <= 0 {
		c.Camera.FOV = DefaultFOV
	}
	if c.Camera.Eye == (mathutil.Vec3{}) {
		c.Camera.Eye = mathutil.Vec3{0, 0, 3}
	}
	if c.Camera.Up == (mathutil.Vec3{}) {
		c.Camera.Up = mathutil.Vec3{0, 1, 0}
	}
}

// Validate checks a resolved config.
func (c *Config) Validate() error {
	switch c.Format {
	case "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	if c.Quality > 100 {
		return fmt.Errorf("%w: quality %d", ErrInvalid, c.Quality)
	}
	if c.Fill < 0 || c.Fill > 1 {
		return fmt.Errorf("%w: fill %g", ErrInvalid, c.Fill)
	}
	if c.Despeckle < 0 || c.Despeckle >= 1 {
		return fmt.Errorf("%w: despeckle %g", ErrInvalid, c.Despeckle)
	}
	if c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.Camera.FOV)
	}
	if c.Camera.Eye == c.Camera.Target {
		return fmt.Errorf("%w: camera eye equals target", ErrInvalid)
	}
	return nil
}

// DataPath joins a relative name to the data directory. Absolute names are
// returned unchanged.
func (c *Config) DataPath(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func orDefault(dst *int, def int) {
	if *dst <= 0 {
		*dst = def
	}
}

// detectDataDir looks for a data directory next to the executable, one
// level above it, then in the working directory and its parent.
func detectDataDir() string {
	var bases []string
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		bases = append(bases, dir, filepath.Dir(dir))
	}
	if cwd, err := os.Getwd(); err == nil {
		bases = append(bases, cwd, filepath.Dir(cwd))
	}
	for _, base := range bases {
		dir := filepath.Join(base, "data")
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return ""
}
