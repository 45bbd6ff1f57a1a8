// Package config loads the application configuration from YAML and turns it into engine objects.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/camera"
	"github.com/Carmen-Shannon/oxy-raster/engine/game_object"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-raster/engine/scene"
	"github.com/Carmen-Shannon/oxy-raster/engine/snapshot"

	"gopkg.in/yaml.v3"
)

// maxConfigSize bounds the configuration file read from disk.
const maxConfigSize = 1024 * 1024

// Config is the full application configuration. The zero value is not usable; start from Default.
type Config struct {
	Window     WindowConfig              `yaml:"window"`
	Frame      FrameConfig               `yaml:"frame"`
	Background Color                     `yaml:"background"`
	Light      common.Vec3               `yaml:"light"`
	Camera     CameraConfig              `yaml:"camera"`
	Controller ControllerConfig          `yaml:"controller"`
	Loader     LoaderConfig              `yaml:"loader"`
	Shader     string                    `yaml:"shader"`
	Presets    map[string][]ObjectConfig `yaml:"presets"`
	Snapshot   SnapshotConfig            `yaml:"snapshot"`
	Profiling  ProfilingConfig           `yaml:"profiling"`
	LogLevel   string                    `yaml:"log_level"`
	Headless   HeadlessConfig            `yaml:"headless"`
}

// WindowConfig sizes the window and the framebuffer.
type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Resizable     bool   `yaml:"resizable"`
	PresentMode   string `yaml:"present_mode"` // vsync or uncapped
	ForceSoftware bool   `yaml:"force_software"`
}

// FrameConfig controls frame pacing.
type FrameConfig struct {
	Interval Duration `yaml:"interval"`
}

// CameraConfig positions the camera. Fov is in degrees.
type CameraConfig struct {
	Eye         common.Vec3 `yaml:"eye"`
	Center      common.Vec3 `yaml:"center"`
	Up          common.Vec3 `yaml:"up"`
	Fov         float32     `yaml:"fov"`
	Near        float32     `yaml:"near"`
	Far         float32     `yaml:"far"`
	MinDistance float32     `yaml:"min_distance"`
}

// ControllerConfig sets the per-frame camera speeds applied while keys are held.
type ControllerConfig struct {
	OrbitSpeed float32 `yaml:"orbit_speed"`
	PanSpeed   float32 `yaml:"pan_speed"`
	ZoomSpeed  float32 `yaml:"zoom_speed"`
}

// LoaderConfig tunes mesh loading.
type LoaderConfig struct {
	Workers      int `yaml:"workers"`
	SphereStacks int `yaml:"sphere_stacks"`
	SphereSlices int `yaml:"sphere_slices"`
	RingSegments int `yaml:"ring_segments"`
}

// ObjectConfig describes one draw-list entry. Scale 0 means 1.
type ObjectConfig struct {
	ID            uint64      `yaml:"id"` // 0 lets the scene assign one
	Mesh          string      `yaml:"mesh"`
	Shader        string      `yaml:"shader"`
	Position      common.Vec3 `yaml:"position"`
	Scale         float32     `yaml:"scale"`
	Rotation      common.Vec3 `yaml:"rotation"`
	RotationSpeed common.Vec3 `yaml:"rotation_speed"`
	Orbit         OrbitConfig `yaml:"orbit"`
}

// OrbitConfig makes an object circle its position in the XZ plane.
type OrbitConfig struct {
	Radius float32 `yaml:"radius"`
	Speed  float32 `yaml:"speed"`
	Face   bool    `yaml:"face"`
}

// SnapshotConfig controls where the snapshot key writes frames.
type SnapshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// ProfilingConfig enables periodic frame statistics.
type ProfilingConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

// HeadlessConfig renders without a window and writes the last frame to Output.
type HeadlessConfig struct {
	Frames int    `yaml:"frames"`
	Output string `yaml:"output"`
}

// Duration wraps time.Duration for YAML unmarshaling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Color is a packed 0xRRGGBB value written in YAML as "#RRGGBB", "0xRRGGBB" or a plain integer.
type Color uint32

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalYAML writes the color as "#RRGGBB".
func (c Color) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%06X", uint32(c)), nil
}

// ParseColor parses "#RRGGBB", "0xRRGGBB" or a decimal integer.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "#"):
		v, err = strconv.ParseUint(s[1:], 16, 32)
	default:
		v, err = strconv.ParseUint(s, 0, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("invalid color %q: more than 24 bits", s)
	}
	return Color(v), nil
}

// Default returns the configuration that reproduces the classic viewer: a 600x600 window,
// 16ms frames, background 0x333355, the camera five units back on +Z, and the builtin presets.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       "oxy-raster",
			Width:       600,
			Height:      600,
			Resizable:   true,
			PresentMode: "uncapped",
		},
		Frame:      FrameConfig{Interval: Duration(16 * time.Millisecond)},
		Background: 0x333355,
		Light:      renderer.DefaultLight,
		Camera: CameraConfig{
			Eye:         common.V3(0, 0, 5),
			Center:      common.Vec3{},
			Up:          common.V3(0, 1, 0),
			Fov:         45,
			Near:        0.1,
			Far:         1000,
			MinDistance: camera.DefaultMinDistance,
		},
		Controller: ControllerConfig{
			OrbitSpeed: camera.DefaultOrbitSpeed,
			PanSpeed:   camera.DefaultPanSpeed,
			ZoomSpeed:  camera.DefaultZoomSpeed,
		},
		Loader: LoaderConfig{
			SphereStacks: 24,
			SphereSlices: 48,
			RingSegments: 96,
		},
		Shader:    shader.KindNeptune.String(),
		Snapshot:  SnapshotConfig{Dir: ".", Format: string(snapshot.FormatPNG)},
		Profiling: ProfilingConfig{Interval: Duration(time.Second)},
		LogLevel:  "info",
		Headless:  HeadlessConfig{Frames: 120, Output: "frame.png"},
	}
}

// Load reads the configuration file at path over the defaults. A missing path returns Default.
//
// Parameters:
//   - path: the YAML file, or "" for defaults only
//
// Returns:
//   - Config: the merged, validated configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return Config{}, fmt.Errorf("config file %s too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	common.Logger().Info("loaded config", "path", path, "size", info.Size())
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the merged, validated configuration
//   - error: error if the document is malformed or invalid
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every value that would otherwise fail later at startup.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Frame.Interval < 0 {
		errs = append(errs, fmt.Errorf("frame interval %v must not be negative", c.Frame.Interval.Duration()))
	}
	if _, err := c.PresentMode(); err != nil {
		errs = append(errs, err)
	}
	if _, err := shader.ParseKind(c.Shader); err != nil {
		errs = append(errs, fmt.Errorf("shader: %w", err))
	}
	if _, err := c.ScenePresets(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Camera.New(1); err != nil {
		errs = append(errs, err)
	}
	if _, err := snapshot.ParseFormat(c.Snapshot.Format); err != nil {
		errs = append(errs, fmt.Errorf("snapshot: %w", err))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Headless.Frames < 0 {
		errs = append(errs, fmt.Errorf("headless frames %d must not be negative", c.Headless.Frames))
	}
	if _, err := snapshot.FormatForPath(c.Headless.Output); err != nil {
		errs = append(errs, fmt.Errorf("headless output: %w", err))
	}
	return errors.Join(errs...)
}

// SelectedKind returns the shader kind selected at startup.
func (c Config) SelectedKind() (shader.Kind, error) {
	return shader.ParseKind(c.Shader)
}

// PresentMode maps the window present mode name to the renderer's mode.
func (c Config) PresentMode() (renderer.PresentMode, error) {
	switch strings.ToLower(c.Window.PresentMode) {
	case "", "uncapped":
		return renderer.PresentModeUncapped, nil
	case "vsync":
		return renderer.PresentModeVSync, nil
	}
	return 0, fmt.Errorf("unknown present mode %q", c.Window.PresentMode)
}

// Level maps LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// ScenePresets builds the draw lists: the builtin presets with every configured preset replacing
// the one for its selector.
//
// Returns:
//   - map[shader.Kind][]game_object.GameObject: the draw lists keyed by selector
//   - error: error if a selector or shader name is unknown or an entry has no mesh
func (c Config) ScenePresets() (map[shader.Kind][]game_object.GameObject, error) {
	presets := scene.DefaultPresets()
	for name, objs := range c.Presets {
		kind, err := shader.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("preset: %w", err)
		}
		list := make([]game_object.GameObject, 0, len(objs))
		for i, oc := range objs {
			obj, err := oc.New()
			if err != nil {
				return nil, fmt.Errorf("preset %s entry %d: %w", kind, i, err)
			}
			list = append(list, obj)
		}
		presets[kind] = list
	}
	return presets, nil
}

// New builds the GameObject described by oc.
func (oc ObjectConfig) New() (game_object.GameObject, error) {
	if oc.Mesh == "" {
		return nil, errors.New("mesh is required")
	}
	kind, err := shader.ParseKind(oc.Shader)
	if err != nil {
		return nil, err
	}
	return game_object.NewGameObject(oc.Mesh, kind,
		game_object.WithID(oc.ID),
		game_object.WithPosition(oc.Position),
		game_object.WithScale(common.Coalesce(oc.Scale, 1)),
		game_object.WithRotation(oc.Rotation),
		game_object.WithRotationSpeed(oc.RotationSpeed),
		game_object.WithOrbit(oc.Orbit.Radius, oc.Orbit.Speed, oc.Orbit.Face),
	), nil
}

// New builds the camera described by cc for the given aspect ratio.
func (cc CameraConfig) New(aspect float32) (camera.Camera, error) {
	return camera.NewCamera(cc.Eye, cc.Center, cc.Up,
		camera.WithFov(common.Radians(cc.Fov)),
		camera.WithAspect(aspect),
		camera.WithClipPlanes(cc.Near, cc.Far),
		camera.WithMinDistance(cc.MinDistance),
	)
}

// New builds the camera controller described by cc.
func (cc ControllerConfig) New() camera.CameraController {
	return camera.NewCameraController(
		camera.WithOrbitSpeed(cc.OrbitSpeed),
		camera.WithPanSpeed(cc.PanSpeed),
		camera.WithZoomSpeed(cc.ZoomSpeed),
	)
}
