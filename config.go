package willowmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
)

// ConfigFileName is the file LoadConfig looks for.
const ConfigFileName = "willowmap.json"

// Config holds the overlay's tunables.
type Config struct {
	// DragScale multiplies the ambient marker scale for the dragged marker.
	DragScale float64
	// DrawFocused draws the focused marker with its FocusedIcon. Hosts that
	// highlight focus themselves turn this off.
	DrawFocused bool
	// SafeCanvas enables per-frame recentering of draw coordinates.
	SafeCanvas bool
	// ShowLabels draws Marker.Label above each icon.
	ShowLabels bool
	// Debug enables strict invariant checks and per-frame logging.
	Debug bool
	// Label is the style shared by every marker label.
	Label LabelStyle
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DragScale:   1.5,
		DrawFocused: true,
		SafeCanvas:  true,
		ShowLabels:  true,
		Label:       DefaultLabelStyle(),
	}
}

// ErrInvalidConfig is returned by LoadConfig for out-of-range values.
var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads willowmap.json from dir. Missing keys, or a missing file,
// fall back to DefaultConfig.
func LoadConfig(dir string) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("dragScale", def.DragScale)
	v.SetDefault("drawFocused", def.DrawFocused)
	v.SetDefault("safeCanvas", def.SafeCanvas)
	v.SetDefault("showLabels", def.ShowLabels)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("label.size", def.Label.Size)
	v.SetDefault("label.align", "center")
	v.SetDefault("label.bold", def.Label.Bold)
	v.SetDefault("label.color", "#1a1a1a")
	v.SetDefault("label.offsetY", def.Label.OffsetY)

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return def, fmt.Errorf("read config: %w", err)
		}
	}

	return configFromViper(v)
}

func configFromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		DragScale:   v.GetFloat64("dragScale"),
		DrawFocused: v.GetBool("drawFocused"),
		SafeCanvas:  v.GetBool("safeCanvas"),
		ShowLabels:  v.GetBool("showLabels"),
		Debug:       v.GetBool("debug"),
		Label: LabelStyle{
			Size:    v.GetFloat64("label.size"),
			Bold:    v.GetBool("label.bold"),
			OffsetY: v.GetFloat64("label.offsetY"),
		},
	}
	if !(cfg.DragScale > 0) {
		return cfg, fmt.Errorf("%w: dragScale must be positive, got %v", ErrInvalidConfig, cfg.DragScale)
	}
	if !(cfg.Label.Size > 0) {
		return cfg, fmt.Errorf("%w: label.size must be positive, got %v", ErrInvalidConfig, cfg.Label.Size)
	}

	align, err := parseAlign(v.GetString("label.align"))
	if err != nil {
		return cfg, err
	}
	cfg.Label.Align = align

	col, err := ParseColor(v.GetString("label.color"))
	if err != nil {
		return cfg, fmt.Errorf("label.color: %w", err)
	}
	cfg.Label.Color = col
	return cfg, nil
}

func parseAlign(s string) (TextAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return TextAlignLeft, nil
	case "center", "":
		return TextAlignCenter, nil
	case "right":
		return TextAlignRight, nil
	}
	return TextAlignCenter, fmt.Errorf("%w: label.align %q", ErrInvalidConfig, s)
}

// ParseColor parses a "#rrggbb" hex string into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q", ErrInvalidConfig, hex)
	}
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}
