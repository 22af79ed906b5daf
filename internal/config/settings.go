package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iburimskiy/data-ballpit/internal/normalize"
)

// Duration is a time.Duration that reads "150ms" style strings or a plain
// number of seconds from JSON.
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*d = Duration(x * float64(time.Second))
	case string:
		p, err := parseDuration(x)
		if err != nil {
			return err
		}
		*d = p
	default:
		return fmt.Errorf("config: invalid duration %s", string(b))
	}
	return nil
}

func parseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return Duration(secs * float64(time.Second)), nil
	}
	p, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("config: invalid duration %q", s)
	}
	return Duration(p), nil
}

// Template describes how balls of one kind look.
type Template struct {
	Color     string  `json:"color"` // #rrggbb
	Radius    float64 `json:"radius"`
	Labeled   bool    `json:"labeled"`
	Materials int     `json:"materials"`
}

// Visualization is one clickable dataset playback.
type Visualization struct {
	Title      string   `json:"title"`
	File       string   `json:"file"`
	Lifetime   Duration `json:"lifetime"`
	FadeTarget float64  `json:"fade_target"`
}

// Drop is the single ball spawned by the "Spawn Ball" button.
type Drop struct {
	Template   string   `json:"template"`
	Lifetime   Duration `json:"lifetime"`
	FadeTarget float64  `json:"fade_target"`
}

// Settings holds everything the application reads at startup.
type Settings struct {
	DataDir        string              `json:"data_dir"`
	Policy         string              `json:"policy"`
	LogLevel       string              `json:"log_level"`
	ItemDelay      Duration            `json:"item_delay"`
	StepDelay      Duration            `json:"step_delay"`
	FocusExitDelay Duration            `json:"focus_exit_delay"`
	Sound          bool                `json:"sound"`
	ClickSample    string              `json:"click_sample"`
	Anchor         [3]float64          `json:"anchor"`
	AnchorOffset   [3]float64          `json:"anchor_offset"`
	SeriesTemplate map[string]string   `json:"series_templates"`
	Fallback       string              `json:"fallback_template"`
	Templates      map[string]Template `json:"templates"`
	Visualizations []Visualization     `json:"visualizations"`
	Drop           Drop                `json:"drop"`
}

// Default mirrors the two stock visualizations.
func Default() Settings {
	return Settings{
		DataDir:        "data",
		Policy:         normalize.PerDataset.String(),
		LogLevel:       "info",
		ItemDelay:      Duration(100 * time.Millisecond),
		StepDelay:      Duration(time.Second),
		FocusExitDelay: 0,
		Sound:          true,
		Anchor:         [3]float64{0, -1.5, 0},
		SeriesTemplate: map[string]string{
			"Twitch":  "PurpleBall",
			"YouTube": "RedBall",
			"Mixer":   "BlueBall",
		},
		Templates: map[string]Template{
			"PurpleBall": {Color: "#9146ff", Radius: 1, Labeled: true, Materials: 2},
			"RedBall":    {Color: "#ff3b30", Radius: 1, Labeled: true, Materials: 2},
			"BlueBall":   {Color: "#1fa2ff", Radius: 1, Labeled: true, Materials: 2},
			"GreyBall":   {Color: "#9a9a9a", Radius: 0.8, Labeled: false, Materials: 1},
			"Icosa":      {Color: "#e0e0ff", Radius: 1, Labeled: false, Materials: 2},
		},
		Visualizations: []Visualization{
			{Title: "Avg Daily Viewers", File: "average_daily_viewers.json", Lifetime: Duration(7 * time.Second)},
			{Title: "Avg Daily Channels", File: "average_daily_channels.json", Lifetime: Duration(2 * time.Second)},
		},
		Drop: Drop{Template: "Icosa", Lifetime: Duration(10 * time.Second)},
	}
}

// Load reads a JSON settings file over the defaults. Fields missing from
// the file keep their default values. The series_templates and templates
// maps are replaced as a whole when the file has them, not merged.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return s, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if _, ok := keys["series_templates"]; ok {
		s.SeriesTemplate = nil
	}
	if _, ok := keys["templates"]; ok {
		s.Templates = nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, nil
}

// LoadDotEnv adds the variables of a .env file to the environment without
// replacing ones already set. It reports false when the file does not exist.
func LoadDotEnv(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("config: env file %s: %w", path, err)
	}
	return true, nil
}

// ApplyEnv overrides settings from BALLPIT_* environment variables.
func (s *Settings) ApplyEnv() error {
	s.DataDir = getEnv("BALLPIT_DATA_DIR", s.DataDir)
	s.Policy = getEnv("BALLPIT_POLICY", s.Policy)
	s.LogLevel = getEnv("BALLPIT_LOG_LEVEL", s.LogLevel)
	s.Sound = getEnvBool("BALLPIT_SOUND", s.Sound)
	s.Drop.Template = getEnv("BALLPIT_DROP_TEMPLATE", s.Drop.Template)

	var err error
	if s.ItemDelay, err = getEnvDuration("BALLPIT_ITEM_DELAY", s.ItemDelay); err != nil {
		return err
	}
	if s.StepDelay, err = getEnvDuration("BALLPIT_STEP_DELAY", s.StepDelay); err != nil {
		return err
	}
	return nil
}

// Validate checks values that would otherwise fail later at runtime.
func (s *Settings) Validate() error {
	if _, err := normalize.ParsePolicy(s.Policy); err != nil {
		return err
	}
	if s.ItemDelay < 0 || s.StepDelay < 0 || s.FocusExitDelay < 0 {
		return errors.New("config: delays must not be negative")
	}
	if len(s.Visualizations) == 0 {
		return errors.New("config: no visualizations configured")
	}
	for _, v := range s.Visualizations {
		if v.Title == "" {
			return errors.New("config: visualization without title")
		}
		if v.Lifetime <= 0 {
			return fmt.Errorf("config: %s: lifetime must be positive", v.Title)
		}
		if v.FadeTarget < 0 || v.FadeTarget > 1 {
			return fmt.Errorf("config: %s: fade_target must be within [0,1]", v.Title)
		}
	}
	if s.Drop.Lifetime <= 0 {
		return errors.New("config: drop: lifetime must be positive")
	}
	if s.Drop.FadeTarget < 0 || s.Drop.FadeTarget > 1 {
		return errors.New("config: drop: fade_target must be within [0,1]")
	}
	if _, ok := s.Templates[s.Drop.Template]; !ok {
		return fmt.Errorf("config: drop: unknown template %q", s.Drop.Template)
	}
	for name, t := range s.Templates {
		if _, err := ParseColor(t.Color); err != nil {
			return fmt.Errorf("config: template %s: %w", name, err)
		}
	}
	return nil
}

// PolicyValue returns the parsed normalization policy.
func (s *Settings) PolicyValue() normalize.Policy {
	p, _ := normalize.ParsePolicy(s.Policy)
	return p
}

// DataPath resolves a visualization file against the data directory.
func (s *Settings) DataPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(s.DataDir, file)
}

// ParseColor reads a #rrggbb string.
func ParseColor(s string) ([3]uint8, error) {
	var c [3]uint8
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return c, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid color %q", s)
	}
	return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def Duration) (Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := parseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
