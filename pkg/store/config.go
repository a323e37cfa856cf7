package store

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/timeline/pkg/outline"
	"tableflip.dev/timeline/pkg/timeutil"
	"tableflip.dev/timeline/pkg/view"
)

// Config keys, shared by the config file, TIMELINE_* environment variables
// and the root command flags.
const (
	KeyTimelineFile    = "timelineFile"
	KeyHeaderFormat    = "headerFormat"
	KeyDateFormat      = "dateFormat"
	KeyDefaultView     = "defaultView"
	KeyShowJumpToToday = "showJumpToToday"
	KeyWeekWindow      = "weekWindow"
	KeySnapshotPath    = "snapshotPath"
	KeySnapshotLimit   = "snapshotLimit"
)

// Config is the recognised configuration surface.
type Config interface {
	TimelineFile() string
	HeaderFormat() string
	DateFormat() string
	DefaultView() view.Type
	ShowJumpToToday() bool
	// WeekWindowDays is how many days either side of today the weekly view
	// shows.
	WeekWindowDays() int
	SnapshotPath() string
	SnapshotLimit() int
}

// Settings is the plain Config implementation.
type Settings struct {
	File        string    `json:"timelineFile"`
	Header      string    `json:"headerFormat"`
	Date        string    `json:"dateFormat"`
	View        view.Type `json:"defaultView"`
	JumpToToday bool      `json:"showJumpToToday"`
	WindowDays  int       `json:"weekWindow"`
	Snapshots   string    `json:"snapshotPath"`
	Keep        int       `json:"snapshotLimit"`
}

// DefaultSettings mirrors the defaults registered with viper.
func DefaultSettings() *Settings {
	return &Settings{
		File:        "Timeline.md",
		Header:      outline.DefaultMarker,
		Date:        timeutil.ISOPattern,
		View:        view.Timeline,
		JumpToToday: true,
		WindowDays:  7,
		Snapshots:   "~/.timeline.snapshots",
		Keep:        20,
	}
}

func (s *Settings) TimelineFile() string   { return s.File }
func (s *Settings) HeaderFormat() string   { return s.Header }
func (s *Settings) DateFormat() string     { return s.Date }
func (s *Settings) DefaultView() view.Type { return s.View }
func (s *Settings) ShowJumpToToday() bool  { return s.JumpToToday }
func (s *Settings) WeekWindowDays() int    { return s.WindowDays }
func (s *Settings) SnapshotPath() string   { return s.Snapshots }
func (s *Settings) SnapshotLimit() int     { return s.Keep }

// SetDefaults registers the default value of every key with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault(KeyTimelineFile, d.File)
	v.SetDefault(KeyHeaderFormat, d.Header)
	v.SetDefault(KeyDateFormat, d.Date)
	v.SetDefault(KeyDefaultView, string(d.View))
	v.SetDefault(KeyShowJumpToToday, d.JumpToToday)
	v.SetDefault(KeyWeekWindow, timeutil.DefaultWindow)
	v.SetDefault(KeySnapshotPath, d.Snapshots)
	v.SetDefault(KeySnapshotLimit, d.Keep)
}

// LoadConfig reads .timeline.yaml from $TIMELINE_CONFIG_PATH, the working
// directory or the home directory, layered under TIMELINE_* variables.
func LoadConfig() (Config, error) {
	v := viper.GetViper()
	SetDefaults(v)
	v.SetConfigName(".timeline") // .yaml is implicit
	v.SetEnvPrefix("TIMELINE")
	v.AutomaticEnv()

	if override := os.Getenv("TIMELINE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds validated Settings from the values held by v.
func FromViper(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		File:        strings.TrimSpace(v.GetString(KeyTimelineFile)),
		Header:      strings.TrimSpace(v.GetString(KeyHeaderFormat)),
		Date:        strings.TrimSpace(v.GetString(KeyDateFormat)),
		JumpToToday: v.GetBool(KeyShowJumpToToday),
		Snapshots:   strings.TrimSpace(v.GetString(KeySnapshotPath)),
		Keep:        v.GetInt(KeySnapshotLimit),
	}
	if s.Header == "" {
		s.Header = outline.DefaultMarker
	}
	if s.Date == "" {
		s.Date = timeutil.ISOPattern
	}
	if outline.Classify(outline.Title, s.Header).Kind == outline.KindHeader {
		return nil, fmt.Errorf("store: %s %q collides with the file title %q", KeyHeaderFormat, s.Header, outline.Title)
	}
	if s.File == "" {
		return nil, fmt.Errorf("store: %s must not be empty", KeyTimelineFile)
	}

	typ, err := view.ParseType(v.GetString(KeyDefaultView))
	if err != nil {
		return nil, fmt.Errorf("store: %s: %w", KeyDefaultView, err)
	}
	s.View = typ

	days, _, err := timeutil.ParseWindow(v.GetString(KeyWeekWindow))
	if err != nil {
		return nil, fmt.Errorf("store: %s: %w", KeyWeekWindow, err)
	}
	s.WindowDays = days

	if s.File, err = homedir.Expand(s.File); err != nil {
		return nil, fmt.Errorf("store: expand %s: %w", KeyTimelineFile, err)
	}
	if s.Snapshots != "" {
		if s.Snapshots, err = homedir.Expand(s.Snapshots); err != nil {
			return nil, fmt.Errorf("store: expand %s: %w", KeySnapshotPath, err)
		}
	}
	return s, nil
}
