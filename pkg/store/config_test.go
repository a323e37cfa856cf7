package store

import (
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/timeline/pkg/view"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := FromViper(v)
	if err != nil {
		t.Fatalf("from viper: %v", err)
	}
	d := DefaultSettings()
	if s.TimelineFile() != d.File || s.HeaderFormat() != "##" || s.DateFormat() != "YYYY-MM-DD" {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.DefaultView() != view.Timeline || !s.ShowJumpToToday() || s.WeekWindowDays() != 7 {
		t.Fatalf("unexpected settings %+v", s)
	}
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}
	if s.SnapshotPath() != filepath.Join(home, ".timeline.snapshots") || s.SnapshotLimit() != 20 {
		t.Fatalf("unexpected snapshot settings %q %d", s.SnapshotPath(), s.SnapshotLimit())
	}
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyTimelineFile, "/tmp/work.md")
	v.Set(KeyHeaderFormat, " ### ")
	v.Set(KeyDateFormat, "")
	v.Set(KeyDefaultView, "weekly")
	v.Set(KeyShowJumpToToday, false)
	v.Set(KeyWeekWindow, "2w")

	s, err := FromViper(v)
	if err != nil {
		t.Fatalf("from viper: %v", err)
	}
	if s.TimelineFile() != "/tmp/work.md" || s.HeaderFormat() != "###" {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.DateFormat() != "YYYY-MM-DD" {
		t.Fatalf("empty date format should fall back, got %q", s.DateFormat())
	}
	if s.DefaultView() != view.Weekly || s.ShowJumpToToday() || s.WeekWindowDays() != 14 {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestFromViperRejectsBadValues(t *testing.T) {
	tests := map[string]func(v *viper.Viper){
		"empty file":   func(v *viper.Viper) { v.Set(KeyTimelineFile, " ") },
		"unknown view": func(v *viper.Viper) { v.Set(KeyDefaultView, "monthly") },
		"bad window":   func(v *viper.Viper) { v.Set(KeyWeekWindow, "soon") },
		"title marker": func(v *viper.Viper) { v.Set(KeyHeaderFormat, "#") },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			mutate(v)
			if _, err := FromViper(v); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
