package options

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/timeline/pkg/store"
)

// RootOptions are the persistent flags shared by every command.
type RootOptions struct {
	Verbose bool
	LogFile string

	logFile *os.File
}

// AddRootArgs registers the persistent flags and binds the config ones to
// viper so they override the config file and environment.
func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	f := cmd.PersistentFlags()
	f.String("file", "", "Timeline file to use. Overrides "+store.KeyTimelineFile+".")
	f.String("header", "", "Day header marker, e.g. \"##\". Overrides "+store.KeyHeaderFormat+".")
	f.String("date-format", "", "Preferred header date pattern, e.g. \"YYYY-MM-DD\". Overrides "+store.KeyDateFormat+".")
	f.BoolVarP(&o.Verbose, "verbose", "V", false, "Log debug output to stderr.")
	f.StringVar(&o.LogFile, "log-file", "", "Append structured logs to this file.")

	_ = viper.BindPFlag(store.KeyTimelineFile, f.Lookup("file"))
	_ = viper.BindPFlag(store.KeyHeaderFormat, f.Lookup("header"))
	_ = viper.BindPFlag(store.KeyDateFormat, f.Lookup("date-format"))
}

// Logger builds the process logger. Logging is off unless asked for.
func (o *RootOptions) Logger() (*slog.Logger, error) {
	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		o.logFile = f
		return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), nil
	}
	if o.Verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})), nil
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
}

// Close releases the log file, if any.
func (o *RootOptions) Close() error {
	if o.logFile == nil {
		return nil
	}
	return o.logFile.Close()
}
