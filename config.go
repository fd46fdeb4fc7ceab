package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const debugEnv = "PTDEBUG"

type settings struct {
	debug bool
}

func loadSettings() settings {
	v := viper.New()
	// BindEnv only fails without a key.
	_ = v.BindEnv("debug", debugEnv)
	return settings{debug: truthy(v.GetString("debug"))}
}

// truthy follows Perl: unset, empty and "0" are false.
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "0"
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "check-tool").Logger()
}
