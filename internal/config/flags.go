package config

import (
	"flag"
	"io"
)

// Flags are the command-line overrides. Zero values leave the file setting
// untouched.
type Flags struct {
	ConfigPath string
	Debug      bool
	Server     string
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
	Account    string
}

// ParseFlags parses args (without the program name).
func ParseFlags(args []string, output io.Writer) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&f.ConfigPath, "config", "", "path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.StringVar(&f.Server, "server", "", "login server address")
	fs.BoolVar(&f.Windowed, "windowed", false, "run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "window width")
	fs.IntVar(&f.Height, "height", 0, "window height")
	fs.StringVar(&f.Account, "account", "", "prefill the login panel with this account")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply overrides cfg with every flag that was set. Fullscreen wins over
// windowed when both are given.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Server != "" {
		cfg.Network.LoginServer = f.Server
	}
	switch {
	case f.Fullscreen:
		cfg.Graphics.Fullscreen = true
	case f.Windowed:
		cfg.Graphics.Fullscreen = false
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.Account != "" {
		cfg.UI.DefaultAccount = f.Account
	}
}
