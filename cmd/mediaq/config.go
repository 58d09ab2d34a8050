package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yacobolo/mediaq"
)

var k = koanf.New(".")

// configSections are the nested blocks of the config file.
var configSections = []string{"environment", "check"}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".mediaq.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Only flags set on the command line
	// are loaded; defaults are applied by the fallback helpers.
	fs := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (MEDIAQ_* prefix)
	if err := k.Load(env.Provider("MEDIAQ_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	MEDIAQ_VERBOSE                  -> verbose
//	MEDIAQ_CHECK_STRICT             -> check.strict
//	MEDIAQ_ENVIRONMENT_DEVICE_WIDTH -> environment.device-width
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "MEDIAQ_"))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// addEnvironmentFlags registers the flags that describe the target
// environment. Zero values mean unknown.
func addEnvironmentFlags(f *pflag.FlagSet) {
	f.String("type", "", "Media type reported by the environment (default screen)")
	f.Int("width", 0, "Viewport width in CSS px")
	f.Int("height", 0, "Viewport height in CSS px")
	f.Int("device-width", 0, "Device width in CSS px")
	f.Int("device-height", 0, "Device height in CSS px")
	f.Float64("resolution", 0, "Device pixel ratio in dppx")
	f.String("orientation", "", "portrait|landscape (derived from width and height when unset)")
	f.String("aspect-ratio", "", "Viewport aspect ratio such as 16/9 (derived when unset)")
	f.String("device-aspect-ratio", "", "Device aspect ratio such as 16/9 (derived when unset)")
	f.Int("color", 0, "Bits per color component (0 = monochrome)")
	f.Float64("font-size", 0, "px per em and rem (default 16)")
}

// buildEnvironment constructs the evaluation environment from koanf state.
func buildEnvironment() (mediaq.Environment, error) {
	e := mediaq.Environment{
		MediaType:    mediaq.MediaType(strings.ToLower(getStringWithFallback("type", "environment.type", ""))),
		Width:        getIntWithFallback("width", "environment.width", 0),
		Height:       getIntWithFallback("height", "environment.height", 0),
		DeviceWidth:  getIntWithFallback("device-width", "environment.device-width", 0),
		DeviceHeight: getIntWithFallback("device-height", "environment.device-height", 0),
		Resolution:   getFloat64WithFallback("resolution", "environment.resolution", 0),
		Color:        getIntWithFallback("color", "environment.color", 0),
		FontSize:     getFloat64WithFallback("font-size", "environment.font-size", 0),
	}

	for name, v := range map[string]int{
		"width":         e.Width,
		"height":        e.Height,
		"device-width":  e.DeviceWidth,
		"device-height": e.DeviceHeight,
		"color":         e.Color,
	} {
		if v < 0 {
			return e, fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	if e.Resolution < 0 || e.FontSize < 0 {
		return e, fmt.Errorf("resolution and font-size must not be negative")
	}

	switch o := mediaq.Orientation(strings.ToLower(getStringWithFallback("orientation", "environment.orientation", ""))); o {
	case "", mediaq.OrientationPortrait, mediaq.OrientationLandscape:
		e.Orientation = o
	default:
		return e, fmt.Errorf("invalid orientation %q: want portrait or landscape", o)
	}

	var err error
	if e.AspectRatio, err = ratioSetting("aspect-ratio", "environment.aspect-ratio"); err != nil {
		return e, err
	}
	if e.DeviceAspectRatio, err = ratioSetting("device-aspect-ratio", "environment.device-aspect-ratio"); err != nil {
		return e, err
	}

	return e, nil
}

func ratioSetting(flagKey, configKey string) (mediaq.Ratio, error) {
	s := getStringWithFallback(flagKey, configKey, "")
	if s == "" {
		return mediaq.Ratio{}, nil
	}
	r, err := mediaq.ParseRatio(s)
	if err != nil {
		return mediaq.Ratio{}, fmt.Errorf("invalid %s %q: %w", flagKey, s, err)
	}
	return r, nil
}

// buildCheckConfig constructs the library's CheckConfig struct from koanf state.
func buildCheckConfig() (mediaq.CheckConfig, error) {
	environment, err := buildEnvironment()
	if err != nil {
		return mediaq.CheckConfig{}, err
	}

	// Handle paths: check flag key first, then config key
	var paths []string
	if p := k.Strings("paths"); len(p) > 0 {
		paths = p
	} else if p := k.Strings("check.paths"); len(p) > 0 {
		paths = p
	} else {
		paths = []string{"**/*.css"}
	}

	return mediaq.CheckConfig{
		Paths:              paths,
		Environment:        environment,
		Strict:             getBoolWithFallback("strict", "check.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues", "check.max-issues", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "check.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		UseColors:          getBoolWithFallback("force-color", "force-color", false),
	}, nil
}

// newLogger returns a development logger in verbose mode and a no-op
// logger otherwise.
func newLogger() *zap.Logger {
	if !getBoolWithFallback("verbose", "verbose", false) {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag key first, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if k.Exists(flagKey) {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) {
		return k.Float64(configKey)
	}
	return defaultVal
}
