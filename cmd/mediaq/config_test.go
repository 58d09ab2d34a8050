package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/mediaq"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".mediaq.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
verbose: true
environment:
  type: print
  width: 800
  device-width: 1600
  resolution: 2
check:
  strict: true
  paths:
    - "web/**/*.css"
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "print", k.String("environment.type"))
	assert.Equal(t, 800, k.Int("environment.width"))
	assert.Equal(t, 1600, k.Int("environment.device-width"))
	assert.InDelta(t, 2.0, k.Float64("environment.resolution"), 0.001)
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, []string{"web/**/*.css"}, k.Strings("check.paths"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath("/nonexistent/.mediaq.yaml"))

	config, err := buildCheckConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.css"}, config.Paths)
	assert.Equal(t, mediaq.Environment{}, config.Environment)
	assert.False(t, config.Strict)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.Equal(t, 0, config.MaxSameIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.False(t, config.UseColors)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
environment:
  device-width: 1000
check:
  strict: false
`)
	t.Setenv("MEDIAQ_ENVIRONMENT_DEVICE_WIDTH", "390")
	t.Setenv("MEDIAQ_CHECK_STRICT", "true")
	t.Setenv("MEDIAQ_CHECK_MAX_SAME_ISSUES", "3")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, 390, k.Int("environment.device-width"))
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, 3, k.Int("check.max-same-issues"))
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"MEDIAQ_VERBOSE", "verbose"},
		{"MEDIAQ_FORCE_COLOR", "force-color"},
		{"MEDIAQ_CHECK_STRICT", "check.strict"},
		{"MEDIAQ_CHECK_OUTPUT_FORMAT", "check.output-format"},
		{"MEDIAQ_ENVIRONMENT_WIDTH", "environment.width"},
		{"MEDIAQ_ENVIRONMENT_DEVICE_ASPECT_RATIO", "environment.device-aspect-ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.env))
		})
	}
}

func TestLoadConfig_FlagsOverrideFileOnlyWhenSet(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
environment:
  width: 300
  height: 200
`)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", configPath, "")
	addEnvironmentFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags([]string{"--width=500"}))
	require.NoError(t, loadConfig(cmd, nil))

	env, err := buildEnvironment()
	require.NoError(t, err)
	assert.Equal(t, 500, env.Width)
	// the unset --height flag must not hide the file value
	assert.Equal(t, 200, env.Height)
}

func TestBuildEnvironment_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
environment:
  type: PRINT
  width: 1920
  height: 1080
  resolution: 1.5
  orientation: Portrait
  aspect-ratio: 21/9
  device-aspect-ratio: "16 / 10"
  color: 8
  font-size: 18
`)
	require.NoError(t, loadConfigFromPath(configPath))

	env, err := buildEnvironment()
	require.NoError(t, err)
	assert.Equal(t, mediaq.Environment{
		MediaType:         mediaq.MediaPrint,
		Width:             1920,
		Height:            1080,
		Resolution:        1.5,
		Orientation:       mediaq.OrientationPortrait,
		AspectRatio:       mediaq.Ratio{Num: 21, Den: 9},
		DeviceAspectRatio: mediaq.Ratio{Num: 16, Den: 10},
		Color:             8,
		FontSize:          18,
	}, env)
}

func TestBuildEnvironment_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{"orientation", "environment:\n  orientation: sideways\n", `invalid orientation "sideways"`},
		{"aspect ratio", "environment:\n  aspect-ratio: wide\n", `invalid aspect-ratio "wide"`},
		{"zero ratio term", "environment:\n  device-aspect-ratio: 16/0\n", `invalid device-aspect-ratio "16/0"`},
		{"negative width", "environment:\n  width: -1\n", "width must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKoanf()
			require.NoError(t, loadConfigFromPath(writeConfig(t, tt.config)))

			_, err := buildEnvironment()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildCheckConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
force-color: true
check:
  strict: true
  paths:
    - "src/**/*.css"
  max-issues: 10
  max-same-issues: 2
  print-lines: false
`)
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildCheckConfig()
	require.NoError(t, err)
	assert.True(t, config.Strict)
	assert.Equal(t, []string{"src/**/*.css"}, config.Paths)
	assert.Equal(t, 10, config.MaxIssuesPerLinter)
	assert.Equal(t, 2, config.MaxSameIssues)
	assert.False(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.True(t, config.UseColors)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".mediaq.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "environment:")
	assert.Contains(t, string(data), "check:")

	// the written defaults must load and build cleanly
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".mediaq.yaml"))
	config, err := buildCheckConfig()
	require.NoError(t, err)
	assert.Equal(t, 1280, config.Environment.Width)
	assert.Equal(t, mediaq.MediaScreen, config.Environment.MediaType)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mediaq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

	err := writeDefaultConfig(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, writeDefaultConfig(path, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "environment:")
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))

	require.NoError(t, k.Set("config.key", "from-config"))
	assert.Equal(t, "from-config", getStringWithFallback("flag-key", "config.key", "default"))

	require.NoError(t, k.Set("flag-key", "from-flag"))
	assert.Equal(t, "from-flag", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))

	// an explicit false in the config wins over a true default
	require.NoError(t, k.Set("config.key", false))
	assert.False(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}

func TestGetFloat64WithFallback(t *testing.T) {
	resetKoanf()

	assert.InDelta(t, 3.14, getFloat64WithFallback("flag-key", "config.key", 3.14), 0.01)
}
