// Package main provides the entry point for the herald CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/herald-sh/herald/internal/audio"
	"github.com/herald-sh/herald/internal/provider"
	"github.com/herald-sh/herald/internal/speech"
	"github.com/herald-sh/herald/internal/store"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string

	// exitCode is set by commands that speak the host's exit-code
	// protocol (herald hook).
	exitCode int

	rootCmd = &cobra.Command{
		Use:   "herald",
		Short: "Lifecycle hooks and spoken notifications for your AI coding assistant",
		Long: paragraph(
			fmt.Sprintf("\nHerald runs your assistant's %s and speaks status updates through a cached text-to-speech pipeline.", keyword("lifecycle hooks")),
		),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
	}
)

// credentials are read from the environment (optionally via a project
// .env file). A missing key means the matching provider is skipped, not
// an error.
type credentials struct {
	ElevenLabsKey string `env:"ELEVENLABS_API_KEY"`
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	Engineer      string `env:"ENGINEER_NAME"`
}

func loadCredentials() credentials {
	// A project .env mirrors the template's contract; absence is normal.
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded project .env")
	}

	creds, err := env.ParseAs[credentials]()
	if err != nil {
		log.Warn("Could not parse environment", "error", err)
	}
	return creds
}

// cacheDir resolves the phrase cache directory: config value first,
// then the user's data dir.
func cacheDir() (string, error) {
	if dir := viper.GetString("cache.dir"); dir != "" {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return "", fmt.Errorf("invalid cache dir %q: %w", dir, err)
		}
		return expanded, nil
	}

	scope := gap.NewScope(gap.User, "herald")
	dir, err := scope.CacheDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve cache directory: %w", err)
	}
	return filepath.Join(dir, "tts-cache"), nil
}

// newChain builds the provider fallback chain in its fixed priority
// order: ElevenLabs, OpenAI, espeak.
func newChain(creds credentials) *provider.Chain {
	return provider.NewChain(
		provider.NewElevenLabs(provider.ElevenLabsConfig{
			APIKey:  creds.ElevenLabsKey,
			VoiceID: viper.GetString("elevenlabs.voice"),
			ModelID: viper.GetString("elevenlabs.model"),
		}),
		provider.NewOpenAI(provider.OpenAIConfig{
			APIKey: creds.OpenAIKey,
			Model:  viper.GetString("openai.model"),
			Voice:  viper.GetString("openai.voice"),
		}),
		provider.NewEspeak(provider.EspeakConfig{
			Voice: viper.GetString("espeak.voice"),
			Speed: viper.GetInt("espeak.speed"),
		}),
	)
}

// newSpeaker wires the full pipeline. With silent set, audio is
// resolved and cached but nothing is played. A non-empty providerName
// restricts the chain to that one provider.
func newSpeaker(creds credentials, silent bool, providerName string) (*speech.Speaker, *store.DiskStore, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.NewDiskStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open phrase cache: %w", err)
	}

	chain := newChain(creds)
	if providerName != "" {
		chain, err = chain.Select(providerName)
		if err != nil {
			return nil, nil, err
		}
	}

	var player audio.Player
	if silent {
		player = audio.NewMockPlayer()
	} else {
		player = audio.NewSystemPlayer()
	}

	return speech.NewSpeaker(st, chain, player), st, nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
	os.Exit(exitCode)
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))

	viper.SetDefault("cache.dir", "")
	viper.SetDefault("elevenlabs.voice", "")
	viper.SetDefault("elevenlabs.model", "")
	viper.SetDefault("openai.model", "")
	viper.SetDefault("openai.voice", "")
	viper.SetDefault("espeak.voice", "")
	viper.SetDefault("espeak.speed", 0)
	viper.SetDefault("hooks.log_dir", "logs")

	rootCmd.AddCommand(speakCmd, hookCmd, cacheCmd, initCmd, mcpCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "herald")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "herald")}, dirs...)
	}

	if c := os.Getenv("HERALD_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("herald")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("herald")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "herald.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
