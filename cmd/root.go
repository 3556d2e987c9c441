package cmd

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai/gemini"
	"github.com/spigell/ats-matcher/internal/enhance"
	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/matching"
	"github.com/spigell/ats-matcher/internal/ner"
)

const (
	app = "ats-matcher"
)

type Config struct {
	Output     *OutputConfig     `mapstructure:"output"`
	NER        *NERConfig        `mapstructure:"ner"`
	AI         *AIConfig         `mapstructure:"ai"`
	HeadHunter *HeadHunterConfig `mapstructure:"headhunter"`
}

type OutputConfig struct {
	Dir             string `mapstructure:"dir"`
	ReportFile      string `mapstructure:"report-file"`
	ScoreFile       string `mapstructure:"score-file"`
	EnhancementFile string `mapstructure:"enhancement-file"`
}

type NERConfig struct {
	// Provider is one of gazetteer, gemini or none.
	Provider            string `mapstructure:"provider"`
	ner.GazetteerConfig `mapstructure:",squash"`
}

type AIConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Provider     string        `mapstructure:"provider"`
	MaxSentences int           `mapstructure:"max-sentences"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type HeadHunterConfig struct {
	UserAgent string `mapstructure:"user-agent"`
	APIURL    string `mapstructure:"api-url"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-matcher scores a resume against a job description the way an applicant tracking system does",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("output-dir", "o", "", "directory for reports and fields files")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output.dir", rootCmd.PersistentFlags().Lookup("output-dir"))
}

func setDefaults() {
	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.report-file", matching.DefaultReportFile)
	viper.SetDefault("output.score-file", matching.DefaultScoreFile)
	viper.SetDefault("output.enhancement-file", enhance.DefaultReportFile)

	viper.SetDefault("ner.provider", nerGazetteer)

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", gemini.Provider)
	viper.SetDefault("ai.max-sentences", 10)
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	viper.SetDefault("headhunter.api-url", "https://api.hh.ru")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was asked for explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// setup builds the logger and loads the configuration. Failures are fatal.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	// run_id ties together the entries of one invocation in aggregated logs.
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}
	if config.NER == nil {
		config.NER = &NERConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.HeadHunter == nil {
		config.HeadHunter = &HeadHunterConfig{}
	}

	logger.Debug("config loaded",
		zap.String("config_file", viper.ConfigFileUsed()),
		zap.String("ner_provider", config.NER.Provider),
		zap.Bool("ai_enabled", config.AI.Enabled),
	)

	return logger, config
}
