package cmd

import (
	"log"

	"github.com/serenity-hq/screener/internal/interview"
	"github.com/serenity-hq/screener/internal/matching"
	"github.com/serenity-hq/screener/internal/scoring"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "screener"
)

type Config struct {
	DataDir   string `mapstructure:"data-dir"`
	Listen    string `mapstructure:"listen"`
	TokenFile string `mapstructure:"token-file"`
	// Seed fixes the controller's variant rotation; 0 means time-based.
	Seed      int64             `mapstructure:"seed"`
	Interview *interview.Config `mapstructure:"interview"`
	Scoring   *scoring.Config   `mapstructure:"scoring"`
	Matching  *matching.Config  `mapstructure:"matching"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "screener is a structured interview and program matching engine for BPO recruiting",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "SCREENER_TOKEN_FILE"); err != nil {
		log.Fatalf("binding SCREENER_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine, the defaults cover everything. An
	// explicitly passed file must parse.
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Listen == "" {
		config.Listen = ":8080"
	}
	if config.DataDir == "" {
		config.DataDir = "./data"
	}

	return config, nil
}

func (c *Config) interviewConfig() interview.Config {
	if c.Interview == nil {
		return interview.DefaultConfig()
	}
	return *c.Interview
}

func (c *Config) scoringConfig() scoring.Config {
	if c.Scoring == nil {
		return scoring.DefaultConfig()
	}
	return *c.Scoring
}

func (c *Config) matchingConfig() matching.Config {
	if c.Matching == nil {
		return matching.DefaultConfig()
	}
	return *c.Matching
}
