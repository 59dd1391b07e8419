package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hh-matcher/internal/filtering"
	"github.com/spigell/hh-matcher/internal/headhunter"
	"github.com/spigell/hh-matcher/internal/matching"
)

const (
	app = "hh-matcher"

	sourceFile       = "file"
	sourcePostgres   = "postgres"
	sourceHeadhunter = "headhunter"
	sourceInline     = "inline"
)

type Config struct {
	Profile     *ProfileConfig    `mapstructure:"profile"`
	Catalog     *CatalogConfig    `mapstructure:"catalog"`
	ExcludeFile string            `mapstructure:"exclude-file"`
	UserAgent   string            `mapstructure:"user-agent"`
	TokenFile   string            `mapstructure:"token-file"`
	Filters     *filtering.Config `mapstructure:"filters"`
	Matching    *MatchingConfig   `mapstructure:"matching"`
}

type ProfileConfig struct {
	Source string `mapstructure:"source" validate:"omitempty,oneof=file headhunter"`
	File   string `mapstructure:"file"`
	// Resume is the title of an hh.ru resume of the token owner.
	Resume string `mapstructure:"resume"`
}

type CatalogConfig struct {
	Source string `mapstructure:"source" validate:"omitempty,oneof=file postgres headhunter inline"`
	File   string `mapstructure:"file"`
	// DatabaseURL may carry a password and is never printed.
	DatabaseURL     string `mapstructure:"database-url" json:"-"`
	DatabaseURLFile string `mapstructure:"database-url-file"`
	// Detailed fetches every found vacancy in full. Only full vacancies
	// have key skills.
	Detailed bool                     `mapstructure:"detailed"`
	Search   *headhunter.SearchParams `mapstructure:"search"`
	// Postings are used by the inline source.
	Postings []matching.Posting `mapstructure:"postings"`
}

type MatchingConfig struct {
	Weights *matching.Weights `mapstructure:"weights"`
	Workers int               `mapstructure:"workers" validate:"gte=0"`
	Tables  *matching.Tables  `mapstructure:"tables"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-matcher ranks job postings against a candidate profile and explains every match",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("catalog.database-url", "HH_MATCHER_DATABASE_URL"); err != nil {
		log.Fatalf("binding HH_MATCHER_DATABASE_URL environment variable: %v", err)
	}

	viper.SetDefault("catalog.detailed", true)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Secrets may live in .env next to the config.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	// Only rank requires a config file. Other commands work with defaults.
	required := rankCmd.CalledAs() != ""
	if !required && tablesCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !required && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(config *Config) {
	if config.Profile == nil {
		config.Profile = &ProfileConfig{}
	}
	if config.Profile.Source == "" {
		config.Profile.Source = sourceFile
	}

	if config.Catalog == nil {
		config.Catalog = &CatalogConfig{}
	}
	if config.Catalog.Source == "" {
		config.Catalog.Source = sourceFile
	}

	if config.Filters == nil {
		config.Filters = &filtering.Config{}
	}
	config.Filters.ExcludeFile = config.ExcludeFile

	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}
	if config.Matching.Weights == nil {
		weights := matching.DefaultWeights()
		config.Matching.Weights = &weights
	}
}

func validateConfig(config *Config) error {
	validate := validator.New()

	for name, section := range map[string]interface{}{
		"profile":  config.Profile,
		"catalog":  config.Catalog,
		"filters":  config.Filters,
		"matching": config.Matching,
	} {
		if err := validate.Struct(section); err != nil {
			return fmt.Errorf("invalid %s section: %w", name, err)
		}
	}

	if err := config.Matching.Weights.Check(); err != nil {
		return fmt.Errorf("invalid matching.weights section: %w", err)
	}

	return nil
}
