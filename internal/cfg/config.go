package cfg

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override, e.g.
// GENCORPUS_REPETITION_THRESHOLD or GENCORPUS_LOGGING_SEVERITY.
const EnvPrefix = "GENCORPUS"

// Viper keys.
const (
	OutputKey              = "output"
	SizeKey                = "size"
	RepetitionThresholdKey = "repetition-threshold"
	ParallelismKey         = "parallelism"
	WordsKey               = "words"
	ForceKey               = "force"
	LogSeverityKey         = "logging.severity"
	LogFormatKey           = "logging.format"
	LogFilePathKey         = "logging.file-path"
	LogMaxFileSizeKey      = "logging.log-rotate.max-file-size-mb"
	LogBackupCountKey      = "logging.log-rotate.backup-file-count"
)

type LogRotateLoggingConfig struct {
	MaxFileSizeMb   int `yaml:"max-file-size-mb"`
	BackupFileCount int `yaml:"backup-file-count"`
}

type LoggingConfig struct {
	Severity  string                 `yaml:"severity"`
	Format    string                 `yaml:"format"`
	FilePath  string                 `yaml:"file-path"`
	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`
}

type Config struct {
	Output              string        `yaml:"output"`
	Size                string        `yaml:"size"`
	RepetitionThreshold int           `yaml:"repetition-threshold"`
	Parallelism         int           `yaml:"parallelism"`
	Words               string        `yaml:"words"`
	Force               bool          `yaml:"force"`
	Logging             LoggingConfig `yaml:"logging"`
}

// BindFlags declares every flag on flagSet and binds it to its key in v.
func BindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.StringP("output", "o", "", "Path to the output file (required).")
	flagSet.StringP("size", "s", "", "Target size: a megabyte count (e.g. 20) or a suffixed size (e.g. 512K). Must be below 100MB; defaults to 100MB.")
	flagSet.IntP("repetition-threshold", "r", 10, "Percentage of lines that repeat an earlier phrase, between 1 and 99.")
	flagSet.IntP("parallelism", "p", 0, "Number of concurrent producers. 0 means one per CPU.")
	flagSet.StringP("words", "w", "", "Word list file, one word per line. Empty uses the built-in list.")
	flagSet.BoolP("force", "f", false, "Overwrite an existing output file without asking.")
	flagSet.String("log-severity", "INFO", "Minimum log severity: TRACE, DEBUG, INFO, WARNING, ERROR or OFF.")
	flagSet.String("log-format", "text", "Log format: text or json.")
	flagSet.String("log-file", "", "Write logs to this file instead of stderr.")
	flagSet.Int("log-rotate-max-file-size-mb", 512, "Rotate the log file once it reaches this size.")
	flagSet.Int("log-rotate-backup-file-count", 10, "Number of rotated log files to keep; 0 keeps all.")

	bindings := map[string]string{
		OutputKey:              "output",
		SizeKey:                "size",
		RepetitionThresholdKey: "repetition-threshold",
		ParallelismKey:         "parallelism",
		WordsKey:               "words",
		ForceKey:               "force",
		LogSeverityKey:         "log-severity",
		LogFormatKey:           "log-format",
		LogFilePathKey:         "log-file",
		LogMaxFileSizeKey:      "log-rotate-max-file-size-mb",
		LogBackupCountKey:      "log-rotate-backup-file-count",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flagSet.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load resolves the configuration from flags, GENCORPUS_* environment
// variables and, if configFile is set, a YAML file. Flags that were set
// explicitly win over the environment, which wins over the file.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error while reading the config file: %w", err)
		}
	}

	var c Config
	err := v.Unmarshal(&c, func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.TagName = "yaml"
	})
	if err != nil {
		return nil, fmt.Errorf("error while unmarshaling the config: %w", err)
	}
	return &c, nil
}
