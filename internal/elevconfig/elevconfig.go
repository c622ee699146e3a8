package elevconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var Log = logger.GetLogger()

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DEFAULT_DRIVER_ADDRESS = "localhost:15657"
	DEFAULT_POLL_PERIOD    = 20 * time.Millisecond
	DEFAULT_INIT_TIMEOUT   = 10 * time.Second
	DEFAULT_LOG_LEVEL      = "debug"
	DEFAULT_STATUS_PERIOD  = time.Second

	ENV_IDENTIFIER         = "ELEVATOR_ID"
	ENV_DRIVER_ADDRESS     = "ELEVATOR_DRIVER_ADDRESS"
	ENV_DOOR_OPEN_DURATION = "ELEVATOR_DOOR_OPEN_DURATION"
	ENV_POLL_PERIOD        = "ELEVATOR_POLL_PERIOD"
	ENV_INIT_TIMEOUT       = "ELEVATOR_INIT_TIMEOUT"
	ENV_LOG_LEVEL          = "ELEVATOR_LOG_LEVEL"
	ENV_STATUS_ADDRESS     = "ELEVATOR_STATUS_ADDRESS"
	ENV_STATUS_PERIOD      = "ELEVATOR_STATUS_PERIOD"
)

type Config struct {
	Identifier       string
	DriverAddress    string
	DoorOpenDuration time.Duration
	PollPeriod       time.Duration
	InitTimeout      time.Duration
	LogLevel         string
	// UDP address for status datagrams, empty disables them
	StatusAddress string
	StatusPeriod  time.Duration
}

// fileConfig mirrors Config with durations as strings, so a file can say
// "3s" and a missing key leaves the current value alone.
type fileConfig struct {
	Identifier       *string `yaml:"identifier"`
	DriverAddress    *string `yaml:"driver_address"`
	DoorOpenDuration *string `yaml:"door_open_duration"`
	PollPeriod       *string `yaml:"poll_period"`
	InitTimeout      *string `yaml:"init_timeout"`
	LogLevel         *string `yaml:"log_level"`
	StatusAddress    *string `yaml:"status_address"`
	StatusPeriod     *string `yaml:"status_period"`
}

func Default() Config {
	return Config{
		DriverAddress:    DEFAULT_DRIVER_ADDRESS,
		DoorOpenDuration: elevconsts.DOOR_OPEN_DURATION,
		PollPeriod:       DEFAULT_POLL_PERIOD,
		InitTimeout:      DEFAULT_INIT_TIMEOUT,
		LogLevel:         DEFAULT_LOG_LEVEL,
		StatusPeriod:     DEFAULT_STATUS_PERIOD,
	}
}

// LoadFile overlays the keys present in the YAML file at path.
func (c *Config) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(file).Decode(&fc); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidConfig, path, err)
	}

	values := map[string]*string{
		ENV_IDENTIFIER:         fc.Identifier,
		ENV_DRIVER_ADDRESS:     fc.DriverAddress,
		ENV_DOOR_OPEN_DURATION: fc.DoorOpenDuration,
		ENV_POLL_PERIOD:        fc.PollPeriod,
		ENV_INIT_TIMEOUT:       fc.InitTimeout,
		ENV_LOG_LEVEL:          fc.LogLevel,
		ENV_STATUS_ADDRESS:     fc.StatusAddress,
		ENV_STATUS_PERIOD:      fc.StatusPeriod,
	}
	for _, key := range envKeys {
		value := values[key]
		if value == nil {
			continue
		}
		if err := c.set(key, *value); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	Log.Info().Msgf("Loaded configuration from %s", path)
	return nil
}

// LoadEnv overlays the ELEVATOR_* variables, first from the dotenv file at
// envPath (skipped when empty) and then from the process environment.
func (c *Config) LoadEnv(envPath string) error {
	if envPath != "" {
		envFile, err := godotenv.Read(envPath)
		if err != nil {
			return fmt.Errorf("read env file: %w", err)
		}
		if err := c.apply(envFile); err != nil {
			return fmt.Errorf("%s: %w", envPath, err)
		}
		Log.Info().Msgf("Loaded environment file %s", envPath)
	}

	process := make(map[string]string)
	for _, key := range envKeys {
		if value, ok := os.LookupEnv(key); ok {
			process[key] = value
		}
	}
	return c.apply(process)
}

var envKeys = []string{
	ENV_IDENTIFIER,
	ENV_DRIVER_ADDRESS,
	ENV_DOOR_OPEN_DURATION,
	ENV_POLL_PERIOD,
	ENV_INIT_TIMEOUT,
	ENV_LOG_LEVEL,
	ENV_STATUS_ADDRESS,
	ENV_STATUS_PERIOD,
}

func (c *Config) apply(values map[string]string) error {
	for _, key := range envKeys {
		value, ok := values[key]
		if !ok {
			continue
		}
		if err := c.set(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) set(key string, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case ENV_IDENTIFIER:
		c.Identifier = value
	case ENV_DRIVER_ADDRESS:
		c.DriverAddress = value
	case ENV_LOG_LEVEL:
		c.LogLevel = value
	case ENV_STATUS_ADDRESS:
		c.StatusAddress = value
	case ENV_DOOR_OPEN_DURATION, ENV_POLL_PERIOD, ENV_INIT_TIMEOUT, ENV_STATUS_PERIOD:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, value)
		}
		switch key {
		case ENV_DOOR_OPEN_DURATION:
			c.DoorOpenDuration = d
		case ENV_POLL_PERIOD:
			c.PollPeriod = d
		case ENV_INIT_TIMEOUT:
			c.InitTimeout = d
		case ENV_STATUS_PERIOD:
			c.StatusPeriod = d
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.DoorOpenDuration <= 0:
		return fmt.Errorf("%w: door open duration %v must be positive", ErrInvalidConfig, c.DoorOpenDuration)
	case c.PollPeriod <= 0:
		return fmt.Errorf("%w: poll period %v must be positive", ErrInvalidConfig, c.PollPeriod)
	case c.InitTimeout <= 0:
		return fmt.Errorf("%w: init timeout %v must be positive", ErrInvalidConfig, c.InitTimeout)
	case c.PollPeriod >= c.DoorOpenDuration:
		return fmt.Errorf("%w: poll period %v must be shorter than the door open duration %v", ErrInvalidConfig, c.PollPeriod, c.DoorOpenDuration)
	case c.DriverAddress == "":
		return fmt.Errorf("%w: driver address is empty", ErrInvalidConfig)
	case c.StatusAddress != "" && c.StatusPeriod <= 0:
		return fmt.Errorf("%w: status period %v must be positive", ErrInvalidConfig, c.StatusPeriod)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment, and validates the result. Flags are applied by the
// caller before it calls Validate again.
func Load(configPath string, envPath string) (Config, error) {
	config := Default()
	if configPath != "" {
		if err := config.LoadFile(configPath); err != nil {
			return config, err
		}
	}
	if err := config.LoadEnv(envPath); err != nil {
		return config, err
	}
	return config, config.Validate()
}

func (c Config) String() string {
	return fmt.Sprintf("id=%q driver=%s door=%v poll=%v init=%v log=%s status=%q every %v",
		c.Identifier, c.DriverAddress, c.DoorOpenDuration, c.PollPeriod, c.InitTimeout, c.LogLevel, c.StatusAddress, c.StatusPeriod)
}
