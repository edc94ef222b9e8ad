package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/devices"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootLongDescription = `
"sunspecctl" talks to an OutBack AXS Port over Modbus-TCP. It runs the same
discovery as the bridge server and can read, dump and write registers by
their logical names.
`

// cli holds the state shared by all subcommands.
type cli struct {
	v          *viper.Viper
	configPath string
	logLevel   string

	// dial replaces the Modbus dialer, used by tests
	dial devices.Dialer
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(&cli{v: viper.New()})
}

func newRootCommandWith(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sunspecctl",
		Short:         "Inspect and control an OutBack AXS Port",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "bridge configuration file (optional)")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")
	addAXSFlags(flags)
	bindAXSFlags(c.v, flags)

	cmd.AddCommand(
		newProbeCommand(c),
		newDumpCommand(c),
		newGetCommand(c),
		newSetCommand(c),
		newHashPasswordCommand(),
		newSimulateCommand(c),
	)
	return cmd
}

func addAXSFlags(fs *pflag.FlagSet) {
	fs.String("host", "", "AXS Port host")
	fs.Int("port", 502, "AXS Port Modbus-TCP port")
	fs.Int("unit-id", 1, "Modbus unit id")
	fs.Duration("timeout", 0, "per request timeout")
	fs.String("driver", "native", "Modbus driver: native, goburrow or simonvetter")
	fs.Int("base-address", int(sunspec.ChainBaseAddress), "register of the first model header")
	fs.Bool("release-control", false, "hand control back to the AXS Port after discovery")
	fs.StringSlice("profile", nil, "register profile overlays to apply")
}

// bindAXSFlags makes flags override the config file and environment.
func bindAXSFlags(v *viper.Viper, fs *pflag.FlagSet) {
	bindings := map[string]string{
		"axs.host":            "host",
		"axs.port":            "port",
		"axs.unit_id":         "unit-id",
		"axs.timeout":         "timeout",
		"axs.driver":          "driver",
		"axs.base_address":    "base-address",
		"axs.release_control": "release-control",
		"profiles.files":      "profile",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind %s: %v", flag, err))
		}
	}
}

func (c *cli) loadConfig() (*config.Config, error) {
	config.SetDefaults(c.v)
	// Discovery from the CLI does not hand control back unless asked to
	c.v.SetDefault("axs.release_control", false)
	c.v.SetEnvPrefix("SBR")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	if c.configPath != "" {
		c.v.SetConfigFile(c.configPath)
		c.v.SetConfigType("yaml")
		if err := c.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	cfg, err := config.FromViper(c.v)
	if err != nil {
		return nil, err
	}
	if cfg.AXS.Host == "" && c.dial == nil {
		return nil, fmt.Errorf("--host or axs.host is required")
	}
	return cfg, nil
}

func (c *cli) logger() *zap.Logger {
	level, err := zapcore.ParseLevel(c.logLevel)
	if err != nil {
		level = zapcore.WarnLevel
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// connect runs discovery and returns a manager holding the verified session.
func (c *cli) connect(ctx context.Context) (*devices.Manager, *sunspec.Session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var opts []devices.ManagerOption
	if c.dial != nil {
		opts = append(opts, devices.WithDialer(c.dial))
	}
	m, err := devices.NewManager(cfg.AXS, cfg.Profiles, c.logger(), opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := m.Connect(ctx); err != nil {
		return nil, nil, err
	}
	session, err := m.Session()
	if err != nil {
		m.Shutdown()
		return nil, nil, err
	}
	return m, session, nil
}

func portOptions(cmd *cobra.Command) ([]sunspec.AccessOption, error) {
	if !cmd.Flags().Changed("on-port") {
		return nil, nil
	}
	port, err := cmd.Flags().GetInt("on-port")
	if err != nil {
		return nil, err
	}
	return []sunspec.AccessOption{sunspec.OnPort(port)}, nil
}
