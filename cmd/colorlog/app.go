package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leeforge/colorlog/config"
	"github.com/leeforge/colorlog/errors"
	"github.com/leeforge/colorlog/jcdp"
	"github.com/leeforge/colorlog/json"
	"github.com/leeforge/colorlog/logging"
	"github.com/leeforge/colorlog/printer"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "colorlog",
		Usage: "Colored console logging configured by jcdp.* properties",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Directory holding jcdp.yaml",
				Value: config.DefaultOptions().BasePath,
			},
			&cli.StringFlag{
				Name:  "json",
				Usage: "JSON configuration file applied on top of jcdp.yaml",
			},
			&cli.StringFlag{
				Name:  "level",
				Usage: "Console threshold (ERROR, WARN, INFO, DEBUG, TRACE)",
			},
			&cli.BoolFlag{
				Name:  "timestamp",
				Usage: "Prefix every line with the time",
			},
			&cli.BoolFlag{
				Name:  "file",
				Usage: "Mirror output to a file",
			},
			&cli.StringFlag{
				Name:  "file-path",
				Usage: "File to mirror output to",
			},
			&cli.StringFlag{
				Name:  "file-level",
				Usage: "File threshold",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Set a property as key=value. Can be used multiple times",
			},
		},
		Action: runDemo,
		Commands: []*cli.Command{
			demoCommand(),
			levelsCommand(),
			configCommand(),
			watchCommand(),
		},
	}
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:   "demo",
		Usage:  "Log one line per level",
		Action: runDemo,
	}
}

func levelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "levels",
		Usage: "List levels and whether the current configuration enables them",
		Action: func(ctx context.Context, c *cli.Command) error {
			props, err := loadProperties(c, config.Options{})
			if err != nil {
				return err
			}
			factory := newFactory(c, props)
			defer factory.Close()

			adapter, err := factory.Adapter("levels")
			if err != nil {
				return err
			}
			w := c.Root().Writer
			for _, level := range jcdp.Levels() {
				fmt.Fprintf(w, "%-5s %d %t\n", level, level.Rank(), adapter.Threshold().Enables(level))
			}
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the resolved configuration as JSON",
		Action: func(ctx context.Context, c *cli.Command) error {
			props, err := loadProperties(c, config.Options{})
			if err != nil {
				return err
			}
			cfg := jcdp.LoadConfig(props)
			data, err := json.MarshalIndent(&cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Fprintln(c.Root().Writer, string(data))
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Log a line every time jcdp.yaml changes, until interrupted",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errOut := c.Root().ErrWriter
			if errOut == nil {
				errOut = os.Stderr
			}

			// Every event looks the logger up again so it reflects the new file.
			// A file that no longer builds a logger is reported and watching goes on.
			props, err := loadProperties(c, config.Options{
				WatchAble: true,
				OnChange: func(e fsnotify.Event) {
					logger, err := logging.GetLogger("watch")
					if err != nil {
						fmt.Fprintf(errOut, "reload %s: %v\n", e.Name, err)
						return
					}
					logger.Info("reloaded {} ({})", e.Name, e.Op)
				},
			})
			if err != nil {
				return err
			}
			defer props.Close()

			factory := newFactory(c, props)
			defer factory.Close()
			logging.SetFactory(factory)
			defer logging.SetFactory(nil)

			logger, err := logging.GetLogger("watch")
			if err != nil {
				return err
			}
			logger.Info("watching {}", c.String("config"))
			<-ctx.Done()
			return nil
		},
	}
}

func runDemo(ctx context.Context, c *cli.Command) error {
	props, err := loadProperties(c, config.Options{})
	if err != nil {
		return err
	}
	factory := newFactory(c, props)
	defer factory.Close()
	logging.SetFactory(factory)
	defer logging.SetFactory(nil)

	logger, err := logging.GetLogger("demo")
	if err != nil {
		return err
	}
	ctx = logging.ToContext(ctx, logger)
	logDemo(ctx)
	return nil
}

func logDemo(ctx context.Context) {
	logger := logging.FromContext(ctx)

	logger.Error("- {} -", "error line")
	logger.Warn("- {} -", "warn line")
	logger.Info("- {} -", "info line")
	logger.Debug("- {} -", "debug line")
	logger.Trace("- {} -", "trace line")
	logger.Info("{} of {} steps done in {}", 3, 5, "1.2s")

	cause := errors.New("connection refused")
	logger.ErrorErr("request failed", errors.Wrap(cause, "dial backend"))

	zl := logging.NewZapLogger(logger)
	zl.Warn("disk almost full", zap.Int("percent", 93), zap.String("mount", "/var"))
}

// loadProperties layers, from lowest priority up: jcdp.yaml, the
// environment, --json, the dedicated flags and --set.
func loadProperties(c *cli.Command, opts config.Options) (*config.Properties, error) {
	opts.BasePath = c.String("config")
	if opts.FileName == "" {
		opts.FileName = "jcdp"
	}
	if opts.FileType == "" {
		opts.FileType = "yaml"
	}

	props, err := config.NewProperties(opts)
	if err != nil {
		return nil, fmt.Errorf("loading properties: %w", err)
	}

	if path := c.String("json"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			_ = props.Close()
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		// Only the keys present in the document override lower layers.
		overrides, err := jcdp.ReadProperties(f)
		if err != nil {
			_ = props.Close()
			return nil, err
		}
		for key, value := range overrides {
			props.Set(key, value)
		}
	}

	if c.IsSet("level") {
		props.Set(jcdp.KeyLevel, c.String("level"))
	}
	if c.IsSet("timestamp") {
		props.Set(jcdp.KeyTimestampEnabled, strconv.FormatBool(c.Bool("timestamp")))
	}
	if c.IsSet("file") {
		props.Set(jcdp.KeyFileEnabled, strconv.FormatBool(c.Bool("file")))
	}
	if c.IsSet("file-path") {
		props.Set(jcdp.KeyFilePath, c.String("file-path"))
	}
	if c.IsSet("file-level") {
		props.Set(jcdp.KeyFileLevel, c.String("file-level"))
	}

	for _, kv := range c.StringSlice("set") {
		key, value, err := parseSet(kv)
		if err != nil {
			_ = props.Close()
			return nil, err
		}
		props.Set(key, value)
	}
	return props, nil
}

func parseSet(kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid --set %q, want key=value", kv)
	}
	return key, value, nil
}

func newFactory(c *cli.Command, props jcdp.Properties) *jcdp.Factory {
	return jcdp.NewFactory(props,
		jcdp.WithOutput(writeSyncer(c.Root().Writer, os.Stdout)),
		jcdp.WithErrorOutput(writeSyncer(c.Root().ErrWriter, os.Stderr)),
	)
}

func writeSyncer(w io.Writer, fallback *os.File) zapcore.WriteSyncer {
	if w == nil {
		return printer.NewConsoleSyncer(fallback)
	}
	return printer.NewConsoleSyncer(w)
}
