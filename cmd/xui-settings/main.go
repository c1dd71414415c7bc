package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"xui-panel-client/internal/config"
	"xui-panel-client/internal/constants"
	"xui-panel-client/internal/services"
)

const (
	Name    = "xui-settings"
	Version = "0.1.0"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env holds what every command needs, built once flags are parsed
type env struct {
	cfg    *config.Config
	logger *logrus.Logger
	panel  *services.PanelService
	out    io.Writer
}

func newApp(out, errOut io.Writer) *cli.App {
	e := &env{out: out}

	return &cli.App{
		Name:      Name,
		Version:   Version,
		Usage:     "Read and change the settings of an x-ui panel",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from `FILE`",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Panel URL including the web base path (overrides XUI_HOST)",
			},
			&cli.StringFlag{
				Name:  "username",
				Usage: "Panel username (overrides XUI_USERNAME)",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "Panel password (overrides XUI_PASSWORD)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (overrides LOG_LEVEL)",
			},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c, errOut)
		},
		Commands: []*cli.Command{
			settingsCommand(e),
			inboundsCommand(e),
			clientsCommand(e),
			subCommand(e),
		},
	}
}

func (e *env) setup(c *cli.Context, logOut io.Writer) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}

	if c.IsSet("host") {
		cfg.Panel.Host = c.String("host")
	}
	if c.IsSet("username") {
		cfg.Panel.Username = c.String("username")
	}
	if c.IsSet("password") {
		cfg.Panel.Password = c.String("password")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	e.cfg = cfg
	e.logger = setupLogger(cfg.LogLevel, logOut)
	return nil
}

// service validates the configuration and returns the panel service
func (e *env) service() (*services.PanelService, error) {
	if e.panel != nil {
		return e.panel, nil
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	e.panel = services.NewPanelService(e.cfg.Panel, e.logger)
	return e.panel, nil
}

// setupLogger sets up the logger
func setupLogger(logLevel string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if logLevel == "" {
		logLevel = "info"
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level %s, defaulting to info", logLevel)
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)

	// Set formatter
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: constants.TimestampFormat,
	})

	return logger
}
