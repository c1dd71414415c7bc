package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"xui-panel-client/internal/constants"
	"xui-panel-client/internal/helpers"
	"xui-panel-client/internal/models"
	"xui-panel-client/internal/notify"
	"xui-panel-client/internal/services"
)

func settingsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Manage panel settings",
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print all panel settings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output format: json or yaml",
						Value:   "json",
					},
				},
				Action: func(c *cli.Context) error {
					panel, err := e.service()
					if err != nil {
						return err
					}
					settings, err := panel.GetSettings(c.Context)
					if err != nil {
						return err
					}

					var text string
					switch c.String("output") {
					case "json":
						text, err = helpers.FormatSettingsJSON(settings)
					case "yaml":
						text, err = helpers.FormatSettingsYAML(settings)
					default:
						return fmt.Errorf("unknown output format %q", c.String("output"))
					}
					if err != nil {
						return err
					}
					_, err = fmt.Fprint(e.out, text)
					return err
				},
			},
			{
				Name:      "set",
				Usage:     "Change panel settings",
				ArgsUsage: "KEY=VALUE...",
				Action: func(c *cli.Context) error {
					panel, err := e.service()
					if err != nil {
						return err
					}
					settings, err := panel.ApplySettings(c.Context, c.Args().Slice())
					if err != nil {
						return err
					}
					text, err := helpers.FormatSettingsJSON(settings)
					if err != nil {
						return err
					}
					_, err = fmt.Fprint(e.out, text)
					return err
				},
			},
			{
				Name:  "restart",
				Usage: "Restart the panel",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "notify",
						Usage: "Announce the restart through the panel's Telegram bot",
					},
				},
				Action: func(c *cli.Context) error {
					panel, err := e.service()
					if err != nil {
						return err
					}
					if err := panel.RestartPanel(c.Context); err != nil {
						return err
					}
					fmt.Fprintln(e.out, "panel restarted")

					if !c.Bool("notify") {
						return nil
					}
					return e.announceRestart(c, panel)
				},
			},
		},
	}
}

func (e *env) announceRestart(c *cli.Context, panel *services.PanelService) error {
	settings, err := panel.GetSettings(c.Context)
	if err != nil {
		return err
	}

	notifier, err := notify.NewTelegramNotifier(settings, e.logger)
	if errors.Is(err, notify.ErrDisabled) {
		e.logger.Warn("Telegram bot is disabled on the panel, skipping notification")
		return nil
	}
	if err != nil {
		return err
	}

	return notifier.Notify(fmt.Sprintf("Panel %s was restarted", e.cfg.Panel.Host))
}

func inboundsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "inbounds",
		Usage: "Inspect panel inbounds",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print the traffic report of every inbound",
				Action: func(c *cli.Context) error {
					panel, err := e.service()
					if err != nil {
						return err
					}
					inbounds, err := panel.GetInbounds(c.Context)
					if err != nil {
						return err
					}
					_, err = fmt.Fprint(e.out, helpers.FormatNetworkUsageReport(inbounds))
					return err
				},
			},
			{
				Name:      "show",
				Usage:     "Print a single inbound",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := parseInboundID(c.Args().First())
					if err != nil {
						return err
					}
					panel, err := e.service()
					if err != nil {
						return err
					}
					inbound, err := panel.GetInbound(c.Context, id)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(e.out, inbound.String())
					return err
				},
			},
		},
	}
}

func subCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "sub",
		Usage: "Subscription links",
		Subcommands: []*cli.Command{
			{
				Name:      "link",
				Usage:     "Print the subscription link of a client",
				ArgsUsage: "SUBID",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Link to the JSON subscription",
					},
					&cli.StringFlag{
						Name:  "qr",
						Usage: "Write a PNG QR code of the link to `FILE`",
					},
					&cli.IntFlag{
						Name:  "qr-size",
						Usage: "QR code width in pixels",
						Value: constants.QRCodeSize,
					},
					&cli.StringFlag{
						Name:  "qr-level",
						Usage: "QR error recovery: low, medium, high or highest",
						Value: "medium",
					},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one SUBID")
					}

					panel, err := e.service()
					if err != nil {
						return err
					}
					link, err := panel.GetSubscriptionURL(c.Context, c.Args().First(), c.Bool("json"))
					if err != nil {
						return err
					}
					fmt.Fprintln(e.out, link)

					if file := c.String("qr"); file != "" {
						png, err := services.NewQRService(e.logger).GenerateQR(link, services.QROptions{
							Size:  c.Int("qr-size"),
							Level: c.String("qr-level"),
						})
						if err != nil {
							return err
						}
						return os.WriteFile(file, png, 0644)
					}
					return nil
				},
			},
		},
	}
}

func clientsCommand(e *env) *cli.Command {
	inboundFlag := func() cli.Flag {
		return &cli.IntFlag{
			Name:     "inbound",
			Usage:    "Inbound `ID`",
			Required: true,
		}
	}

	return &cli.Command{
		Name:  "clients",
		Usage: "Manage inbound clients",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a client with fresh credentials to an inbound",
				ArgsUsage: "EMAIL",
				Flags: []cli.Flag{
					inboundFlag(),
					&cli.Int64Flag{
						Name:  "total-gb",
						Usage: "Traffic limit in GB, 0 means unlimited",
					},
					&cli.IntFlag{
						Name:  "expiry-days",
						Usage: "Days until the client expires, 0 means never",
					},
					&cli.IntFlag{
						Name:  "limit-ip",
						Usage: "Maximum simultaneous IPs, 0 means unlimited",
					},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one EMAIL")
					}
					if c.Int64("total-gb") < 0 || c.Int("expiry-days") < 0 || c.Int("limit-ip") < 0 {
						return fmt.Errorf("limits must not be negative")
					}

					panel, err := e.service()
					if err != nil {
						return err
					}
					client, err := panel.AddClient(c.Context, c.Int("inbound"), c.Args().First(), func(client *models.Client) {
						client.TotalGB = c.Int64("total-gb") * constants.BytesInGB
						client.LimitIP = c.Int("limit-ip")
						if days := c.Int("expiry-days"); days > 0 {
							client.ExpiryTime = time.Now().Add(time.Duration(days) * 24 * time.Hour).UnixMilli()
						}
					})
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(e.out, client.String())
					return err
				},
			},
			{
				Name:      "reset",
				Usage:     "Reset the traffic counters of a client",
				ArgsUsage: "EMAIL",
				Flags:     []cli.Flag{inboundFlag()},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one EMAIL")
					}
					panel, err := e.service()
					if err != nil {
						return err
					}
					if err := panel.ResetClientTraffic(c.Context, c.Int("inbound"), c.Args().First()); err != nil {
						return err
					}
					_, err = fmt.Fprintf(e.out, "traffic of %s reset\n", c.Args().First())
					return err
				},
			},
		},
	}
}

func parseInboundID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid inbound id %q", arg)
	}
	return id, nil
}
