package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var webhook = cli.Command{
	Name:  "webhook",
	Usage: "manage the webhooks notified of wallet events",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a webhook registered for some event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "the endpoint where to notify the webhook",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "secret",
					Usage: "the eventual secret to authenticate requests",
				},
				&cli.StringFlag{
					Name:  "event",
					Usage: "the event for which the webhook gets notified: KEY_CREATED, WALLET_ADDED or * for any",
					Value: "*",
				},
			},
			Action: addWebhookAction,
		},
		{
			Name:  "list",
			Usage: "list the webhooks registered for some event, or all if not specified",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "event",
					Usage: "the event to filter webhooks by",
				},
			},
			Action: listWebhooksAction,
		},
		{
			Name:      "remove",
			Usage:     "remove a webhook",
			ArgsUsage: "<webhook_id>",
			Action:    removeWebhookAction,
		},
	},
}

func addWebhookAction(ctx *cli.Context) error {
	resp, err := doRequest(http.MethodPost, "/v1/webhooks", map[string]string{
		"topic":    ctx.String("event"),
		"endpoint": ctx.String("endpoint"),
		"secret":   ctx.String("secret"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func listWebhooksAction(ctx *cli.Context) error {
	path := "/v1/webhooks"
	if event := ctx.String("event"); event != "" {
		path = fmt.Sprintf("%s?topic=%s", path, url.QueryEscape(event))
	}
	resp, err := doRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func removeWebhookAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "remove"}
	}
	if _, err := doRequest(
		http.MethodDelete, "/v1/webhooks/"+ctx.Args().First(), nil,
	); err != nil {
		return err
	}
	fmt.Println("webhook removed")
	return nil
}
