package main

import (
	"encoding/json"
	"net/http"

	"github.com/urfave/cli/v2"
)

var settings = cli.Command{
	Name:   "settings",
	Usage:  "print the daemon settings",
	Action: getSettingsAction,
	Subcommands: []*cli.Command{
		{
			Name:  "update",
			Usage: "update the daemon settings",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "push",
					Usage: "subscribe new wallets to push notifications",
				},
				&cli.StringFlag{
					Name:  "email",
					Usage: "subscribe new wallets to email notifications to this address",
				},
				&cli.StringFlag{
					Name:  "language",
					Usage: "the language of notifications",
				},
				&cli.StringFlag{
					Name:  "external-user-id",
					Usage: "the id push notifications are delivered to",
				},
			},
			Action: updateSettingsAction,
		},
	},
}

func getSettingsAction(ctx *cli.Context) error {
	resp, err := doRequest(http.MethodGet, "/v1/settings", nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func updateSettingsAction(ctx *cli.Context) error {
	resp, err := doRequest(http.MethodGet, "/v1/settings", nil)
	if err != nil {
		return err
	}
	current := map[string]interface{}{}
	if err := json.Unmarshal([]byte(resp), &current); err != nil {
		return err
	}

	if ctx.IsSet("push") {
		current["notifications_accepted"] = ctx.Bool("push")
	}
	if ctx.IsSet("email") {
		email := ctx.String("email")
		current["email_notifications"] = map[string]interface{}{
			"accepted": email != "",
			"email":    email,
		}
	}
	if ctx.IsSet("language") {
		current["default_language"] = ctx.String("language")
	}
	if ctx.IsSet("external-user-id") {
		current["external_user_id"] = ctx.String("external-user-id")
	}

	resp, err = doRequest(http.MethodPut, "/v1/settings", current)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
