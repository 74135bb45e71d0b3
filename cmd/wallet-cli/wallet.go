package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var wallet = cli.Command{
	Name:  "wallet",
	Usage: "add or remove wallets of a key",
	Subcommands: []*cli.Command{
		{
			Name:      "add",
			Usage:     "add a coin or token wallet to a key",
			ArgsUsage: "<key_id>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "currency",
					Usage:    "currency in the form chain:abbreviation[:tokenaddress]",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "parent",
					Usage: "the id of the chain wallet a token wallet is added to",
				},
				&cli.IntFlag{
					Name:  "account",
					Usage: "the account the registration starts from",
				},
				&cli.BoolFlag{
					Name:  "custom-account",
					Usage: "fail instead of moving to the next account if already taken",
				},
				&passwordFlag,
			},
			Action: addWalletAction,
		},
		{
			Name:      "remove",
			Usage:     "remove a wallet, and its token wallets, from a key",
			ArgsUsage: "<key_id> <wallet_id>",
			Action:    removeWalletAction,
		},
	},
}

func addWalletAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "add"}
	}
	currency, err := parseCurrency(ctx.String("currency"))
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/v1/keys/%s/wallets", ctx.Args().First())
	resp, err := doRequest(http.MethodPost, path, map[string]interface{}{
		"currency":             currency,
		"associated_wallet_id": ctx.String("parent"),
		"password":             ctx.String("password"),
		"options": map[string]interface{}{
			"network":        getNetworkFromState(),
			"account":        ctx.Int("account"),
			"custom_account": ctx.Bool("custom-account"),
		},
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func removeWalletAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, "remove"}
	}
	path := fmt.Sprintf("/v1/keys/%s/wallets/%s", ctx.Args().Get(0), ctx.Args().Get(1))
	if _, err := doRequest(http.MethodDelete, path, nil); err != nil {
		return err
	}
	fmt.Println("wallet removed")
	return nil
}
