package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/urfave/cli/v2"
)

var passwordFlag = cli.StringFlag{
	Name:  "password",
	Usage: "the password encrypting the key",
}

var key = cli.Command{
	Name:  "key",
	Usage: "create, import and inspect keys",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create a new key with one wallet per currency",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:     "currency",
					Usage:    "currency in the form chain:abbreviation or chain:abbreviation:tokenaddress, ie. eth:usdc:0xa0b8...",
					Required: true,
				},
				&passwordFlag,
				&cli.BoolFlag{
					Name:  "native-segwit",
					Usage: "create native segwit btc and ltc wallets",
				},
			},
			Action: createKeyAction,
		},
		{
			Name:  "import",
			Usage: "import a key from mnemonic or extended private key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "mnemonic",
					Usage: "the space separated list of words",
				},
				&cli.StringFlag{
					Name:  "xpriv",
					Usage: "the extended private key",
				},
				&cli.StringFlag{
					Name:  "coin",
					Usage: "the coin of the first wallet",
					Value: "btc",
				},
				&cli.IntFlag{
					Name:  "account",
					Usage: "the account of the first wallet",
				},
				&passwordFlag,
			},
			Action: importKeyAction,
		},
		{
			Name:   "list",
			Usage:  "list all keys",
			Action: listKeysAction,
		},
		{
			Name:      "get",
			Usage:     "get a key by id",
			ArgsUsage: "<key_id>",
			Action:    getKeyAction,
		},
		{
			Name:      "detect-tokens",
			Usage:     "add a wallet for every token held by the evm wallets of the key",
			ArgsUsage: "<key_id>",
			Flags:     []cli.Flag{&passwordFlag},
			Action:    detectTokensAction,
		},
	},
}

func createKeyAction(ctx *cli.Context) error {
	currencies := make([]map[string]interface{}, 0)
	for _, c := range ctx.StringSlice("currency") {
		currency, err := parseCurrency(c)
		if err != nil {
			return err
		}
		currencies = append(currencies, currency)
	}

	resp, err := doRequest(http.MethodPost, "/v1/keys", map[string]interface{}{
		"currencies": currencies,
		"password":   ctx.String("password"),
		"options": map[string]interface{}{
			"network":           getNetworkFromState(),
			"use_native_segwit": ctx.Bool("native-segwit"),
		},
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func importKeyAction(ctx *cli.Context) error {
	mnemonic, xpriv := ctx.String("mnemonic"), ctx.String("xpriv")
	if (mnemonic == "") == (xpriv == "") {
		return &invalidUsageError{ctx, "import"}
	}

	body := map[string]interface{}{
		"coin":     ctx.String("coin"),
		"account":  ctx.Int("account"),
		"network":  getNetworkFromState(),
		"password": ctx.String("password"),
	}
	if mnemonic != "" {
		body["seed_type"] = "mnemonic"
		body["mnemonic"] = mnemonic
	} else {
		body["seed_type"] = "extendedPrivateKey"
		body["extended_private_key"] = xpriv
	}

	resp, err := doRequest(http.MethodPost, "/v1/keys/import", body)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func listKeysAction(ctx *cli.Context) error {
	resp, err := doRequest(http.MethodGet, "/v1/keys", nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func getKeyAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "get"}
	}
	resp, err := doRequest(http.MethodGet, "/v1/keys/"+ctx.Args().First(), nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func detectTokensAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "detect-tokens"}
	}
	path := fmt.Sprintf("/v1/keys/%s/tokens/detect", ctx.Args().First())
	resp, err := doRequest(http.MethodPost, path, map[string]string{
		"password": ctx.String("password"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

// parseCurrency parses chain:abbreviation[:tokenaddress].
func parseCurrency(str string) (map[string]interface{}, error) {
	parts := strings.Split(strings.ToLower(str), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid currency %s", str)
	}
	currency := map[string]interface{}{
		"chain":                 parts[0],
		"currency_abbreviation": parts[1],
	}
	if len(parts) == 3 {
		currency["is_token"] = true
		currency["token_address"] = parts[2]
	}
	return currency, nil
}
