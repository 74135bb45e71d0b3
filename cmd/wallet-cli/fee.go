package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/urfave/cli/v2"
)

var fee = cli.Command{
	Name:  "fee",
	Usage: "inspect fee options and validate custom fees",
	Subcommands: []*cli.Command{
		{
			Name:      "options",
			Usage:     "list the fee options of a coin",
			ArgsUsage: "<coin>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "level",
					Usage: "the selected fee level",
					Value: "normal",
				},
				&cli.BoolFlag{
					Name:  "speedup",
					Usage: "list options able to speed up a pending tx",
				},
				&cli.Uint64Flag{
					Name:  "fee-per-kb",
					Usage: "the fee per kb paid by the tx to speed up",
				},
			},
			Action: feeOptionsAction,
		},
		{
			Name:      "check",
			Usage:     "validate a custom fee rate, in fee units",
			ArgsUsage: "<coin> <fee_per_unit>",
			Action:    checkFeeAction,
		},
	},
}

func feeOptionsAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "options"}
	}

	query := url.Values{}
	query.Set("network", getNetworkFromState())
	query.Set("level", ctx.String("level"))
	if ctx.Bool("speedup") {
		query.Set("speedup", "true")
		query.Set("custom_fee_per_kb", strconv.FormatUint(ctx.Uint64("fee-per-kb"), 10))
	}

	path := fmt.Sprintf("/v1/fees/%s/options?%s", ctx.Args().First(), query.Encode())
	resp, err := doRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func checkFeeAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, "check"}
	}
	feePerUnit, err := strconv.ParseFloat(ctx.Args().Get(1), 64)
	if err != nil {
		return fmt.Errorf("invalid fee %s", ctx.Args().Get(1))
	}

	path := fmt.Sprintf("/v1/fees/%s/check", ctx.Args().First())
	resp, err := doRequest(http.MethodPost, path, map[string]interface{}{
		"network":      getNetworkFromState(),
		"fee_per_unit": feePerUnit,
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
