package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/JerryMichels/bitpay-app/pkg/httputil"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

var (
	walletCliDataDir = btcutil.AppDataDir("wallet-cli", false)
	statePath        = filepath.Join(walletCliDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "wallet-cli"
	app.Usage = "Command line interface for walletd operators"
	app.Commands = append(
		app.Commands,
		&config,
		&key,
		&wallet,
		&fee,
		&settings,
		&webhook,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(walletCliDataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(walletCliDataDir, os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

// doRequest calls the walletd REST interface and returns the response body.
func doRequest(method, path string, body interface{}) (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	address, ok := state["rpcserver"]
	if !ok {
		return "", errors.New("set rpcserver with `config set rpcserver`")
	}

	var payload string
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		payload = string(buf)
	}

	url := fmt.Sprintf("%s%s", strings.TrimSuffix(address, "/"), path)
	if !strings.HasPrefix(url, "http") {
		url = "http://" + url
	}
	status, resp, err := httputil.NewHTTPRequest(
		method, url, payload, map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("unable to connect to walletd: %w", err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", parseErrorResponse(status, resp)
	}
	return resp, nil
}

func parseErrorResponse(status int, resp string) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(resp), &body); err == nil && body.Error != "" {
		return fmt.Errorf("%s (status %d)", body.Error, status)
	}
	return fmt.Errorf("status %d: %s", status, strings.TrimSpace(resp))
}

func printRespJSON(resp string) {
	if resp == "" {
		return
	}
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(resp), "", "\t"); err != nil {
		fmt.Println(resp)
		return
	}
	fmt.Println(out.String())
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[wallet-cli] %v\n", err)
	}
	os.Exit(1)
}
