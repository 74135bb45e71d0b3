package bws

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	copayerRegisteredCode = "COPAYER_REGISTERED"
	clientVersion         = "walletd-1.0.0"
)

type response struct {
	status int
	body   []byte
}

// request performs a request against the wallet service. If creds are
// given, the request is signed with the copayer request key.
// Only transport errors are reported to the circuit breaker, error
// responses are decoded afterwards.
func (s *Service) request(
	ctx context.Context, method, path string, args, result interface{},
	creds *domain.Credentials,
) error {
	body := []byte("{}")
	if args != nil {
		buf, err := json.Marshal(args)
		if err != nil {
			return err
		}
		body = buf
	}
	if method == http.MethodGet {
		body = []byte("{}")
	}

	headers := map[string]string{
		"Content-Type":     "application/json",
		"x-client-version": clientVersion,
	}
	if creds != nil {
		signature, err := signRequest(method, path, body, creds.RequestPrivKey)
		if err != nil {
			return err
		}
		headers["x-identity"] = creds.CopayerID
		headers["x-signature"] = signature
	}

	iResp, err := s.cb.Execute(func() (interface{}, error) {
		var reqBody io.Reader
		if method != http.MethodGet {
			reqBody = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(
			ctx, method, s.baseURL+path, reqBody,
		)
		if err != nil {
			return nil, err
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}
		return s.doRequest(req)
	})
	if err != nil {
		return err
	}

	resp := iResp.(*response)
	if resp.status < 200 || resp.status > 299 {
		return parseError(resp)
	}
	if result == nil || len(resp.body) <= 0 {
		return nil
	}
	return json.Unmarshal(resp.body, result)
}

func (s *Service) doRequest(req *http.Request) (*response, error) {
	rs, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return nil, err
	}
	return &response{rs.StatusCode, bodyBytes}, nil
}

func parseError(resp *response) error {
	bwsErr := &Error{StatusCode: resp.status}
	if err := json.Unmarshal(resp.body, bwsErr); err != nil || bwsErr.Message == "" {
		bwsErr.Message = strings.TrimSpace(string(resp.body))
	}
	if bwsErr.Code == copayerRegisteredCode {
		return fmt.Errorf("%w: %s", ports.ErrCopayerRegistered, bwsErr)
	}
	return bwsErr
}

// signRequest signs the message method|url|body with the hex encoded private
// key and returns the DER encoded signature as hex string.
func signRequest(method, url string, body []byte, privKey string) (string, error) {
	message := strings.Join(
		[]string{strings.ToLower(method), url, string(body)}, "|",
	)
	return signMessage(message, privKey)
}

func signMessage(message, privKey string) (string, error) {
	keyBytes, err := hex.DecodeString(privKey)
	if err != nil {
		return "", err
	}
	key, _ := btcec.PrivKeyFromBytes(keyBytes)
	hash := chainhash.DoubleHashB([]byte(message))
	sig := ecdsa.Sign(key, hash)
	return hex.EncodeToString(sig.Serialize()), nil
}
