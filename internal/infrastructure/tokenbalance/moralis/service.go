package moralis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/JerryMichels/bitpay-app/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

const (
	// DefaultBaseURL ...
	DefaultBaseURL = "https://deep-index.moralis.io/api/v2.2"
	// DefaultRequestsPerSecond is the rate limit of the free plan.
	DefaultRequestsPerSecond = 25

	requestTimeout = 15 * time.Second
)

var (
	// ErrUnsupportedChain ...
	ErrUnsupportedChain = errors.New("chain is not supported by moralis")

	chainIDs = map[string]map[string]string{
		domain.NetworkMainnet: {
			"eth":   "0x1",
			"matic": "0x89",
			"arb":   "0xa4b1",
			"base":  "0x2105",
			"op":    "0xa",
		},
		domain.NetworkTestnet: {
			"eth":   "0xaa36a7",
			"matic": "0x13882",
			"arb":   "0x66eee",
			"base":  "0x14a34",
			"op":    "0xaa37dc",
		},
	}
)

type tokenBalance struct {
	TokenAddress string `json:"token_address"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Decimals     int    `json:"decimals"`
	Balance      string `json:"balance"`
	PossibleSpam bool   `json:"possible_spam"`
}

// Service lists the ERC20 balances of an address through the Moralis web3
// data API. It implements ports.TokenBalanceProvider.
type Service struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter ratelimit.Limiter
	cb      *gobreaker.CircuitBreaker
}

// NewService returns a new Moralis client. An empty baseURL defaults to
// DefaultBaseURL.
func NewService(baseURL, apiKey string, requestsPerSecond int) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing moralis api key")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid moralis url: %w", err)
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	return &Service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
		limiter: ratelimit.New(requestsPerSecond),
		cb:      circuitbreaker.NewCircuitBreaker("moralis"),
	}, nil
}

func (s *Service) GetERC20Balances(
	ctx context.Context, chain, network, address string,
) ([]ports.TokenBalance, error) {
	chain = strings.ToLower(chain)
	ids, ok := chainIDs[network]
	if !ok {
		ids = chainIDs[domain.NetworkTestnet]
	}
	chainID, ok := ids[chain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
	}

	endpoint := fmt.Sprintf(
		"%s/%s/erc20?chain=%s", s.baseURL, url.PathEscape(address), chainID,
	)

	s.limiter.Take()
	iBody, err := s.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-API-Key", s.apiKey)

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("moralis: status %d: %s", resp.StatusCode, body)
		}
		if resp.StatusCode != http.StatusOK {
			return &clientError{resp.StatusCode, string(body)}, nil
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	if cErr, ok := iBody.(*clientError); ok {
		return nil, cErr
	}

	var balances []tokenBalance
	if err := json.Unmarshal(iBody.([]byte), &balances); err != nil {
		return nil, err
	}

	res := make([]ports.TokenBalance, 0, len(balances))
	for _, b := range balances {
		res = append(res, ports.TokenBalance{
			Token: domain.Token{
				Symbol:   b.Symbol,
				Name:     b.Name,
				Decimals: b.Decimals,
				Address:  strings.ToLower(b.TokenAddress),
				Chain:    chain,
			},
			Balance:      b.Balance,
			PossibleSpam: b.PossibleSpam,
		})
	}
	return res, nil
}

type clientError struct {
	status int
	body   string
}

func (e *clientError) Error() string {
	return fmt.Sprintf("moralis: status %d: %s", e.status, strings.TrimSpace(e.body))
}
