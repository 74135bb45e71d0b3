package bws

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/JerryMichels/bitpay-app/pkg/circuitbreaker"
	"github.com/btcsuite/btcd/btcec/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	// DefaultRequestTimeout ...
	DefaultRequestTimeout = 15 * time.Second

	pushPlatform    = "server"
	pushPackageName = "walletd"
)

// Service is a client of a Bitcore-like wallet service. It implements
// ports.WalletClient, ports.FeeLevelProvider, ports.TokenInfoProvider and
// ports.Notifier.
type Service struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
}

// NewService returns a client for the wallet service at baseURL, ie.
// https://bws.bitpay.com/bws/api.
func NewService(baseURL string, requestTimeout time.Duration) (*Service, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid wallet service url: %w", err)
	}
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &Service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		cb:      circuitbreaker.NewCircuitBreaker("bws"),
	}, nil
}

func (s *Service) CreateKey(
	_ context.Context, opts domain.KeyOptions,
) (ports.KeyHandle, error) {
	return newKey(opts)
}

func (s *Service) LoadKey(export, password string) (ports.KeyHandle, error) {
	return loadKey(export, password)
}

type createWalletRequest struct {
	Name            string `json:"name"`
	M               int    `json:"m"`
	N               int    `json:"n"`
	PubKey          string `json:"pubKey"`
	Coin            string `json:"coin"`
	Chain           string `json:"chain"`
	Network         string `json:"network"`
	SingleAddress   bool   `json:"singleAddress"`
	UseNativeSegwit bool   `json:"useNativeSegwit,omitempty"`
	SegwitVersion   int    `json:"segwitVersion,omitempty"`
}

type joinWalletRequest struct {
	WalletID         string `json:"walletId"`
	Coin             string `json:"coin"`
	Chain            string `json:"chain"`
	Name             string `json:"name"`
	XPubKey          string `json:"xPubKey"`
	RequestPubKey    string `json:"requestPubKey"`
	CopayerSignature string `json:"copayerSignature"`
}

// CreateWallet creates the wallet and joins it as its first copayer. The
// wallet id is set in creds on success.
func (s *Service) CreateWallet(
	ctx context.Context, creds *domain.Credentials, opts ports.WalletOpts,
) error {
	walletPrivKey, err := privKeyFromHex(creds.WalletPrivKey)
	if err != nil {
		return err
	}
	requestPrivKey, err := privKeyFromHex(creds.RequestPrivKey)
	if err != nil {
		return err
	}

	network := opts.Network
	if network == "" {
		network = creds.Network
	}
	var created struct {
		WalletID string `json:"walletId"`
	}
	if err := s.request(ctx, http.MethodPost, "/v2/wallets/", createWalletRequest{
		Name:            opts.Name,
		M:               opts.M,
		N:               opts.N,
		PubKey:          hex.EncodeToString(walletPrivKey.PubKey().SerializeCompressed()),
		Coin:            creds.Coin,
		Chain:           creds.Chain,
		Network:         network,
		SingleAddress:   opts.SingleAddress,
		UseNativeSegwit: opts.UseNativeSegwit,
		SegwitVersion:   opts.SegwitVersion,
	}, &created, nil); err != nil {
		return err
	}

	requestPubKey := hex.EncodeToString(
		requestPrivKey.PubKey().SerializeCompressed(),
	)
	copayerName := opts.CopayerName
	signature, err := signMessage(
		strings.Join([]string{copayerName, creds.XPubKey, requestPubKey}, "|"),
		creds.WalletPrivKey,
	)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/v2/wallets/%s/copayers/", created.WalletID)
	if err := s.request(ctx, http.MethodPost, path, joinWalletRequest{
		WalletID:         created.WalletID,
		Coin:             creds.Coin,
		Chain:            creds.Chain,
		Name:             copayerName,
		XPubKey:          creds.XPubKey,
		RequestPubKey:    requestPubKey,
		CopayerSignature: signature,
	}, nil, nil); err != nil {
		return err
	}

	creds.WalletID = created.WalletID
	creds.M = opts.M
	creds.N = opts.N
	if creds.WalletName == "" {
		creds.WalletName = opts.Name
	}
	log.Debugf("joined wallet %s as copayer %s", created.WalletID, creds.CopayerID)
	return nil
}

func (s *Service) CreateAddress(
	ctx context.Context, creds *domain.Credentials,
) (string, error) {
	if creds.WalletID == "" {
		return "", ErrMissingWalletID
	}
	var addr struct {
		Address string `json:"address"`
	}
	if err := s.request(
		ctx, http.MethodPost, "/v4/addresses/", map[string]interface{}{}, &addr, creds,
	); err != nil {
		return "", err
	}
	return addr.Address, nil
}

func (s *Service) TokenCredentials(
	creds *domain.Credentials, token domain.Token,
) (*domain.Credentials, error) {
	return tokenCredentials(creds, token)
}

func (s *Service) SavePreferences(
	ctx context.Context, creds *domain.Credentials, prefs domain.Preferences,
) error {
	return s.request(ctx, http.MethodPut, "/v1/preferences/", preferences{
		TokenAddresses:      prefs.TokenAddresses,
		MaticTokenAddresses: prefs.MaticTokenAddresses,
		OpTokenAddresses:    prefs.OpTokenAddresses,
		ArbTokenAddresses:   prefs.ArbTokenAddresses,
		BaseTokenAddresses:  prefs.BaseTokenAddresses,
		Email:               prefs.Email,
		Language:            prefs.Language,
		Unit:                prefs.Unit,
	}, nil, creds)
}

type preferences struct {
	TokenAddresses      []string `json:"tokenAddresses,omitempty"`
	MaticTokenAddresses []string `json:"maticTokenAddresses,omitempty"`
	OpTokenAddresses    []string `json:"opTokenAddresses,omitempty"`
	ArbTokenAddresses   []string `json:"arbTokenAddresses,omitempty"`
	BaseTokenAddresses  []string `json:"baseTokenAddresses,omitempty"`
	Email               string   `json:"email,omitempty"`
	Language            string   `json:"language,omitempty"`
	Unit                string   `json:"unit,omitempty"`
}

func (s *Service) GetFeeLevels(
	ctx context.Context, coin, network string,
) ([]domain.FeeLevel, error) {
	query := url.Values{}
	query.Set("coin", coin)
	query.Set("chain", coin)
	query.Set("network", network)

	var levels []domain.FeeLevel
	if err := s.request(
		ctx, http.MethodGet, "/v2/feelevels/?"+query.Encode(), nil, &levels, nil,
	); err != nil {
		return nil, err
	}
	return levels, nil
}

func (s *Service) GetTokenInfo(
	ctx context.Context, chain, network, address string,
) (*domain.Token, error) {
	var info struct {
		Symbol   string      `json:"symbol"`
		Name     string      `json:"name"`
		Decimals json.Number `json:"decimals"`
	}
	if err := s.request(ctx, http.MethodPost, "/v1/service/token/info", map[string]string{
		"chain":        chain,
		"network":      network,
		"tokenAddress": address,
	}, &info, nil); err != nil {
		return nil, err
	}

	decimals, _ := info.Decimals.Int64()
	return &domain.Token{
		Symbol:   info.Symbol,
		Name:     info.Name,
		Decimals: int(decimals),
		Address:  strings.ToLower(address),
		Chain:    chain,
	}, nil
}

func (s *Service) SubscribePush(
	ctx context.Context, creds *domain.Credentials, externalUserID string,
) error {
	return s.request(
		ctx, http.MethodPost, "/v2/pushnotifications/subscriptions/",
		map[string]string{
			"externalUserId": externalUserID,
			"platform":       pushPlatform,
			"packageName":    pushPackageName,
			"walletId":       creds.WalletID,
		}, nil, creds,
	)
}

func (s *Service) SubscribeEmail(
	ctx context.Context, creds *domain.Credentials, prefs ports.EmailPrefs,
) error {
	return s.request(ctx, http.MethodPut, "/v1/preferences/", preferences{
		Email:    prefs.Email,
		Language: prefs.Language,
		Unit:     prefs.Unit,
	}, nil, creds)
}

func privKeyFromHex(str string) (*btcec.PrivateKey, error) {
	buf, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	key, _ := btcec.PrivKeyFromBytes(buf)
	return key, nil
}
