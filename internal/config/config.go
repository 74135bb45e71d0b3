package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// ListeningPortKey is the port where the REST interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the default network wallets are created for, one of
	// livenet, testnet or regtest
	NetworkKey = "NETWORK"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// BWSURLKey is the url of the wallet service, ie. https://bws.bitpay.com/bws/api
	BWSURLKey = "BWS_URL"
	// BWSRequestTimeoutKey is the timeout in seconds of every request to the
	// wallet service
	BWSRequestTimeoutKey = "BWS_REQUEST_TIMEOUT"
	// FeeCacheTTLKey is the duration in seconds fee levels are cached for
	FeeCacheTTLKey = "FEE_CACHE_TTL"
	// MoralisURLKey is the base url of the Moralis API used to detect tokens
	MoralisURLKey = "MORALIS_URL"
	// MoralisAPIKeyKey enables token detection when set
	MoralisAPIKeyKey = "MORALIS_API_KEY"
	// MoralisRateLimitKey is the max number of requests per second to Moralis
	MoralisRateLimitKey = "MORALIS_RATE_LIMIT"
	// EVMRPCEndpointsKey is a comma separated list of chain=url pairs used to
	// read token metadata on-chain, ie. eth=https://rpc.ankr.com/eth
	EVMRPCEndpointsKey = "EVM_RPC_ENDPOINTS"
	// CORSOriginsKey is the comma separated list of allowed origins
	CORSOriginsKey = "CORS_ORIGINS"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic walletd statistics
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation       = "db"
	ProfilerLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("walletd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("WALLETD")
	vip.AutomaticEnv()

	vip.SetDefault(ListeningPortKey, 9950)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(NetworkKey, domain.NetworkMainnet)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(BWSURLKey, "https://bws.bitpay.com/bws/api")
	vip.SetDefault(BWSRequestTimeoutKey, 15)
	vip.SetDefault(FeeCacheTTLKey, 60)
	vip.SetDefault(MoralisRateLimitKey, 25)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetStringSlice(key string) []string {
	return splitList(vip.GetString(key))
}

func GetDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetEVMRPCEndpoints returns the chain -> rpc url map parsed from
// EVMRPCEndpointsKey.
func GetEVMRPCEndpoints() map[string]string {
	endpoints, _ := parseEndpoints(vip.GetString(EVMRPCEndpointsKey))
	return endpoints
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	network := GetString(NetworkKey)
	if network != domain.NetworkMainnet && network != domain.NetworkTestnet &&
		network != domain.NetworkRegtest {
		return fmt.Errorf("unknown network %s", network)
	}

	if _, ok := application.SupportedDBType[GetString(DBTypeKey)]; !ok {
		return fmt.Errorf("unsupported db type %s", GetString(DBTypeKey))
	}

	if _, err := url.ParseRequestURI(GetString(BWSURLKey)); err != nil {
		return fmt.Errorf("invalid %s: %s", BWSURLKey, err)
	}

	if GetInt(BWSRequestTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive number of seconds", BWSRequestTimeoutKey)
	}

	if _, err := parseEndpoints(vip.GetString(EVMRPCEndpointsKey)); err != nil {
		return fmt.Errorf("invalid %s: %s", EVMRPCEndpointsKey, err)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func splitList(str string) []string {
	list := make([]string, 0)
	for _, s := range strings.Split(str, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}
	return list
}

func parseEndpoints(str string) (map[string]string, error) {
	endpoints := make(map[string]string)
	for _, pair := range splitList(str) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%s must be in the form chain=url", pair)
		}
		chain := strings.ToLower(strings.TrimSpace(parts[0]))
		if !domain.IsEVMChain(chain) {
			return nil, fmt.Errorf("%s is not an evm chain", chain)
		}
		endpoint := strings.TrimSpace(parts[1])
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return nil, err
		}
		endpoints[chain] = endpoint
	}
	return endpoints, nil
}
