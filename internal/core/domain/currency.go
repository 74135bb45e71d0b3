package domain

import "strings"

const (
	// MaxAccountIndex is the highest account index tried when the wallet
	// service reports the copayer as already registered for a coin/network.
	MaxAccountIndex = 20

	// WalletConnectContext marks creations started by a WalletConnect session.
	// Those never walk the account index.
	WalletConnectContext = "WalletConnect"

	// NetworkMainnet and NetworkTestnet are the network names understood by
	// the wallet service.
	NetworkMainnet = "livenet"
	NetworkTestnet = "testnet"
	NetworkRegtest = "regtest"
)

// FeeInfo holds the unit used to display fee rates of a coin.
type FeeInfo struct {
	FeeUnit       string
	FeeUnitAmount uint64
	// BlockTime is the average block interval in minutes.
	BlockTime float64
}

// CoinInfo describes a coin natively supported by the wallet.
type CoinInfo struct {
	Coin     string
	Name     string
	Chain    string
	IsEVM    bool
	IsSegwit bool
	FeeInfo  FeeInfo
}

var (
	utxoFee = func(amount uint64, blockTime float64) FeeInfo {
		return FeeInfo{"sat/byte", amount, blockTime}
	}
	evmFee = FeeInfo{"Gwei", 1e9, 0.2}

	// SupportedCoins maps every coin abbreviation to its info.
	SupportedCoins = map[string]CoinInfo{
		"btc":   {"btc", "Bitcoin", "btc", false, true, utxoFee(1e3, 10)},
		"bch":   {"bch", "Bitcoin Cash", "bch", false, false, utxoFee(1e3, 10)},
		"ltc":   {"ltc", "Litecoin", "ltc", false, true, utxoFee(1e3, 2.5)},
		"doge":  {"doge", "Dogecoin", "doge", false, false, utxoFee(1e8, 1)},
		"eth":   {"eth", "Ethereum", "eth", true, false, evmFee},
		"matic": {"matic", "Polygon", "matic", true, false, evmFee},
		"arb":   {"arb", "Arbitrum", "arb", true, false, evmFee},
		"base":  {"base", "Base", "base", true, false, evmFee},
		"op":    {"op", "Optimism", "op", true, false, evmFee},
		"xrp":   {"xrp", "XRP", "xrp", false, false, FeeInfo{"drops", 1e6, 0.05}},
	}

	utxoFeeLevelLabels = map[string]string{
		FeeLevelUrgent:       "Urgent",
		FeeLevelPriority:     "Priority",
		FeeLevelNormal:       "Normal",
		FeeLevelEconomy:      "Economy",
		FeeLevelSuperEconomy: "Super Economy",
		FeeLevelCustom:       "Custom",
	}
	evmFeeLevelLabels = map[string]string{
		FeeLevelUrgent:   "High",
		FeeLevelPriority: "Average",
		FeeLevelNormal:   "Low",
		FeeLevelCustom:   "Custom",
	}

	// EVMAvgConfirmationTime is the expected confirmation delay of EVM fee
	// levels, which do not depend on a block target.
	EVMAvgConfirmationTime = map[string]string{
		FeeLevelNormal:   "within 5 minutes",
		FeeLevelPriority: "within 2 minutes",
		FeeLevelUrgent:   "ASAP",
	}
)

// GetCoinInfo returns the info of the given coin, looked up case insensitive.
func GetCoinInfo(coin string) (CoinInfo, bool) {
	info, ok := SupportedCoins[strings.ToLower(coin)]
	return info, ok
}

// GetFeeInfo returns the fee units for the given chain. Tokens pay fees in
// the native coin of their chain, so chains and coins share the same table.
func GetFeeInfo(chain string) FeeInfo {
	if info, ok := GetCoinInfo(chain); ok {
		return info.FeeInfo
	}
	return SupportedCoins["btc"].FeeInfo
}

// FeeLevelLabels returns the display label of every fee level supported by
// the given chain.
func FeeLevelLabels(chain string) map[string]string {
	if IsEVMChain(chain) {
		return evmFeeLevelLabels
	}
	return utxoFeeLevelLabels
}

func IsEVMChain(chain string) bool {
	info, ok := GetCoinInfo(chain)
	return ok && info.IsEVM
}

func IsSegwitCoin(coin string) bool {
	info, ok := GetCoinInfo(coin)
	return ok && info.IsSegwit
}

// IsERCToken returns whether the currency abbreviation identifies a token
// living on an EVM chain rather than the chain native coin.
func IsERCToken(abbreviation, chain string) bool {
	abbreviation = strings.ToLower(abbreviation)
	if !IsEVMChain(chain) {
		return false
	}
	info, ok := GetCoinInfo(abbreviation)
	return !ok || info.Chain != strings.ToLower(chain)
}
