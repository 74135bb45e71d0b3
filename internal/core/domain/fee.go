package domain

// Fee levels returned by the wallet service.
const (
	FeeLevelUrgent       = "urgent"
	FeeLevelPriority     = "priority"
	FeeLevelNormal       = "normal"
	FeeLevelEconomy      = "economy"
	FeeLevelSuperEconomy = "superEconomy"
	FeeLevelCustom       = "custom"
)

const (
	// FeeMin is the lowest custom fee rate accepted.
	FeeMin = 0
	// FeeMultiplier bounds custom fee rates to a multiple of the highest
	// recommended one.
	FeeMultiplier = 10
)

// FeeCheckStatus is the outcome of a custom fee validation.
type FeeCheckStatus string

const (
	FeeCheckOK         FeeCheckStatus = "ok"
	FeeCheckRequired   FeeCheckStatus = "required"
	FeeCheckMinError   FeeCheckStatus = "min_error"
	FeeCheckMinWarning FeeCheckStatus = "min_warning"
	FeeCheckMaxWarning FeeCheckStatus = "max_warning"
	FeeCheckMaxError   FeeCheckStatus = "max_error"
)

// FeeLevel is a fee tier as estimated by the wallet service.
type FeeLevel struct {
	Level    string `json:"level"`
	FeePerKb uint64 `json:"feePerKb"`
	NbBlocks int    `json:"nbBlocks"`
}

// FeeOption is a fee level ready to be presented to the user.
type FeeOption struct {
	Level               string `json:"level"`
	UILevel             string `json:"ui_level"`
	FeePerKb            uint64 `json:"fee_per_kb"`
	NbBlocks            int    `json:"nb_blocks"`
	FeeUnit             string `json:"fee_unit"`
	FeePerSatByte       uint64 `json:"fee_per_sat_byte"`
	UIFeePerSatByte     string `json:"ui_fee_per_sat_byte"`
	AvgConfirmationTime string `json:"avg_confirmation_time"`
	Disabled            bool   `json:"disabled,omitempty"`
}

// FeeBounds are the custom fee rate limits, expressed in fee units.
type FeeBounds struct {
	MinRecommended uint64 `json:"min_recommended"`
	MaxRecommended uint64 `json:"max_recommended"`
	MinAllowed     uint64 `json:"min_allowed"`
	MaxAllowed     uint64 `json:"max_allowed"`
}

// FeeCheck is the result of validating a custom fee rate against FeeBounds.
// A blocking check must prevent the fee from being applied.
type FeeCheck struct {
	Status   FeeCheckStatus `json:"status"`
	Blocking bool           `json:"blocking"`
	FeeBounds
}
