package domain

// Machine-readable erase reasons. These are stable strings consumed by
// storage and alerting collaborators; never reword an existing value.
const (
	// Input validation and upstream status.
	EraseMissingFields  = "missing_required_fields"
	EraseUpstreamFailed = "upstream_transaction_failed"
	EraseParsingError   = "parsing_error"

	// Swapper identification.
	EraseSwapperUnidentified = "swapper_identification_failed"

	// Structural gates.
	EraseInvalidAssetCount = "invalid_asset_count"
	EraseInvalidDeltaSigns = "invalid_delta_signs"
	EraseSameToken         = "same_input_output_token"
	EraseDustAmounts       = "dust_amounts_detected"

	// Semantic rejections.
	EraseNoBaseDelta  = "no_base_delta"
	EraseAirdrop      = "both_positive_airdrop"
	EraseBurn         = "both_negative_burn"

	// Suppression and value floor.
	EraseCoreToCore    = "core_to_core_swap_suppressed"
	EraseBelowMinValue = "below_minimum_value_threshold"

	// Delta-oriented pattern variant.
	EraseZeroMovement   = "zero_movement"
	EraseSolOnly        = "sol_only_movement"
	EraseNoWrappedSol   = "no_wrapped_sol_evidence"
)
