package entity

// ConfigKeyInfo describes a single configuration key for the config reference.
type ConfigKeyInfo struct {
	// Key is the full dotted path (e.g., "poll.interval_ms")
	Key string `json:"key"`

	// Type is the Go type name (e.g., "string", "int", "bool")
	Type string `json:"type"`

	Default     string `json:"default"`
	Description string `json:"description"`

	// Values lists accepted values for string enums
	Values []string `json:"values,omitempty"`

	// Range describes numeric constraints (e.g., "1-500", ">= 250")
	Range string `json:"range,omitempty"`

	// Section groups related keys (e.g., "Remote", "Logging")
	Section string `json:"section"`
}
