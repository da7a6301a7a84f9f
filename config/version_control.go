package config

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executible
	Main_version = "v1.1.0"

	// Modular tools
	Benchmark    = "v1.0.0"
	GEO_Matrix   = "v1.0.0"
	GEO_Compare  = "v1.0.0"
	Probe_Search = "v1.0.0"
	Sanity_check = "v1.0.0"
)
