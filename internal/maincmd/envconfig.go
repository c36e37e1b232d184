package maincmd

import "github.com/caarlos0/env/v6"

// envConfig holds process-environment-sourced defaults that have no flag
// equivalent, the same role mainer.Parser's EnvPrefix plays for flag-backed
// settings (it is left disabled in Main, see maincmd.go).
type envConfig struct {
	// StackCapacity presizes the VM's value stack, in slots. Tuning this
	// avoids repeated slice growth for scripts known to run deep loops.
	StackCapacity int `env:"LOX_STACK_CAPACITY" envDefault:"0"`
}

// loadEnvConfig reads envConfig from the environment. A malformed value
// leaves the corresponding field at its default rather than failing the
// whole invocation.
func loadEnvConfig() envConfig {
	var cfg envConfig
	_ = env.Parse(&cfg)
	return cfg
}
