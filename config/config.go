package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	ListenAddr         string
	RPCURL             string
	ChainID            int64
	PrivateKey         string
	RouterAddress      string
	HubSymbol          string
	SettlementCostFLOW string
	LogLevel           string
	DryRun             bool
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".flowswap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("rpc_url", "https://mainnet.evm.nodes.onflow.org/")
	viper.SetDefault("chain_id", 747)
	viper.SetDefault("hub_symbol", "FLOW")
	viper.SetDefault("settlement_cost_flow", "0.0001")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("dry_run", false)

	// Read from environment variables
	viper.SetEnvPrefix("FLOWSWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		ListenAddr:         viper.GetString("listen_addr"),
		RPCURL:             viper.GetString("rpc_url"),
		ChainID:            viper.GetInt64("chain_id"),
		PrivateKey:         viper.GetString("private_key"),
		RouterAddress:      viper.GetString("router_address"),
		HubSymbol:          viper.GetString("hub_symbol"),
		SettlementCostFLOW: viper.GetString("settlement_cost_flow"),
		LogLevel:           viper.GetString("log_level"),
		DryRun:             viper.GetBool("dry_run"),
	}

	// A signing key is only needed when submitting real transactions;
	// dry-run mode serves quotes against a simulated settlement layer.
	if !cfg.DryRun && cfg.PrivateKey == "" {
		return nil, fmt.Errorf("signing key not found. Please set FLOWSWAP_PRIVATE_KEY or create a .flowswap.yaml config file (or enable dry_run)")
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
