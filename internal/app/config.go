package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime wiring options for the CLI and the web server.
type Config struct {
	Home       string        `env:"CROWDFUND_HOME"`                                       // defaults to $HOME/.crowdfund
	RPCURL     string        `env:"CROWDFUND_RPC_URL" envDefault:"http://127.0.0.1:8545"` // node endpoint
	RPCTimeout time.Duration `env:"CROWDFUND_RPC_TIMEOUT" envDefault:"30s"`
	Mnemonic   string        `env:"CROWDFUND_MNEMONIC"` // overrides the keystore
	Accounts   int           `env:"CROWDFUND_ACCOUNTS" envDefault:"10"`
	Factory    string        `env:"CROWDFUND_FACTORY_ADDRESS"` // overrides the deployment record
	Gas        uint64        `env:"CROWDFUND_GAS" envDefault:"3000000"`
	LogLevel   string        `env:"CROWDFUND_LOG_LEVEL" envDefault:"info"`

	HTTP *http.Client // optional; defaults to http.DefaultClient
}

// NodeConfig configures the development node.
type NodeConfig struct {
	Addr     string `env:"CROWDFUND_NODE_ADDR" envDefault:"127.0.0.1:8545"`
	DB       string `env:"CROWDFUND_NODE_DB"` // defaults to $CROWDFUND_HOME/chain.db
	ChainID  uint64 `env:"CROWDFUND_NODE_CHAIN_ID" envDefault:"1337"`
	Mnemonic string `env:"CROWDFUND_NODE_MNEMONIC"` // defaults to ledger.DefaultMnemonic
	Accounts int    `env:"CROWDFUND_NODE_ACCOUNTS" envDefault:"10"`
	Balance  string `env:"CROWDFUND_NODE_BALANCE" envDefault:"100"` // ether per account
	GasPrice string `env:"CROWDFUND_NODE_GAS_PRICE" envDefault:"0"` // wei
	GasLimit uint64 `env:"CROWDFUND_NODE_GAS_LIMIT" envDefault:"6721975"`

	Home     string `env:"CROWDFUND_HOME"`
	LogLevel string `env:"CROWDFUND_LOG_LEVEL" envDefault:"info"`
}

// WebConfig configures the web server. Chain access uses the embedded
// Config.
type WebConfig struct {
	Addr string `env:"CROWDFUND_WEB_ADDR" envDefault:"127.0.0.1:3000"`
	Config
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	home, err := resolveHome(cfg.Home)
	if err != nil {
		return Config{}, err
	}
	cfg.Home = home
	return cfg, nil
}

// LoadNodeConfig reads NodeConfig from the environment.
func LoadNodeConfig() (NodeConfig, error) {
	var cfg NodeConfig
	if err := ParseEnv(&cfg); err != nil {
		return NodeConfig{}, err
	}
	home, err := resolveHome(cfg.Home)
	if err != nil {
		return NodeConfig{}, err
	}
	cfg.Home = home
	if cfg.DB == "" {
		cfg.DB = filepath.Join(home, "chain.db")
	}
	return cfg, nil
}

// LoadWebConfig reads WebConfig from the environment.
func LoadWebConfig() (WebConfig, error) {
	var cfg WebConfig
	if err := ParseEnv(&cfg); err != nil {
		return WebConfig{}, err
	}
	home, err := resolveHome(cfg.Home)
	if err != nil {
		return WebConfig{}, err
	}
	cfg.Home = home
	return cfg, nil
}

func resolveHome(home string) (string, error) {
	if home != "" {
		return home, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(h, ".crowdfund"), nil
}
