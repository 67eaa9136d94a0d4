package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// RELAY_ADDR is the host:port of a running relay. Unset skips the suite.
	RelayAddr string `envconfig:"RELAY_ADDR"`
	// CRYPTO_ADDR points at the crypto collaborator, needed by scenarios
	// that must seal payloads for the relay.
	CryptoAddr string `envconfig:"CRYPTO_ADDR"`
	// RELAY_PUBLIC_KEY is the relay's public key, used to seal the
	// authentication envelope.
	RelayPublicKey string `envconfig:"RELAY_PUBLIC_KEY"`
	// RELAY_SERVER_SECRET is the shared federation secret of the relay
	// under test. Unset skips the federation scenarios.
	ServerSecret string `envconfig:"RELAY_SERVER_SECRET"`
	// E2E_DEBUG_JSON allows dumping full websocket frames as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
