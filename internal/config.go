package internal

import "time"

type Config struct {
	Host string `env:"HOST,default=0.0.0.0"`
	Port int    `env:"PORT,default=8085"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`

	// Shared secret the auth gate verifies bearer tokens against. The
	// relay never issues tokens; the external authentication service does.
	JWTSecret string `env:"JWT_SECRET,required=true"`
	// Sentinel token presented by federated peer relays instead of a JWT.
	ServerSecret string `env:"SERVER_SECRET,required=true"`

	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=5s"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	PongTimeout          time.Duration `env:"PONG_TIMEOUT,default=60s"`
	MaxMessageSize       int64         `env:"MAX_MESSAGE_SIZE,default=10485760"`
	LimitMessages        *int          `env:"LIMIT_MESSAGES"`

	StatusInterval time.Duration `env:"STATUS_INTERVAL,default=30s"`

	CryptoBaseURL string `env:"MICROSERVICES_CRYPTO,required=true"`
	DataBaseURL   string `env:"MICROSERVICES_DATA,required=true"`
	MailBaseURL   string `env:"MICROSERVICES_NOTIFICATION"`
	SiteBaseURL   string `env:"MICROSERVICES_SITE"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=15s"`

	DebugPort int `env:"DEBUG_PORT,default=8086"`
}
