package smtp

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultTimeout bounds each connection attempt and send when the
// configuration does not set one.
const DefaultTimeout = 30 * time.Second

// Config holds SMTP transport configuration. The password is borrowed for
// the duration of a send and never logged.
type Config struct {
	Host     string        `yaml:"server"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	UseTLS   bool          `yaml:"use_tls"` // STARTTLS upgrade after plaintext connect
	UseSSL   bool          `yaml:"use_ssl"` // implicit TLS from the first byte
	Timeout  time.Duration `yaml:"timeout"`
}

// Validate checks that the configuration is complete enough to connect.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: server is required", ErrInvalidConfig)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidConfig)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidConfig)
	}
	return nil
}

// timeout returns the configured timeout or the default.
func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// addr returns the host:port dial address.
func (c Config) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
