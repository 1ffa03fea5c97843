package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/go-playground/validator/v10"
)

// Defaults shared by the cli and tests
const (
	DefaultReceiveTimeout    = 6 * time.Second
	DefaultValidationTimeout = 6 * time.Second
	DefaultStorageTimeout    = 5 * time.Second
	DefaultMaxMessageSize    = 64 * 1024
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of the phonebook server.
// It is built once by the cli and passed to the server constructor.
type ServerConfig struct {
	// Transport is the socket type to listen on (tcp or unix)
	Transport string `validate:"oneof=tcp unix"`
	// Endpoint is the listen address (host:port or socket path)
	Endpoint string `validate:"required"`

	// ValidationEndpoint is the host:port of the approval service, empty disables approval
	ValidationEndpoint string `validate:"omitempty,hostname_port"`

	// Timeouts
	ReceiveTimeout    time.Duration `validate:"gt=0"`
	ValidationTimeout time.Duration `validate:"gt=0"`
	StorageTimeout    time.Duration `validate:"gt=0"`

	// MaxMessageSize bounds the size of a single request in bytes
	MaxMessageSize int `validate:"gte=64"`

	// AdminEndpoint is the address of the http endpoint for /metrics and /healthz, empty disables it
	AdminEndpoint string `validate:"omitempty,hostname_port"`

	// Logging configuration
	LogLevel string `validate:"oneof=debug info warn warning error"`

	// Storage backend
	Storage store.Config
}

// Validate checks the configuration including the section of the selected storage backend
func (c *ServerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	if section := c.Storage.Section(); section != nil {
		if err := validate.Struct(section); err != nil {
			return fmt.Errorf("invalid %s storage config: %w", c.Storage.Type, err)
		}
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Receive Timeout", c.ReceiveTimeout.String())
	addField("Max Message Size", fmt.Sprintf("%d bytes", c.MaxMessageSize))

	// Approval
	addSection("Validation")
	if c.ValidationEndpoint == "" {
		addField("Endpoint", "disabled (all requests approved)")
	} else {
		addField("Endpoint", c.ValidationEndpoint)
		addField("Timeout", c.ValidationTimeout.String())
	}

	// Admin
	addSection("Admin")
	if c.AdminEndpoint == "" {
		addField("Endpoint", "disabled")
	} else {
		addField("Endpoint", c.AdminEndpoint)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Storage
	c.Storage.Describe(addSection, addField)
	addField("Timeout", c.StorageTimeout.String())

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	// Transport is the socket type of the server (tcp or unix)
	Transport string `validate:"oneof=tcp unix"`
	// Endpoint is the server address (host:port or socket path)
	Endpoint string `validate:"required"`
	// Timeout bounds the whole request (connect, write, read)
	Timeout time.Duration `validate:"gt=0"`
	// MaxMessageSize bounds the size of a response in bytes
	MaxMessageSize int `validate:"gte=64"`
}

// Validate checks the client configuration
func (c *ClientConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}
	return nil
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Timeout", c.Timeout.String())
	addField("Max Message Size", fmt.Sprintf("%d bytes", c.MaxMessageSize))

	return sb.String()
}
