package util

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/rksok/rpc/common"
	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/ValentinKolb/rksok/rpc/transport/tcp"
	"github.com/ValentinKolb/rksok/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
	// EnvPrefix is the prefix of all environment variables (RKSOK_<FLAG>)
	EnvPrefix = "rksok"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len([]rune(word))

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env files and makes viper read RKSOK_* environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// SetupClientFlags adds the connection flags of the phonebook client to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "endpoint"
	cmd.PersistentFlags().String(key, "localhost:8000", WrapString("The address of the phonebook server (host:port or socket path for unix)"))

	key = "timeout"
	cmd.PersistentFlags().Duration(key, common.DefaultReceiveTimeout, WrapString("The timeout of a single request (connect, write and read each)"))

	key = "max-message-size"
	cmd.PersistentFlags().Int(key, common.DefaultMaxMessageSize, WrapString("The maximum size of a response in bytes"))
}

// GetClientConfig reads the client configuration from viper
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		Transport:      viper.GetString("transport"),
		Endpoint:       viper.GetString("endpoint"),
		Timeout:        viper.GetDuration("timeout"),
		MaxMessageSize: viper.GetInt("max-message-size"),
	}
}

// GetClientTransport creates the client transport named in config
func GetClientTransport(config *common.ClientConfig) (transport.IRPCClientTransport, error) {
	switch config.Transport {
	case "tcp":
		return tcp.NewTCPClientTransport(config.MaxMessageSize), nil
	case "unix":
		return unix.NewUnixClientTransport(config.MaxMessageSize), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", config.Transport)
	}
}

// GetServerTransport creates the server transport with the given name
func GetServerTransport(name string) (transport.IRPCServerTransport, error) {
	switch name {
	case "tcp":
		return tcp.NewTCPServerTransport(), nil
	case "unix":
		return unix.NewUnixServerTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", name)
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
