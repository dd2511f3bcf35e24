package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags collects flag values until the flag set is parsed.
type Flags struct {
	serverAddress NetAddress
	cfg           StructuredConfig
}

// BindClientFlags registers the client flags on fs.
//
// Flags:
//
//	-s/--server        cloud server base URL or host:port
//	--timeout          request timeout (e.g. "10s")
//	--db               local store SQLite file (":memory:" for none)
//	--save-file        game save JSON file
//	--interval         auto-sync timer period
//	--app-version      version reported with cloud saves
//	-c/--config        JSON config file path
func BindClientFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.StringVarP(&f.cfg.Adapter.HTTPAddress, "server", "s", "", "Cloud server base URL or host:port")
	fs.DurationVar(&f.cfg.Adapter.RequestTimeout, "timeout", 0, "Request timeout (e.g. 10s)")
	fs.StringVar(&f.cfg.Storage.Local.Path, "db", "", "Local store SQLite file")
	fs.StringVar(&f.cfg.Game.SaveFile, "save-file", "", "Game save JSON file")
	fs.DurationVar(&f.cfg.Workers.SyncInterval, "interval", 0, "Auto-sync timer period (e.g. 30s)")
	fs.StringVar(&f.cfg.App.Version, "app-version", "", "Version reported with cloud saves")
	fs.StringVarP(&f.cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	return f
}

// BindServerFlags registers the cloud server flags on fs.
//
// Flags:
//
//	-a                        listen address in format [host]:[port]
//	-d                        database DSN
//	--token-sign-key          access token signing key
//	--token-issuer            access token issuer
//	--access-token-duration   access token lifetime (e.g. "15m")
//	--refresh-token-duration  refresh token lifetime (e.g. "720h")
//	--request-timeout         request timeout (e.g. "30s")
//	--max-payload-bytes       largest accepted save body
//	--write-rate              save writes per second per account
//	--write-burst             save write burst per account
//	--secure-cookies          mark auth cookies Secure
//	-c/--config               JSON config file path
func BindServerFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.VarP(&f.serverAddress, "address", "a", "Net address host:port")
	fs.StringVarP(&f.cfg.Storage.DB.DSN, "dsn", "d", "", "Database DSN")
	fs.StringVar(&f.cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&f.cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&f.cfg.App.AccessTokenDuration, "access-token-duration", 0, "Access token duration (e.g. 15m)")
	fs.DurationVar(&f.cfg.App.RefreshTokenDuration, "refresh-token-duration", 0, "Refresh token duration (e.g. 720h)")
	fs.DurationVar(&f.cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.Int64Var(&f.cfg.Server.MaxPayloadBytes, "max-payload-bytes", 0, "Largest accepted save body in bytes")
	fs.Float64Var(&f.cfg.Server.WriteRatePerSecond, "write-rate", 0, "Save writes per second per account")
	fs.IntVar(&f.cfg.Server.WriteBurst, "write-burst", 0, "Save write burst per account")
	fs.BoolVar(&f.cfg.Server.SecureCookies, "secure-cookies", false, "Mark auth cookies Secure")
	fs.StringVarP(&f.cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	return f
}

// Config returns the parsed flag values. Call it after the flag set has been
// parsed.
func (f *Flags) Config() *StructuredConfig {
	if f == nil {
		return nil
	}

	cfg := f.cfg
	cfg.Server.HTTPAddress = f.serverAddress.String()

	return &cfg
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
