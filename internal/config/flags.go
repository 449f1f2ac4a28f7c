package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-spec OpenAPI document path or URL
//	-base-path prefix stripped before route matching
//	-d database DSN
//	-driver storage driver (memory, sqlite, postgres)
//	-c/-config json file path with configs
//	-token-sign-key JWT verification key (enables strict bearer checking)
//	-token-issuer expected JWT issuer
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress, grpcServerAddress NetAddress
	var specLocation string
	var basePath string
	var databaseDSN string
	var storageDriver string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	flag.StringVar(&specLocation, "spec", "", "OpenAPI document path or URL")
	flag.StringVar(&basePath, "base-path", "", "Base path stripped before route matching")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&storageDriver, "driver", "", "Storage driver (memory, sqlite, postgres)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token verification key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Expected token issuer")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Spec: Spec{
			Location: specLocation,
			BasePath: basePath,
		},
		Storage: Storage{
			Driver: storageDriver,
			DSN:    databaseDSN,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the canonical host:port form, or an empty string when the
// address was never set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses a host:port value. The port must be a positive integer; the
// host part may be empty, which binds all interfaces.
func (a *NetAddress) Set(s string) error {
	host, portRaw, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portRaw)
	if err != nil || port < 1 {
		return errors.New("port number is a positive integer")
	}

	a.Host = host
	a.Port = port

	return nil
}
