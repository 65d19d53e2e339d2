// Package validate provides network address validation for Tally components.
//
// This file implements bind/endpoint address parsing shared by the stub daemon
// configuration and the CLI. Addresses use "host:port" form; the host part may
// be empty or a wildcard for server binds but must be concrete for client
// endpoints.
package validate

import (
	"fmt"
	"net"
	"strconv"
)

// SplitHostPort parses a "host:port" address and validates the port range.
// Returns the host (possibly empty for wildcard binds) and the numeric port.
func SplitHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in address %q: %w", addr, err)
	}
	if err := ValidatePortRange(port); err != nil {
		return "", 0, fmt.Errorf("invalid port in address %q: %w", addr, err)
	}
	return host, port, nil
}

// ValidateEndpointAddr validates a client-side endpoint address. Unlike server
// binds, wildcard hosts are rejected since there is nothing to connect to at
// 0.0.0.0.
func ValidateEndpointAddr(addr string) error {
	host, _, err := SplitHostPort(addr)
	if err != nil {
		return err
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		return fmt.Errorf("endpoint address %q must name a reachable host", addr)
	}
	return nil
}
