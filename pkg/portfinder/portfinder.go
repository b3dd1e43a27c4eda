// Package portfinder picks a TCP port that is free on every local address
// family before the HTTP server binds it.
package portfinder

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"
)

const DefaultMaxAttempts = 20

var ErrNoFreePort = errors.New("no free port found")

// Find tries start, start+1, ... and returns the first port that can be
// bound on both 0.0.0.0 and [::]. A port is only "free" when both binds
// succeed, since another process listening on [::] would otherwise be missed.
func Find(start, maxAttempts int) (int, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	port := start
	for i := 0; i < maxAttempts; i++ {
		if port > 65535 {
			break
		}
		if IsFree(port) {
			return port, nil
		}
		port++
	}
	return 0, fmt.Errorf("%w starting at %d (%d attempts)", ErrNoFreePort, start, maxAttempts)
}

func IsFree(port int) bool {
	return canListen("tcp4", "0.0.0.0", port) && canListen("tcp6", "::", port)
}

func canListen(network, host string, port int) bool {
	ln, err := net.Listen(network, net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		// hosts without an IPv6 stack cannot have a conflicting [::] listener
		if network == "tcp6" && (errors.Is(err, syscall.EAFNOSUPPORT) || errors.Is(err, syscall.EADDRNOTAVAIL)) {
			return true
		}
		return false
	}
	_ = ln.Close()
	return true
}
