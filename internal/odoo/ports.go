package odoo

import (
	"fmt"
	"net"
)

const maxPort = 65535

// FindFreePort returns the first TCP port at or above base with no
// listener, determined by briefly binding 127.0.0.1:port. Binding was
// chosen over parsing the listener table: it needs no external tool and
// narrows (but does not close) the check-then-use window. Two concurrent
// creations can still race each other here; odooctl assumes a single
// operator per host.
func FindFreePort(base int) (int, error) {
	if base < 1 || base > maxPort {
		return 0, fmt.Errorf("port base %d out of range", base)
	}
	for port := base; port <= maxPort; port++ {
		l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err != nil {
			continue
		}
		if err := l.Close(); err != nil {
			return 0, fmt.Errorf("close probe listener: %w", err)
		}
		return port, nil
	}
	return 0, fmt.Errorf("no free port at or above %d", base)
}
