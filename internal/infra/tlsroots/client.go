package tlsroots

import (
	"crypto/tls"
	"errors"
	"fmt"
)

// ClientFiles names the optional TLS material of a client.
type ClientFiles struct {
	// CAFile is a PEM file or a directory of them, trusted in addition to
	// the system roots.
	CAFile string

	// CertFile and KeyFile hold a client certificate; both or neither.
	CertFile string
	KeyFile  string
}

// IsZero reports whether no TLS material is configured.
func (f ClientFiles) IsZero() bool {
	return f.CAFile == "" && f.CertFile == "" && f.KeyFile == ""
}

// ClientTLSConfig loads f into a client TLS config. It returns nil when f
// is empty so callers keep the default transport.
func ClientTLSConfig(f ClientFiles) (*tls.Config, error) {
	if f.IsZero() {
		return nil, nil
	}
	if (f.CertFile == "") != (f.KeyFile == "") {
		return nil, errors.New("tlsroots: client certificate and key must be set together")
	}

	pool := NewPool()
	if f.CAFile != "" {
		if err := pool.AddPath(f.CAFile); err != nil {
			return nil, err
		}
	}

	cfg := pool.TLSConfig()
	if f.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(f.CertFile, f.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tlsroots: load key pair: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}
