// Copyright (C) 2017-2025 Steve Merrony
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
//

// Package transport provides the reliable ordered byte stream a tn3270
// session runs over: a plain TCP connection, or one wrapped in TLS with a
// configurable security level and verification mode.
//
// Grounded on the teacher's telnet.go dialer (net.DialTimeout, a fixed
// dial timeout, bufio-wrapped reader/writer) generalized with the
// crypto/tls wrapping shown in moodclient-telnet's examples/tls_echo.
package transport

import (
	"bufio"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// SecurityLevel is a coarse floor on TLS protocol/cipher strength,
// analogous to an OpenSSL "SECLEVEL".
type SecurityLevel int

const (
	SecLevel0 SecurityLevel = iota // no floor beyond Go's defaults
	SecLevel1                      // TLS 1.0+
	SecLevel2                      // TLS 1.2+ (default)
)

// VerifyMode controls how a TLS peer certificate is checked.
type VerifyMode int

const (
	VerifyNone VerifyMode = iota
	VerifyCert
	VerifyHostname
)

// Config describes how to establish the transport.
type Config struct {
	TLS          bool
	SecLevel     SecurityLevel
	Verify       VerifyMode
	CACertPEM    []byte // optional extra trust root
	DialTimeout  time.Duration
}

// DefaultPort returns 992 for TLS, 23 otherwise, per spec.
func DefaultPort(useTLS bool) int {
	if useTLS {
		return 992
	}
	return 23
}

const defaultDialTimeout = 10 * time.Second

// TransportError wraps failures establishing or operating the connection.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// Conn is a half-duplex-friendly reliable ordered byte stream. It adds no
// framing of its own; the Telnet Engine is responsible for IAC escaping
// and EOR delimiting on top of it.
type Conn struct {
	raw net.Conn
	r   *bufio.Reader
	w   *bufio.Writer
}

// ErrClosed is returned by Read/Write after Close.
var ErrClosed = errors.New("transport: connection closed")

// Dial connects to host:port, optionally wrapping the connection in TLS
// per cfg.
func Dial(ctx context.Context, host string, port int, cfg Config) (*Conn, error) {
	timeout := cfg.DialTimeout
	if timeout == 0 {
		timeout = defaultDialTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))

	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}

	if cfg.TLS {
		tlsConn, err := wrapTLS(ctx, raw, host, cfg)
		if err != nil {
			raw.Close()
			return nil, &TransportError{Op: "tls handshake", Err: err}
		}
		raw = tlsConn
	}

	return &Conn{raw: raw, r: bufio.NewReader(raw), w: bufio.NewWriter(raw)}, nil
}

func wrapTLS(ctx context.Context, raw net.Conn, host string, cfg Config) (net.Conn, error) {
	tlsCfg := &tls.Config{ServerName: host}

	switch cfg.SecLevel {
	case SecLevel1:
		tlsCfg.MinVersion = tls.VersionTLS10
	case SecLevel2:
		tlsCfg.MinVersion = tls.VersionTLS12
	default:
		tlsCfg.MinVersion = tls.VersionTLS12
	}

	switch cfg.Verify {
	case VerifyNone:
		tlsCfg.InsecureSkipVerify = true
	case VerifyCert:
		tlsCfg.InsecureSkipVerify = true
		tlsCfg.VerifyPeerCertificate = verifyCertOnly(cfg.CACertPEM)
	case VerifyHostname:
		if len(cfg.CACertPEM) > 0 {
			pool := x509.NewCertPool()
			pool.AppendCertsFromPEM(cfg.CACertPEM)
			tlsCfg.RootCAs = pool
		}
	}

	conn := tls.Client(raw, tlsCfg)
	if err := conn.HandshakeContext(ctx); err != nil {
		return nil, err
	}
	return conn, nil
}

// verifyCertOnly builds a VerifyPeerCertificate callback that checks the
// presented chain against caPEM (if given) without checking the hostname,
// matching the VerifyCert mode (trust the cert, skip SNI match).
func verifyCertOnly(caPEM []byte) func([][]byte, [][]*x509.Certificate) error {
	pool := x509.NewCertPool()
	if len(caPEM) > 0 {
		pool.AppendCertsFromPEM(caPEM)
	}
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return errors.New("transport: no certificate presented")
		}
		cert, err := x509.ParseCertificate(rawCerts[0])
		if err != nil {
			return err
		}
		if pool.Equal(x509.NewCertPool()) {
			return nil // no CA configured: accept any well-formed cert
		}
		_, err = cert.Verify(x509.VerifyOptions{Roots: pool})
		return err
	}
}

// Read fills p with bytes from the connection, honoring ctx's deadline.
// It returns ErrClosed after Close, and os.ErrDeadlineExceeded on timeout.
func (c *Conn) Read(ctx context.Context, p []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		c.raw.SetReadDeadline(dl)
	} else {
		c.raw.SetReadDeadline(time.Time{})
	}
	n, err := c.r.Read(p)
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return n, ErrClosed
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return n, os.ErrDeadlineExceeded
		}
		return n, &TransportError{Op: "read", Err: err}
	}
	return n, nil
}

// Write sends p in full or returns an error; no partial-write framing is
// exposed above this layer.
func (c *Conn) Write(p []byte) error {
	_, err := c.w.Write(p)
	if err == nil {
		err = c.w.Flush()
	}
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return ErrClosed
		}
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// Close shuts the connection down. Idempotent.
func (c *Conn) Close() error {
	return c.raw.Close()
}
