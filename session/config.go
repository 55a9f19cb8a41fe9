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

// Package session implements the TN3270(E) session controller: it owns
// one connection's lifecycle, drives the telnet.Engine, routes inbound
// records into the stream.Interpreter, exposes a synchronous API to
// external callers, and layers IND$FILE upload/download on top.
//
// Grounded on the teacher's terminalT/dasherg.go connection-management
// code (a single owning goroutine reading from a channel-fed host
// stream while external callers push through the keyboard channel),
// generalized from Dasher's direct GUI callbacks into a single-task
// command-queue model safe for concurrent external callers.
package session

import (
	"os"
	"strconv"
	"strings"

	"tn3270/transport"
)

// Config configures a Connect call. Zero-value fields fall back to
// ConfigFromEnv's defaults where noted.
type Config struct {
	TLS         bool
	SecLevel    transport.SecurityLevel
	Verify      transport.VerifyMode
	CACertPEM   []byte
	Rows, Cols  int // 0,0: use the 24x80 default
	TermType    string
}

// ConfigFromEnv builds a Config from environment variables:
// SESSION_SSL, SESSION_SSL_VERIFY, ZTI_SECLEVEL and SESSION_PS_SIZE.
// TNZ_COLORS is not read; Config has no color-capability field.
func ConfigFromEnv() Config {
	cfg := Config{TLS: true, SecLevel: transport.SecLevel2, Verify: transport.VerifyHostname}

	if v := os.Getenv("SESSION_SSL"); v == "0" {
		cfg.TLS = false
	}

	switch strings.ToLower(os.Getenv("SESSION_SSL_VERIFY")) {
	case "none":
		cfg.Verify = transport.VerifyNone
	case "cert":
		cfg.Verify = transport.VerifyCert
	case "hostname":
		cfg.Verify = transport.VerifyHostname
	}

	switch os.Getenv("ZTI_SECLEVEL") {
	case "0":
		cfg.SecLevel = transport.SecLevel0
	case "1":
		cfg.SecLevel = transport.SecLevel1
	case "2":
		cfg.SecLevel = transport.SecLevel2
	}

	cfg.Rows, cfg.Cols = parsePSSize(os.Getenv("SESSION_PS_SIZE"))

	return cfg
}

// parsePSSize resolves SESSION_PS_SIZE. RxC is parsed directly.
// MAX/MAX255/FULL/FULL255 name a size policy rather than a fixed
// geometry: header/footer reservation for those modes is a UI concern,
// so this core resolves them to the same 24x80 default and leaves a UI
// layer to override it with an explicit Rows/Cols in Config.
func parsePSSize(v string) (rows, cols int) {
	switch strings.ToUpper(v) {
	case "", "MAX", "MAX255", "FULL", "FULL255":
		return 0, 0
	}
	parts := strings.SplitN(strings.ToUpper(v), "X", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	r, err1 := strconv.Atoi(parts[0])
	c, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || r <= 0 || c <= 0 {
		return 0, 0
	}
	return r, c
}
