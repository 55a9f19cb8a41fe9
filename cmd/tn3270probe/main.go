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

// Command tn3270probe drives a TN3270(E) session from a mini-Expect
// style script: expect "..." waits for text to appear on screen, send
// "..." types keystrokes (an embedded \n sends AID Enter), exit ends
// the script early.
//
// Grounded on the teacher's miniExpect.go automated-scripting engine,
// reworked from a GTK-embedded goroutine driving channel-fed keyboard
// and host-output queues into a standalone CLI driving session.Session
// directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"tn3270/codec"
	"tn3270/ps"
	"tn3270/session"
)

func main() {
	host := flag.String("host", "", "TN3270 host to connect to")
	port := flag.Int("port", 0, "TCP port (default 992 for TLS, 23 otherwise)")
	tls := flag.Bool("tls", true, "negotiate TLS")
	scriptPath := flag.String("script", "", "mini-Expect script file")
	timeout := flag.Duration("expect-timeout", 10*time.Second, "timeout for each expect step")
	trace := flag.Bool("trace", false, "print each script step as it runs")
	flag.Parse()

	if *host == "" || *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tn3270probe -host HOST -script FILE [-port N] [-tls=false]")
		os.Exit(2)
	}

	f, err := os.Open(*scriptPath)
	if err != nil {
		log.Fatalf("tn3270probe: %v", err)
	}
	steps, err := parseScript(f)
	f.Close()
	if err != nil {
		log.Fatalf("tn3270probe: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := session.ConfigFromEnv()
	cfg.TLS = *tls
	sess, err := session.Connect(ctx, *host, *port, cfg, session.Events{})
	if err != nil {
		log.Fatalf("tn3270probe: connect: %v", err)
	}
	defer sess.Close()

	for _, st := range steps {
		if *trace {
			log.Printf("tn3270probe: %s %q", st.kind, st.arg)
		}
		switch st.kind {
		case "expect":
			if err := runExpect(sess, st.arg, *timeout); err != nil {
				log.Fatalf("tn3270probe: %v", err)
			}
		case "send":
			if err := runSend(sess, st.arg); err != nil {
				log.Fatalf("tn3270probe: %v", err)
			}
		case "exit":
			return
		}
	}
}

func runExpect(sess *session.Session, want string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := sess.Wait(ctx, func(p *ps.PresentationSpace) bool {
		return screenContains(p, want)
	})
	if err != nil {
		return fmt.Errorf("expect %q: %w", want, err)
	}
	return nil
}

func screenContains(p *ps.PresentationSpace, want string) bool {
	rows, cols := p.Rows(), p.Cols()
	line := make([]byte, rows*cols)
	for i := range line {
		line[i] = p.CellAt(i).CodePoint
	}
	text, err := codec.Decode(line, codec.CP037)
	if err != nil {
		return false
	}
	return strings.Contains(text, want)
}

// runSend types str into the session, sending AID Enter wherever an
// embedded newline appears in place of a literal character, matching
// miniExpect.go's \n-to-Enter translation.
func runSend(sess *session.Session, str string) error {
	var pending strings.Builder
	flush := func() error {
		if pending.Len() == 0 {
			return nil
		}
		err := sess.SendKeys(pending.String())
		pending.Reset()
		return err
	}
	for _, r := range str {
		if r == '\n' {
			if err := flush(); err != nil {
				return err
			}
			if err := sess.SendAID(session.AIDEnter); err != nil {
				return err
			}
			continue
		}
		pending.WriteRune(r)
	}
	return flush()
}
