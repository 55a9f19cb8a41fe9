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

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// step is one mini-Expect instruction: expect a string to appear on
// screen, send keystrokes (an embedded \n sends AID Enter instead of a
// literal character), or exit the script early.
//
// Grounded on the teacher's miniExpect.go scripting language (expect
// "...", send "...", exit, # comments), reworked from its GTK/channel
// plumbing into steps a session.Session can drive directly.
type step struct {
	kind string // "expect", "send", "exit"
	arg  string
}

func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "expect"):
			arg, err := quotedArg(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			steps = append(steps, step{kind: "expect", arg: arg})
		case strings.HasPrefix(line, "send"):
			arg, err := quotedArg(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			steps = append(steps, step{kind: "send", arg: arg})
		case strings.HasPrefix(line, "exit"):
			steps = append(steps, step{kind: "exit"})
		default:
			return nil, fmt.Errorf("line %d: unknown mini-Expect command %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func quotedArg(line string) (string, error) {
	parts := strings.SplitN(line, "\"", 3)
	if len(parts) < 3 {
		return "", fmt.Errorf("missing quoted argument in %q", line)
	}
	return parts[1], nil
}
