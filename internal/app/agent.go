package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"recaf/internal/instrument"
)

const instrumentFlag = "--instrument"

var agentArgSeparator = regexp.MustCompile(`[=,]`)

// Agent is the entry point used when recaf is attached to another process.
// raw is the agent argument string, "key=value" pairs joined by ",".
func (b *Bootstrap) Agent(ctx context.Context, raw string, h instrument.Handle) error {
	if err := b.state.SetInstrumentation(h); err != nil {
		return fmt.Errorf("failed to store instrumentation handle: %w", err)
	}
	args := SplitAgentArgs(NormalizeAgentArgs(raw))
	b.Init()
	return b.Launch(ctx, args)
}

// NormalizeAgentArgs ensures raw carries the --instrument flag. An empty
// string becomes the flag alone, a list without it gets it appended, and a
// list that already has it is returned unchanged.
func NormalizeAgentArgs(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return instrumentFlag
	}
	for _, part := range agentArgSeparator.Split(raw, -1) {
		if strings.TrimSpace(part) == instrumentFlag {
			return raw
		}
	}
	return raw + "," + instrumentFlag
}

// SplitAgentArgs splits an agent argument string on "=" and "," into
// command-line arguments, dropping empty parts.
func SplitAgentArgs(s string) []string {
	var args []string
	for _, part := range agentArgSeparator.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			args = append(args, part)
		}
	}
	return args
}
