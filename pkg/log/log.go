// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	ruleIndent  = 4  // spaces to indent rule entries
	nameWidth   = 38 // width for the rule name
	statusWidth = 12 // width for status text
)

// 🎯 RuleOperation describes one rule applied to one target
type RuleOperation struct {
	Index   int    // position in the rule list, starting at 1
	Name    string // rule label
	Count   int    // occurrences replaced
	Skipped bool   // rule filtered out for this target
}

// 📦 TargetOperation describes a target being patched
type TargetOperation struct {
	Source      string
	Destination string
	DryRun      bool
}

// 🎯 Logger writes human output to the console and mirrors it into zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	verbose bool
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔊 SetVerbose prints target and rule lines on the console. They always go to
// zerolog at debug level.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context. Without one, output is discarded.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, *zerolog.Ctx(ctx))
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatRuleOperation formats a rule operation for display
func (l *Logger) formatRuleOperation(op RuleOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.Skipped:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "skipped"
	case op.Count > 0:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = fmt.Sprintf("%d replaced", op.Count)
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		status = "no match"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", ruleIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		color.New(color.Faint).Sprintf("%2d", op.Index),
		fmt.Sprintf("%-*s", nameWidth, op.Name),
		fmt.Sprintf("%-*s", statusWidth, status))
}

func (l *Logger) logRuleOperation(op RuleOperation) {
	if l.verbose {
		fmt.Fprintln(l.console, l.formatRuleOperation(op))
	}

	l.zlog.Debug().
		Int("rule", op.Index).
		Str("name", op.Name).
		Int("replacements", op.Count).
		Bool("skipped", op.Skipped).
		Msg("rule applied")
}

// 📝 LogTargetOperation logs a target and the outcome of each of its rules as
// one block, so concurrent targets do not interleave
func (l *Logger) LogTargetOperation(ctx context.Context, op TargetOperation, rules []RuleOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.verbose {
		verb := "patching"
		if op.DryRun {
			verb = "checking"
		}
		fmt.Fprintf(l.console, "[%s %s]\n", verb, color.New(color.FgCyan).Sprint(op.Destination))

		fmt.Fprintf(l.console, "%s %s %s %s\n",
			color.New(color.FgMagenta).Sprint("◆"),
			color.New(color.Bold).Sprint(op.Source),
			color.New(color.Faint).Sprint("→"),
			color.New(color.FgYellow).Sprint(op.Destination))
	}

	total := 0
	for _, r := range rules {
		l.logRuleOperation(r)
		total += r.Count
	}

	l.zlog.Debug().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Bool("dry_run", op.DryRun).
		Int("rules", len(rules)).
		Int("replacements", total).
		Msg("target complete")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Print writes raw text to the console without decoration
func (l *Logger) Print(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, s)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("homepatch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
