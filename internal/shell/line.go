package shell

import (
	"bufio"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gonch-sh/gonch/internal/styles"
)

// Line is the built-in shell backend: a plain read-eval-print loop over a
// yaegi session. It has no terminal requirements and is always available,
// making it the last resort of the auto fallback chain.
type Line struct {
	opts Options
}

func NewLine(opts Options) Shell {
	return &Line{opts: opts.normalize()}
}

func (l *Line) Name() string { return "line" }

func (l *Line) Available() error { return nil }

func (l *Line) Start(ctx context.Context) error {
	session, err := NewSession(l.opts.Stdin, l.opts.Stdout, l.opts.Stderr, l.opts.Logger)
	if err != nil {
		return err
	}
	if err := session.Inject(l.opts.Context); err != nil {
		return err
	}

	fmt.Fprint(l.opts.Stdout, l.opts.Banner)

	prompt := l.opts.prompt()
	scanner := bufio.NewScanner(l.opts.Stdin)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(l.opts.Stdout, prompt)
		if !scanner.Scan() {
			// EOF (Ctrl+D) ends the session.
			fmt.Fprintln(l.opts.Stdout)
			return scanner.Err()
		}

		input := scanner.Text()
		if input == "" {
			continue
		}

		if l.opts.History != nil {
			if _, err := l.opts.History.Record(input); err != nil {
				l.opts.Logger.Warn("failed to record history entry", zap.Error(err))
			}
		}

		result, ok, err := session.Eval(input)
		if err != nil {
			fmt.Fprintln(l.opts.Stderr, styles.ERROR(err.Error()))
			continue
		}
		if ok {
			fmt.Fprintln(l.opts.Stdout, styles.RESULT(FormatResult(l.opts.Output, result)))
		}
	}
}
