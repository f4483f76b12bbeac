package client

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Notifier surfaces failures to whoever is operating the client.
type Notifier interface {
	Error(msg string)
	Warn(msg string)
}

// LogNotifier sends notifications to a zap logger.
type LogNotifier struct {
	Logger *zap.SugaredLogger
}

func (n LogNotifier) Error(msg string) {
	n.Logger.Errorw("request failed", "msg", msg)
}

func (n LogNotifier) Warn(msg string) {
	n.Logger.Warnw(msg)
}

// WriterNotifier prints notifications as plain lines, e.g. to a terminal.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Error(msg string) {
	fmt.Fprintf(n.W, "error: %s\n", msg)
}

func (n WriterNotifier) Warn(msg string) {
	fmt.Fprintf(n.W, "warning: %s\n", msg)
}

type NopNotifier struct{}

func (NopNotifier) Error(string) {}
func (NopNotifier) Warn(string)  {}
