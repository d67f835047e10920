package saa

import (
	"errors"
	"io"
	"log/slog"
)

// ErrNoStore is returned by Publish when no concordance store is configured.
var ErrNoStore = errors.New("no concordance store configured")

// CloseWithLog closes closer and logs a failure at warning level. It is
// meant for defer statements, where the error would otherwise be dropped.
//
// If logger is nil, slog.Default() is used.
//
//	defer saa.CloseWithLog(conv, logger, "converter")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
