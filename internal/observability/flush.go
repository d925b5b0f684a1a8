package observability

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// FlushTelemetry flushes telemetry before process exit: writes the metrics
// textfile when textfilePath is set, then syncs the logger.
func FlushTelemetry(ctx context.Context, logger *zap.Logger, textfilePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if textfilePath != "" {
		if err := WriteTextfile(textfilePath); err != nil {
			return err
		}
	}
	if logger != nil {
		if err := logger.Sync(); err != nil {
			return fmt.Errorf("flush logs: %w", err)
		}
	}
	return nil
}
