package notification

import (
	"context"

	"citaflow/utils"

	"go.uber.org/zap"
)

// LogMailer is the default Mailer when no delivery provider is configured:
// it logs the rendered message and succeeds. Environments with a real
// provider inject their own implementation.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	utils.GetLogger().Info("mail delivery skipped, no provider configured",
		zap.String("to", to), zap.String("subject", subject))
	return nil
}
