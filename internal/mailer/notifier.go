package mailer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notifierは通知をベストエフォートで送る。
// 送信失敗はログに残すだけで呼び出し側には返さない
// （コミット済みの注文状態をメール失敗で巻き戻さないため）。
// リトライキューは持たない（at-most-once）。
type Notifier struct {
	mailer  Mailer
	log     *zap.Logger
	timeout time.Duration
}

func NewNotifier(mailer Mailer, log *zap.Logger, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Notifier{mailer: mailer, log: log, timeout: timeout}
}

func (n *Notifier) Notify(ctx context.Context, msg Message) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.mailer.Send(ctx, msg); err != nil {
		n.log.Warn("mail delivery failed",
			zap.String("subject", msg.Subject),
			zap.Int("to", len(msg.To)),
			zap.Int("bcc", len(msg.Bcc)),
			zap.Error(err),
		)
	}
}
