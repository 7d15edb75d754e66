package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"medguide/api/internal/analysis"
)

// Notifier pushes short Telegram alerts to the on-call chat when a scan
// classifies at high or critical risk. All methods are nil-safe; a nil
// Notifier silently drops alerts, so callers never guard.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// New returns nil (alerting disabled) when the token or chat ID is unset.
func New(token string, chatID int64) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	return &Notifier{bot: bot, chatID: chatID}, nil
}

// ScanAlert notifies the on-call chat about a high or critical scan finding.
func (n *Notifier) ScanAlert(recordID string, f analysis.ScanFinding) {
	if n == nil || f.RiskLevel.Severity() < analysis.RiskHigh.Severity() {
		return
	}
	sig := f.ClinicalSignificance
	if len(sig) > 300 {
		sig = sig[:300] + "…"
	}
	n.send(fmt.Sprintf("⚠️ %s scan for record %s classified %s risk.\n%s",
		f.ScanType, recordID, f.RiskLevel, sig))
}

func (n *Notifier) send(text string) {
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.Printf("notify: telegram send failed: %v", err)
	}
}
