// Package sender доставляет уведомления о горячих лидах из очереди в Telegram.
package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/lib/telegram"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

// Transport отправка сообщения ботом.
type Transport interface {
	SendMessage(ctx context.Context, token string, msg telegram.SendMessageRequest) error
}

// SenderService обрабатывает сообщения очереди уведомлений.
type SenderService struct {
	transport Transport
	log       *slog.Logger
	metrics   metrics.Recorder
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport Transport, m metrics.Recorder) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
		metrics:   m,
	}
}

// SendHotLead обработчик очереди notifications.leads. Возвращает ошибку только
// для временных сбоев, чтобы сообщение вернулось в очередь. Битые сообщения и
// отказы Bot API отбрасываются.
func (s *SenderService) SendHotLead(ctx context.Context, body []byte) error {
	const op = "sender.SendHotLead"
	log := s.log.With(slog.String("op", op))

	var alert models.LeadAlert
	if err := json.Unmarshal(body, &alert); err != nil {
		log.Error("failed to unmarshal message body, dropping", sl.Err(err))
		return nil
	}
	log = log.With(sl.Device(alert.DeviceID), slog.String("lead_id", alert.Lead.ID))

	if alert.BotToken == "" || alert.ChatID == "" {
		log.Warn("alert without telegram credentials, dropping")
		return nil
	}

	err := s.transport.SendMessage(ctx, alert.BotToken, telegram.SendMessageRequest{
		ChatID:    alert.ChatID,
		Text:      FormatLeadAlert(alert.Lead),
		ParseMode: telegram.ParseModeMarkdown,
	})
	if err != nil {
		s.metrics.IncAlertsSent(false)
		if errors.Is(err, telegram.ErrRejected) {
			log.Error("telegram rejected alert, dropping", sl.Err(err))
			return nil
		}
		log.Warn("failed to send alert", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.IncAlertsSent(true)
	log.Info("hot lead alert sent")
	return nil
}

// спецсимволы разметки Markdown в полях лида
var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatLeadAlert текст уведомления в разметке Markdown.
func FormatLeadAlert(lead models.Lead) string {
	interest := "Venda"
	if lead.Type == models.SearchBuyer {
		interest = "Compra"
	}

	triggers := make([]string, 0, len(lead.Triggers))
	for _, t := range lead.Triggers {
		triggers = append(triggers, "• "+markdownEscaper.Replace(t))
	}

	var b strings.Builder
	b.WriteString("🚀 *NOVO LEAD IDENTIFICADO - RADAR ALPHA* 🚀\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("👤 *Nome:* " + markdownEscaper.Replace(lead.Name) + "\n")
	b.WriteString("📍 *Local:* " + markdownEscaper.Replace(lead.Location) + "\n")
	b.WriteString("🔥 *Score:* " + strconv.Itoa(lead.Score) + "%\n")
	b.WriteString("🏢 *Interesse:* " + interest + "\n\n")
	b.WriteString("📝 *Desejo:*\n\"" + markdownEscaper.Replace(lead.Need) + "\"\n\n")
	b.WriteString("🎯 *Triggers de IA:*\n" + strings.Join(triggers, "\n") + "\n\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("_Rodney Alpha Engine_")
	return b.String()
}
