package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"morning-macro/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// BriefingRunner triggers one unconditional briefing cycle, used by the
// manual /briefing command.
type BriefingRunner interface {
	RunBriefing(ctx context.Context) (domain.BriefingRunResult, error)
}

// Notifier sends finished briefing messages to the configured chat.
type Notifier struct {
	bot    *tele.Bot
	chatID tele.ChatID
}

// NewBot builds the Telegram client. Long polling only matters for the
// command handlers; delivery is plain sendMessage calls.
func NewBot(token string) (*tele.Bot, error) {
	return tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
}

// NewNotifier pins a bot to one numeric chat destination.
func NewNotifier(b *tele.Bot, chatID string) (*Notifier, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_ID %q: %w", chatID, err)
	}
	return &Notifier{bot: b, chatID: tele.ChatID(id)}, nil
}

// Deliver sends one HTML message with link previews suppressed. There is no
// retry: a failed send is logged by the caller and lost until the next cycle
// or a manual resend.
func (n *Notifier) Deliver(ctx context.Context, text string) error {
	_, err := n.bot.Send(n.chatID, text, &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		DisableWebPagePreview: true,
	})
	return err
}

// StartTelegramBot registers the command handlers and starts long polling.
func StartTelegramBot(b *tele.Bot, runner BriefingRunner) {
	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/briefing", func(c tele.Context) error {
		result, err := runner.RunBriefing(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("브리핑 실행 오류: %v", err))
		}
		if result.Skipped {
			return c.Send("경제지표 데이터를 가져올 수 없어 브리핑을 건너뜁니다.")
		}
		if !result.Delivered {
			return c.Send("브리핑 전송에 실패했습니다. 로그를 확인하세요.")
		}
		return nil
	})

	log.Println("Telegram bot started")
	go b.Start()
}
