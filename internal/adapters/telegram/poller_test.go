package telegram

import (
	"context"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func TestPollerDropsBacklogAndDispatches(t *testing.T) {
	api, bot := newFakeAPI(t)
	api.handle("deleteWebhook", func(url.Values) (int, string) {
		return http.StatusOK, `{"ok":true,"result":true}`
	})
	var served atomic.Int32
	api.handle("getUpdates", func(url.Values) (int, string) {
		if served.Add(1) == 1 {
			return http.StatusOK, `{"ok":true,"result":[{"update_id":10,"message":{"message_id":1,"date":0,"chat":{"id":70,"type":"private"},"text":"hi"}}]}`
		}
		time.Sleep(20 * time.Millisecond)
		return http.StatusOK, `{"ok":true,"result":[]}`
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan tgbotapi.Update, 1)
	done := make(chan error, 1)
	go func() {
		done <- NewPoller(bot, zerolog.Nop()).Run(ctx, func(_ context.Context, upd tgbotapi.Update) {
			got <- upd
		})
	}()

	select {
	case upd := <-got:
		if upd.UpdateID != 10 || upd.Message == nil || upd.Message.Text != "hi" {
			t.Fatalf("unexpected update %+v", upd)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("update was not dispatched")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop")
	}

	calls := api.callsTo("deleteWebhook")
	if len(calls) != 1 || calls[0].form.Get("drop_pending_updates") != "true" {
		t.Fatalf("expected backlog drop, got %+v", calls)
	}
}

func TestPollerFailsWhenBacklogDropFails(t *testing.T) {
	_, bot := newFakeAPI(t)
	err := NewPoller(bot, zerolog.Nop()).Run(context.Background(), func(context.Context, tgbotapi.Update) {})
	if err == nil {
		t.Fatal("expected error when deleteWebhook fails")
	}
}
