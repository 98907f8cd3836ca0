package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/tabiplan/internal/db"
)

// reminderWorker periodically posts upcoming-trip reminders, with the
// current cost breakdown, to linked channels.
type reminderWorker struct {
	db       *db.DB
	session  reminderSession
	stopChan chan struct{}
	ticker   *time.Ticker
	interval time.Duration
}

// Minimal session interface for sending channel messages.
type reminderSession interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

func newReminderWorker(session reminderSession, database *db.DB) *reminderWorker {
	return &reminderWorker{
		db:       database,
		session:  session,
		stopChan: make(chan struct{}),
		interval: time.Minute,
	}
}

func (w *reminderWorker) start() {
	if w == nil {
		return
	}
	w.ticker = time.NewTicker(w.interval)
	go w.loop()
}

func (w *reminderWorker) stop() {
	if w == nil {
		return
	}
	close(w.stopChan)
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *reminderWorker) loop() {
	ctx := context.Background()
	for {
		select {
		case <-w.ticker.C:
			w.tick(ctx)
		case <-w.stopChan:
			return
		}
	}
}

func (w *reminderWorker) tick(ctx context.Context) {
	now := time.Now()
	targets, err := w.db.DueTripReminders(ctx, now)
	if err != nil {
		log.Printf("reminder: failed to load due reminders: %v", err)
		return
	}

	for _, t := range targets {
		msg, err := w.reminderMessage(ctx, t.TripID)
		if err != nil {
			log.Printf("reminder: failed to build message for trip %d: %v", t.TripID, err)
			continue
		}
		if _, err := w.session.ChannelMessageSend(t.ChannelID, msg); err != nil {
			log.Printf("reminder: failed to send to channel %s: %v", t.ChannelID, err)
			continue
		}
		if err := w.db.MarkTripReminded(ctx, t.TripID, now); err != nil {
			log.Printf("reminder: failed to mark trip %d reminded: %v", t.TripID, err)
		}
	}
}

func (w *reminderWorker) reminderMessage(ctx context.Context, tripID int64) (string, error) {
	trip, err := w.db.GetTrip(ctx, tripID)
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("「%s」の出発が近づいています！", trip.Name)
	if trip.StartDate != nil {
		msg = fmt.Sprintf("「%s」の出発が近づいています！（%s 出発）", trip.Name, trip.StartDate.Format("2006-01-02"))
	}

	// Best effort: the reminder is still worth sending without the numbers.
	if summary, err := costSummary(ctx, w.db, trip); err == nil {
		msg += "\n" + summary
	}
	return msg, nil
}
