package bot

import (
	"log"
	"sync"
	"time"

	"srrd-bot/model"
	"srrd-bot/utils"
	"srrd-bot/utils/database/records"

	"github.com/bwmarrin/discordgo"
)

// staleEventAge is how long an attendance event may sit in a non-terminal
// state before the sweeper cancels it.
const staleEventAge = 48 * time.Hour

const sweepInterval = 30 * time.Minute

// PanelRenderer re-renders an attendance panel from its row state. Injected
// by the handlers package so the sweeper can repaint panels it cancels.
type PanelRenderer func(table string, event *model.AttendanceEvent) (*discordgo.MessageEmbed, []discordgo.MessageComponent)

// Scheduler runs background maintenance. Currently a single task: sweeping
// stale tryout and training panels that their host never closed out.
type Scheduler struct {
	bot         *Bot
	renderPanel PanelRenderer
	wg          sync.WaitGroup
}

func NewScheduler(b *Bot, renderPanel PanelRenderer) *Scheduler {
	return &Scheduler{bot: b, renderPanel: renderPanel}
}

// Start begins the background sweep loop. It stops when the bot shuts down.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) Stop() {
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}

func (s *Scheduler) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepStaleEvents()
		case <-s.bot.Done():
			return
		}
	}
}

// sweepStaleEvents cancels attendance events that have been open or started
// for longer than staleEventAge and repaints their panels.
func (s *Scheduler) sweepStaleEvents() {
	cutoff := time.Now().Add(-staleEventAge).Unix()
	for _, table := range []string{records.TableTryouts, records.TableTrainings} {
		events, err := records.GetStaleAttendanceEvents(s.bot.GetDB(), table, cutoff)
		if err != nil {
			log.Printf("Failed to query stale %s events: %v", table, err)
			continue
		}
		for i := range events {
			event := &events[i]
			if err := records.UpdateAttendanceStatus(s.bot.GetDB(), table, event.EventID, event.GuildID, model.EventStatusCancelled); err != nil {
				log.Printf("Failed to cancel stale %s event %d: %v", table, event.EventID, err)
				continue
			}
			event.Status = model.EventStatusCancelled
			s.repaintPanel(table, event)
			utils.LogInfo(s.bot.GetSession(), s.bot.GetConfig().LogChannelID, "Attendance", "Sweep",
				"Cancelled stale "+table+" event hosted by <@"+event.HostID+"> in guild "+event.GuildID+".")
		}
	}
}

func (s *Scheduler) repaintPanel(table string, event *model.AttendanceEvent) {
	if s.renderPanel == nil {
		return
	}
	embed, components := s.renderPanel(table, event)
	_, err := s.bot.GetSession().ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    event.ChannelID,
		ID:         event.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		log.Printf("Failed to repaint panel for %s event %d: %v", table, event.EventID, err)
	}
}
