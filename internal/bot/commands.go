package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/tabiplan/internal/db"
	"github.com/susu3304/tabiplan/internal/report"
)

var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        "trips",
		Description: "このサーバーのグループの旅行一覧を表示します",
	},
	{
		Name:        "tripcosts",
		Description: "旅行の費用内訳を表示します",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "trip_id",
				Description: "旅行ID（省略時は直近の旅行）",
				Required:    false,
			},
		},
	},
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		log.Printf("Failed to respond to interaction: %v", err)
	}
}

// groupForInteraction resolves the guild the command came from to its
// linked trip group.
func (b *Bot) groupForInteraction(ctx context.Context, i *discordgo.InteractionCreate) (*db.Group, error) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid guild id: %w", err)
	}
	return b.db.GetGroupByGuildID(ctx, guildID)
}

func (b *Bot) handleTripsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	group, err := b.groupForInteraction(ctx, i)
	if err != nil {
		respond(s, i, "このサーバーに紐づくグループがありません。")
		return
	}

	trips, err := b.db.ListTrips(ctx, group.ID)
	if err != nil {
		log.Printf("Failed to list trips for group %d: %v", group.ID, err)
		respond(s, i, "旅行一覧の取得に失敗しました。")
		return
	}
	if len(trips) == 0 {
		respond(s, i, "登録された旅行がありません。")
		return
	}

	var bld strings.Builder
	fmt.Fprintf(&bld, "「%s」の旅行:\n", group.Name)
	for _, t := range trips {
		fmt.Fprintf(&bld, "[%d] %s", t.ID, t.Name)
		if t.Destination != "" {
			fmt.Fprintf(&bld, " — %s", t.Destination)
		}
		if t.StartDate != nil {
			fmt.Fprintf(&bld, " (%s)", t.StartDate.Format("2006-01-02"))
		}
		bld.WriteString("\n")
	}
	respond(s, i, bld.String())
}

func (b *Bot) handleTripCostsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	group, err := b.groupForInteraction(ctx, i)
	if err != nil {
		respond(s, i, "このサーバーに紐づくグループがありません。")
		return
	}

	trips, err := b.db.ListTrips(ctx, group.ID)
	if err != nil || len(trips) == 0 {
		respond(s, i, "登録された旅行がありません。")
		return
	}

	var trip *db.Trip
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "trip_id" {
			id := opt.IntValue()
			for idx := range trips {
				if trips[idx].ID == id {
					trip = &trips[idx]
				}
			}
		}
	}
	if trip == nil {
		trip = upcomingTrip(trips, time.Now())
	}

	summary, err := costSummary(ctx, b.db, trip)
	if err != nil {
		log.Printf("Failed to build cost summary for trip %d: %v", trip.ID, err)
		respond(s, i, "費用内訳の取得に失敗しました。")
		return
	}
	respond(s, i, summary)
}

// upcomingTrip picks the next trip that has not started yet, falling back
// to the last one.
func upcomingTrip(trips []db.Trip, now time.Time) *db.Trip {
	for idx := range trips {
		if trips[idx].StartDate != nil && !trips[idx].StartDate.Before(now) {
			return &trips[idx]
		}
	}
	return &trips[len(trips)-1]
}

// costSummary renders the trip's cost matrix as a message body. Shared by
// the slash command and the reminder worker.
func costSummary(ctx context.Context, database *db.DB, trip *db.Trip) (string, error) {
	members, err := database.ListMembers(ctx, trip.GroupID)
	if err != nil {
		return "", err
	}
	flights, err := database.ListFlights(ctx, trip.ID)
	if err != nil {
		return "", err
	}
	lodgings, err := database.ListLodgings(ctx, trip.ID)
	if err != nil {
		return "", err
	}
	tours, err := database.ListTours(ctx, trip.ID)
	if err != nil {
		return "", err
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.DisplayName
	}

	rep := report.Build(members, flights, lodgings, tours)
	return fmt.Sprintf("「%s」の費用内訳:\n%s", trip.Name, report.RenderText(rep, names)), nil
}
