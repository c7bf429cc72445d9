package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/repositories"
)

// UnknownPlayerName is shown when a stat line references a player that no
// longer exists on the roster. The data is kept, only the name is missing.
const UnknownPlayerName = "Inconnu"

// PodiumSize is how many leaderboard entries are presented as medal positions.
const PodiumSize = 3

// --- Leaderboard DTOs ---
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
}

// Leaderboard splits ranked entries into the podium (ranks 1-3) and the flat
// table below it (ranks 4+). Both are empty when no player has a count.
type Leaderboard struct {
	Podium []LeaderboardEntry `json:"podium"`
	Table  []LeaderboardEntry `json:"table"`
}

type LeaderboardsResponse struct {
	Scorers  Leaderboard `json:"scorers"`
	Assists  Leaderboard `json:"assists"`
	Combined []models.CombinedStat `json:"combined"`
}

type StatLineView struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// MatchSummary is the named rendering of one match's stat lines.
type MatchSummary struct {
	EventID  int64          `json:"event_id"`
	Date     string         `json:"date"`
	Opponent *string        `json:"opponent,omitempty"`
	Result   *string        `json:"result,omitempty"`
	Scorers  []StatLineView `json:"scorers"`
	Assists  []StatLineView `json:"assists"`
}

// DashboardSummary backs the admin dashboard landing page.
type DashboardSummary struct {
	PlayerCount       int     `json:"player_count"`
	CoachCount        int     `json:"coach_count"`
	UpcomingEvents    int     `json:"upcoming_events"`
	PendingPayments   int     `json:"pending_payments"`
	OverduePayments   int     `json:"overdue_payments"`
	OutstandingAmount float64 `json:"outstanding_amount"`
}

// CombineStats folds every played match's scorers and assists into one
// aggregate per known player. The result keeps the roster's order and
// includes zero-count players; leaderboard views filter those out. Stat lines
// referencing unknown player IDs contribute to no entry.
func CombineStats(players []models.Player, events []models.ClubEvent) []models.CombinedStat {
	stats := make([]models.CombinedStat, len(players))
	index := make(map[int64]*models.CombinedStat, len(players))
	for i := range players {
		stats[i] = models.CombinedStat{
			PlayerID: players[i].ID,
			Name:     players[i].FullName(),
		}
		index[players[i].ID] = &stats[i]
	}

	for i := range events {
		if !events[i].IsPlayedMatch() {
			continue
		}
		for _, line := range events[i].Scorers {
			if entry, ok := index[line.PlayerID]; ok {
				entry.Goals += line.Count
			}
		}
		for _, line := range events[i].Assists {
			if entry, ok := index[line.PlayerID]; ok {
				entry.Assists += line.Count
			}
		}
	}
	return stats
}

func buildLeaderboard(stats []models.CombinedStat, count func(models.CombinedStat) int) Leaderboard {
	ranked := make([]models.CombinedStat, 0, len(stats))
	for _, s := range stats {
		if count(s) > 0 {
			ranked = append(ranked, s)
		}
	}
	// Stable sort keeps roster order between tied players.
	sort.SliceStable(ranked, func(i, j int) bool {
		return count(ranked[i]) > count(ranked[j])
	})

	board := Leaderboard{Podium: []LeaderboardEntry{}, Table: []LeaderboardEntry{}}
	for i, s := range ranked {
		entry := LeaderboardEntry{
			Rank:     i + 1,
			PlayerID: s.PlayerID,
			Name:     s.Name,
			Goals:    s.Goals,
			Assists:  s.Assists,
		}
		if entry.Rank <= PodiumSize {
			board.Podium = append(board.Podium, entry)
		} else {
			board.Table = append(board.Table, entry)
		}
	}
	return board
}

// TopScorers ranks players by goals, descending.
func TopScorers(stats []models.CombinedStat) Leaderboard {
	return buildLeaderboard(stats, func(s models.CombinedStat) int { return s.Goals })
}

// TopAssists ranks players by assists, descending.
func TopAssists(stats []models.CombinedStat) Leaderboard {
	return buildLeaderboard(stats, func(s models.CombinedStat) int { return s.Assists })
}

// ResolvePlayerName returns the roster name for a player ID, or
// UnknownPlayerName when the reference dangles.
func ResolvePlayerName(players []models.Player, playerID int64) string {
	for i := range players {
		if players[i].ID == playerID {
			return players[i].FullName()
		}
	}
	return UnknownPlayerName
}

// --- StatsService Interface ---
type StatsService interface {
	GetLeaderboards(actor models.AuthContext) (*LeaderboardsResponse, error)
	GetMatchSummary(actor models.AuthContext, eventID int64) (*MatchSummary, error)
	GetDashboardSummary(actor models.AuthContext) (*DashboardSummary, error)
}

type statsService struct {
	playerRepo  repositories.PlayerRepository
	coachRepo   repositories.CoachRepository
	eventRepo   repositories.EventRepository
	paymentRepo repositories.PaymentRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(playerRepo repositories.PlayerRepository, coachRepo repositories.CoachRepository, eventRepo repositories.EventRepository, paymentRepo repositories.PaymentRepository) StatsService {
	return &statsService{
		playerRepo:  playerRepo,
		coachRepo:   coachRepo,
		eventRepo:   eventRepo,
		paymentRepo: paymentRepo,
	}
}

// GetLeaderboards takes a fresh snapshot of the roster and the event list and
// runs the aggregator over it.
func (s *statsService) GetLeaderboards(actor models.AuthContext) (*LeaderboardsResponse, error) {
	players, err := s.playerRepo.GetAllPlayers(actor.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for statistics: %w", err)
	}
	events, err := s.eventRepo.GetAllEventsWithStats(actor.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for statistics: %w", err)
	}

	combined := CombineStats(players, events)
	return &LeaderboardsResponse{
		Scorers:  TopScorers(combined),
		Assists:  TopAssists(combined),
		Combined: combined,
	}, nil
}

// GetMatchSummary renders one match's stat lines with player names resolved.
func (s *statsService) GetMatchSummary(actor models.AuthContext, eventID int64) (*MatchSummary, error) {
	event, err := s.eventRepo.GetEventByID(actor.TeamID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event for match summary: %w", err)
	}
	players, err := s.playerRepo.GetAllPlayers(actor.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for match summary: %w", err)
	}

	summary := &MatchSummary{
		EventID:  event.ID,
		Date:     event.Date,
		Opponent: event.Opponent,
		Result:   event.Result,
		Scorers:  []StatLineView{},
		Assists:  []StatLineView{},
	}
	for _, line := range event.Scorers {
		summary.Scorers = append(summary.Scorers, StatLineView{
			PlayerID: line.PlayerID,
			Name:     ResolvePlayerName(players, line.PlayerID),
			Count:    line.Count,
		})
	}
	for _, line := range event.Assists {
		summary.Assists = append(summary.Assists, StatLineView{
			PlayerID: line.PlayerID,
			Name:     ResolvePlayerName(players, line.PlayerID),
			Count:    line.Count,
		})
	}
	return summary, nil
}

// GetDashboardSummary computes the landing-page counters from full snapshots.
// Collections are small enough to aggregate in memory.
func (s *statsService) GetDashboardSummary(actor models.AuthContext) (*DashboardSummary, error) {
	players, err := s.playerRepo.GetAllPlayers(actor.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}
	_, coachCount, err := s.coachRepo.GetCoaches(actor.TeamID, 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count coaches: %w", err)
	}
	events, err := s.eventRepo.GetAllEventsWithStats(actor.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for summary: %w", err)
	}
	payments, _, err := s.paymentRepo.GetPayments(actor.TeamID, 0, 0, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments for summary: %w", err)
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	summary := &DashboardSummary{
		PlayerCount: len(players),
		CoachCount:  coachCount,
	}
	for i := range events {
		if events[i].Date >= today {
			summary.UpcomingEvents++
		}
	}
	for i := range payments {
		switch DerivePaymentStatus(payments[i].Remaining, payments[i].DueDate, now) {
		case models.PaymentStatusPending:
			summary.PendingPayments++
			summary.OutstandingAmount += payments[i].Remaining
		case models.PaymentStatusOverdue:
			summary.OverduePayments++
			summary.OutstandingAmount += payments[i].Remaining
		}
	}
	return summary, nil
}
