package services

import (
	"testing"

	"club_manager_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testRoster() []models.Player {
	return []models.Player{
		{ID: 1, FirstName: "Karim", LastName: "Benali"},
		{ID: 2, FirstName: "Lucas", LastName: "Moreau"},
		{ID: 3, FirstName: "Sofiane", LastName: "Traore"},
		{ID: 4, FirstName: "Hugo", LastName: "Petit"},
	}
}

func TestCombineStats(t *testing.T) {
	players := testRoster()
	events := []models.ClubEvent{
		{
			ID: 10, EventType: models.EventTypeMatch, Result: strPtr("3-1"),
			Scorers: []models.StatEvent{{PlayerID: 1, Count: 2}, {PlayerID: 2, Count: 1}},
			Assists: []models.StatEvent{{PlayerID: 3, Count: 2}},
		},
		{
			ID: 11, EventType: models.EventTypeMatch, Result: strPtr("1-1"),
			Scorers: []models.StatEvent{{PlayerID: 1, Count: 1}},
			Assists: []models.StatEvent{{PlayerID: 1, Count: 1}},
		},
		// Match without a result is not played yet, its lines must not count.
		{
			ID: 12, EventType: models.EventTypeMatch,
			Scorers: []models.StatEvent{{PlayerID: 2, Count: 5}},
		},
		// Trainings never contribute even if lines are present.
		{
			ID: 13, EventType: models.EventTypeTraining, Result: strPtr("done"),
			Scorers: []models.StatEvent{{PlayerID: 2, Count: 5}},
		},
		// Line for a player no longer on the roster is dropped.
		{
			ID: 14, EventType: models.EventTypeMatch, Result: strPtr("2-0"),
			Scorers: []models.StatEvent{{PlayerID: 99, Count: 2}},
		},
	}

	stats := CombineStats(players, events)
	require.Len(t, stats, 4)

	// Roster order is preserved and zero-count players stay in.
	assert.Equal(t, int64(1), stats[0].PlayerID)
	assert.Equal(t, "Karim Benali", stats[0].Name)
	assert.Equal(t, 3, stats[0].Goals)
	assert.Equal(t, 1, stats[0].Assists)

	assert.Equal(t, 1, stats[1].Goals)
	assert.Equal(t, 0, stats[1].Assists)

	assert.Equal(t, 0, stats[2].Goals)
	assert.Equal(t, 2, stats[2].Assists)

	assert.Equal(t, 0, stats[3].Goals)
	assert.Equal(t, 0, stats[3].Assists)
}

func TestTopScorersPodiumSplit(t *testing.T) {
	stats := []models.CombinedStat{
		{PlayerID: 1, Name: "A", Goals: 2},
		{PlayerID: 2, Name: "B", Goals: 9},
		{PlayerID: 3, Name: "C", Goals: 0},
		{PlayerID: 4, Name: "D", Goals: 5},
		{PlayerID: 5, Name: "E", Goals: 1},
		{PlayerID: 6, Name: "F", Goals: 7},
	}

	board := TopScorers(stats)
	require.Len(t, board.Podium, 3)
	require.Len(t, board.Table, 2)

	assert.Equal(t, int64(2), board.Podium[0].PlayerID)
	assert.Equal(t, 1, board.Podium[0].Rank)
	assert.Equal(t, int64(6), board.Podium[1].PlayerID)
	assert.Equal(t, int64(4), board.Podium[2].PlayerID)

	assert.Equal(t, int64(1), board.Table[0].PlayerID)
	assert.Equal(t, 4, board.Table[0].Rank)
	assert.Equal(t, int64(5), board.Table[1].PlayerID)
	assert.Equal(t, 5, board.Table[1].Rank)
}

func TestTopScorersTieKeepsRosterOrder(t *testing.T) {
	stats := []models.CombinedStat{
		{PlayerID: 1, Name: "A", Goals: 3},
		{PlayerID: 2, Name: "B", Goals: 3},
		{PlayerID: 3, Name: "C", Goals: 3},
	}

	board := TopScorers(stats)
	require.Len(t, board.Podium, 3)
	assert.Equal(t, int64(1), board.Podium[0].PlayerID)
	assert.Equal(t, int64(2), board.Podium[1].PlayerID)
	assert.Equal(t, int64(3), board.Podium[2].PlayerID)
}

func TestTopAssistsFiltersZeroCounts(t *testing.T) {
	stats := []models.CombinedStat{
		{PlayerID: 1, Name: "A", Assists: 0},
		{PlayerID: 2, Name: "B", Assists: 4},
	}

	board := TopAssists(stats)
	require.Len(t, board.Podium, 1)
	assert.Empty(t, board.Table)
	assert.Equal(t, int64(2), board.Podium[0].PlayerID)
}

func TestLeaderboardEmptyWithoutStats(t *testing.T) {
	board := TopScorers(CombineStats(testRoster(), nil))
	assert.Empty(t, board.Podium)
	assert.Empty(t, board.Table)
}

func TestResolvePlayerName(t *testing.T) {
	players := testRoster()
	assert.Equal(t, "Lucas Moreau", ResolvePlayerName(players, 2))
	assert.Equal(t, UnknownPlayerName, ResolvePlayerName(players, 42))
}
