package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
)

type statsProviderMock struct {
	mock.Mock
}

func (m *statsProviderMock) CommonAllPlayers(ctx context.Context, season string) ([]gamelog.Row, error) {
	args := m.Called(ctx, season)
	rows, _ := args.Get(0).([]gamelog.Row)
	return rows, args.Error(1)
}

func (m *statsProviderMock) PlayerGameLogs(ctx context.Context, playerID int64, season, seasonType string) ([]gamelog.Row, error) {
	args := m.Called(ctx, playerID, season, seasonType)
	rows, _ := args.Get(0).([]gamelog.Row)
	return rows, args.Error(1)
}

func TestTrendsService_PassesQueryThroughToProvider(t *testing.T) {
	t.Parallel()

	provider := &statsProviderMock{}
	service := newTestTrendsService(provider, t.TempDir())

	provider.
		On("PlayerGameLogs", mock.Anything, int64(203507), "2024-25", "Playoffs").
		Return([]gamelog.Row{{"GAME_DATE": "2025-04-20", "PTS": float64(28)}}, nil).
		Once()

	result, err := service.PlayerTrends(context.Background(), TrendQuery{
		PlayerID:   203507,
		Source:     "overall",
		Season:     "2024-25",
		SeasonType: "Playoffs",
	})
	if err != nil {
		t.Fatalf("PlayerTrends: %v", err)
	}
	if result.Season != "2024-25" || result.SeasonType != "Playoffs" || result.Count != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	provider.AssertExpectations(t)
}
