package service

import (
	"context"
	"slices"

	"github.com/zuca/portal/internal/model"
)

// EmptyStandings is shown when nobody has points yet.
const EmptyStandings = "No participants recorded yet. Join the trivia to see yourself here!"

const medalRanks = 3

type LeaderboardEntry struct {
	Rank       int
	User       model.User
	IsViewer   bool
	IsTrainer  bool
	IsMedalist bool
}

// RankUsers orders users by points, highest first. Ties keep their stored
// order and still take consecutive ranks.
func RankUsers(users []model.User, viewerID string) []LeaderboardEntry {
	sorted := slices.Clone(users)
	slices.SortStableFunc(sorted, func(a, b model.User) int {
		return b.Points - a.Points
	})

	entries := make([]LeaderboardEntry, len(sorted))
	for i, u := range sorted {
		rank := i + 1
		entries[i] = LeaderboardEntry{
			Rank:       rank,
			User:       u,
			IsViewer:   viewerID != "" && u.ID == viewerID,
			IsTrainer:  u.IsTrainer(),
			IsMedalist: rank <= medalRanks,
		}
	}
	return entries
}

type LeaderboardService struct {
	userService *UserService
}

func NewLeaderboardService(userService *UserService) *LeaderboardService {
	return &LeaderboardService{userService: userService}
}

func (s *LeaderboardService) Standings(ctx context.Context, viewerID string) ([]LeaderboardEntry, error) {
	users, err := s.userService.List(ctx)
	if err != nil {
		return nil, err
	}
	return RankUsers(users, viewerID), nil
}
