package games

import (
	"context"
	"errors"
	"math/rand"
	"storefront/domain"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"strings"
	"sync"
)

// MaxSimulatedPrice is the inclusive upper bound of a simulated game price.
const MaxSimulatedPrice = 50

// CatalogRepository contract interface
type CatalogRepository interface {
	ListGames(ctx context.Context) ([]domain.Game, error)
	GetGame(ctx context.Context, id int64) (domain.GameDetail, error)
}

type gamesService struct {
	catalog CatalogRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGamesService(catalog CatalogRepository, rng *rand.Rand) *gamesService {
	return &gamesService{
		catalog: catalog,
		rng:     rng,
	}
}

func (s *gamesService) ListGames(ctx context.Context) ([]domain.Game, error) {
	games, err := s.catalog.ListGames(ctx)
	if err != nil {
		s.upstreamFailed("failed to list games", err)
		return nil, err
	}

	return games, nil
}

func (s *gamesService) GetGame(ctx context.Context, id int64) (domain.GameDetail, error) {
	if id <= 0 {
		return domain.GameDetail{}, apperror.NotFound("game not found")
	}

	game, err := s.catalog.GetGame(ctx, id)
	if err != nil {
		s.upstreamFailed("failed to get game", err)
		return domain.GameDetail{}, err
	}

	return game, nil
}

// SearchGames filters the catalog by case-insensitive substring on title
// and short description. With a max price set, every remaining game gets a
// simulated price and only those at or under the max are kept.
func (s *gamesService) SearchGames(ctx context.Context, filter domain.GameFilter) ([]domain.Game, error) {
	games, err := s.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(filter.Name)
	about := strings.ToLower(filter.About)

	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if name != "" && !strings.Contains(strings.ToLower(g.Title), name) {
			continue
		}
		if about != "" && !strings.Contains(strings.ToLower(g.ShortDescription), about) {
			continue
		}
		if filter.MaxPrice != nil {
			price := s.price()
			if price > *filter.MaxPrice {
				continue
			}
			g.Price = &price
		}
		out = append(out, g)
	}

	return out, nil
}

func (s *gamesService) price() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(MaxSimulatedPrice + 1)
}

func (s *gamesService) upstreamFailed(msg string, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		return
	}
	metrics.GamesUpstreamErrors.Inc()
	logger.Error(msg, err)
}
