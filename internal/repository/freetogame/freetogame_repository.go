package freetogame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"storefront/domain"
	"storefront/pkg/apperror"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.freetogame.com/api"

// errStatusNotFound is returned by get for an upstream 404. Only a lookup by
// id gives that status a meaning for callers.
var errStatusNotFound = errors.New("catalog responded 404")

type FreeToGameConfig struct {
	BaseURL string
	Timeout time.Duration
}

// FreeToGameRepository reads the public FreeToGame catalog. Nothing is
// cached; every call goes to the upstream API.
type FreeToGameRepository struct {
	baseURL string
	client  *http.Client
}

func NewFreeToGameRepository(cfg FreeToGameConfig) *FreeToGameRepository {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &FreeToGameRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *FreeToGameRepository) ListGames(ctx context.Context) ([]domain.Game, error) {
	var games []domain.Game
	if err := r.get(ctx, "/games", nil, &games); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, apperror.Upstream("catalog request failed", err)
		}
		return nil, err
	}
	if games == nil {
		games = []domain.Game{}
	}

	return games, nil
}

func (r *FreeToGameRepository) GetGame(ctx context.Context, id int64) (domain.GameDetail, error) {
	var raw json.RawMessage
	query := url.Values{"id": []string{strconv.FormatInt(id, 10)}}
	if err := r.get(ctx, "/game", query, &raw); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return domain.GameDetail{}, apperror.NotFound("game not found")
		}
		return domain.GameDetail{}, err
	}

	// the catalog answers unknown ids with a status object instead of a game
	var head struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || head.ID == 0 {
		return domain.GameDetail{}, apperror.NotFound("game not found")
	}

	var game domain.GameDetail
	if err := json.Unmarshal(raw, &game); err != nil {
		return domain.GameDetail{}, apperror.Upstream("failed to decode catalog response", err)
	}

	return game, nil
}

func (r *FreeToGameRepository) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := r.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperror.Internal("failed to build catalog request", err)
	}
	req.Header.Add("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return apperror.Upstream("failed to fetch games from catalog", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return apperror.Upstream("failed to read catalog response", err)
	}

	if res.StatusCode == http.StatusNotFound {
		return errStatusNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return apperror.Upstream("catalog request failed", fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperror.Upstream("failed to decode catalog response", err)
	}

	return nil
}
