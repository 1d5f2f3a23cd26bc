package freetogame

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *FreeToGameRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFreeToGameRepository(FreeToGameConfig{BaseURL: srv.URL})
}

func TestListGames(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Warframe","short_description":"Coop shooter"},{"id":2,"title":"Dota 2"}]`))
	})

	games, err := repo.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Warframe", games[0].Title)
	assert.Equal(t, "Coop shooter", games[0].ShortDescription)
	assert.Nil(t, games[0].Price)
}

func TestListGames_UpstreamFailure(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := repo.ListGames(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
}

func TestListGames_MalformedBody(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := repo.ListGames(context.Background())
	assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
}

func TestListGames_MissingEndpoint(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := repo.ListGames(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetGame(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/game", r.URL.Path)
		assert.Equal(t, "452", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"id":452,"title":"Call Of Duty: Warzone","status":"Live","screenshots":[{"id":1124,"image":"x.jpg"}]}`))
	})

	game, err := repo.GetGame(context.Background(), 452)
	require.NoError(t, err)
	assert.Equal(t, int64(452), game.ID)
	assert.Equal(t, "Live", game.Status)
	require.Len(t, game.Screenshots, 1)
}

func TestGetGame_UnknownID(t *testing.T) {
	t.Run("status object", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":0,"status_message":"No game found with this id!"}`))
		})
		_, err := repo.GetGame(context.Background(), 99999)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("404", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := repo.GetGame(context.Background(), 99999)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
