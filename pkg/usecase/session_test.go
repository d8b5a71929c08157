package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/repository/memory"
	"github.com/chek-project/chek-kma/pkg/service/benchmark"
	"github.com/chek-project/chek-kma/pkg/service/chek"
	"github.com/chek-project/chek-kma/pkg/usecase"
)

type tokenCapturingAPI struct {
	mockAPI
	tokens interfaces.TokenSource
	seen   []string
}

func (a *tokenCapturingAPI) ListProjects(ctx context.Context) ([]model.Project, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	a.seen = append(a.seen, token)
	return []model.Project{{ID: 1, Name: "Alpha"}}, nil
}

func newUseCases(t *testing.T) (*usecase.UseCases, *[]*tokenCapturingAPI) {
	t.Helper()
	set, err := benchmark.Default()
	gt.NoError(t, err).Required()

	var apis []*tokenCapturingAPI
	uc, err := usecase.New(set, func(tokens interfaces.TokenSource) (interfaces.MaturityAPI, error) {
		api := &tokenCapturingAPI{tokens: tokens}
		apis = append(apis, api)
		return api, nil
	})
	gt.NoError(t, err).Required()
	return uc, &apis
}

func TestStorageToken(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewSessionStorage()
	source := usecase.NewStorageToken(storage)

	_, err := source.Token(ctx)
	gt.Error(t, err).Is(chek.ErrNoToken)

	storage.SetItem(usecase.AccessTokenKey, "abc")
	token, err := source.Token(ctx)
	gt.NoError(t, err)
	gt.V(t, token).Equal("abc")

	storage.SetItem(usecase.AccessTokenKey, "def")
	token, err = source.Token(ctx)
	gt.NoError(t, err)
	gt.V(t, token).Equal("def")
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	uc, apis := newUseCases(t)

	t.Run("empty token is rejected", func(t *testing.T) {
		_, err := uc.Sessions.Login(ctx, "", "")
		gt.Error(t, err).Is(usecase.ErrEmptyToken)
	})

	sess, err := uc.Sessions.Login(ctx, "", "tok-1")
	gt.NoError(t, err).Required()
	gt.Bool(t, sess.ID.IsValid()).True()
	gt.Bool(t, sess.Authenticated()).True()
	gt.V(t, uc.Sessions.Count()).Equal(1)

	got, ok := uc.Sessions.Get(sess.ID)
	gt.Bool(t, ok).True()
	gt.V(t, got.ID).Equal(sess.ID)

	t.Run("token is read fresh per request", func(t *testing.T) {
		gt.Bool(t, sess.Store.LoadProjects(ctx).OK()).True()

		again, err := uc.Sessions.Login(ctx, sess.ID, "tok-2")
		gt.NoError(t, err).Required()
		gt.V(t, again.ID).Equal(sess.ID)
		gt.Bool(t, sess.Store.LoadProjects(ctx).OK()).True()

		gt.A(t, *apis).Length(1)
		gt.V(t, (*apis)[0].seen).Equal([]string{"tok-1", "tok-2"})
	})

	t.Run("sessions do not share stores", func(t *testing.T) {
		other, err := uc.Sessions.Login(ctx, "", "tok-other")
		gt.NoError(t, err).Required()
		gt.V(t, other.ID).NotEqual(sess.ID)
		gt.Bool(t, other.Store.Projects() == nil).True()
		gt.Bool(t, sess.Store.Projects() != nil).True()
	})

	t.Run("logout clears token and projects", func(t *testing.T) {
		storage := sess.Storage
		store := sess.Store

		gt.NoError(t, uc.Sessions.Logout(ctx, sess.ID))

		_, ok := uc.Sessions.Get(sess.ID)
		gt.Bool(t, ok).False()
		_, ok = storage.GetItem(usecase.AccessTokenKey)
		gt.Bool(t, ok).False()
		gt.Bool(t, store.Projects() == nil).True()

		result := store.LoadProjects(ctx)
		gt.Bool(t, result.Notify).False()
		gt.Error(t, result.Err).Is(chek.ErrNoToken)
	})

	t.Run("logout of unknown session", func(t *testing.T) {
		err := uc.Sessions.Logout(ctx, types.NewSessionID())
		gt.Error(t, err).Is(usecase.ErrSessionNotFound)
	})
}

func TestExpireIdleSessions(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCases(t)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	uc.Sessions.SetClockForTest(func() time.Time { return now })

	idle, err := uc.Sessions.Login(ctx, "", "idle")
	gt.NoError(t, err).Required()
	active, err := uc.Sessions.Login(ctx, "", "active")
	gt.NoError(t, err).Required()

	now = now.Add(90 * time.Minute)
	_, ok := uc.Sessions.Get(active.ID)
	gt.Bool(t, ok).True()

	now = now.Add(time.Minute)
	gt.V(t, uc.Sessions.ExpireIdle(ctx, time.Hour)).Equal(1)

	_, ok = uc.Sessions.Get(idle.ID)
	gt.Bool(t, ok).False()
	_, ok = idle.Storage.GetItem(usecase.AccessTokenKey)
	gt.Bool(t, ok).False()

	_, ok = uc.Sessions.Get(active.ID)
	gt.Bool(t, ok).True()
	gt.V(t, uc.Sessions.Count()).Equal(1)
}
