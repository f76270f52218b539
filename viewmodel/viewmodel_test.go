package viewmodel_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jrsteele09/captal-web/about"
	"github.com/jrsteele09/captal-web/apiclient"
	"github.com/jrsteele09/captal-web/auth"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/projects"
	"github.com/jrsteele09/captal-web/projects/repofake"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/token"
	"github.com/jrsteele09/captal-web/viewmodel"
	"github.com/stretchr/testify/require"
)

var admin = token.Claims{Name: "Ana", Role: token.RoleAdmin}
var developer = token.Claims{Name: "Bruno", Role: "developer"}

func seededRepo() *repofake.FakeProjectRepo {
	return repofake.NewFakeProjectRepo(
		projects.Project{ID: "1", Name: "Aurora", Location: "São Paulo", Status: projects.StatusPending, ExpectedRevenue: 100},
		projects.Project{ID: "2", Name: "Atlântica", Location: "Rio", Status: projects.StatusApproved, ExpectedRevenue: 250},
		projects.Project{ID: "3", Name: "Verde", Location: "Curitiba", Status: projects.StatusRejected, ExpectedRevenue: 75},
	)
}

func TestMessageFor(t *testing.T) {
	m := viewmodel.Messages{
		Fallback: "fallback",
		Status:   map[int]string{http.StatusBadRequest: "bad request"},
	}

	require.Equal(t, "", viewmodel.MessageFor(nil, m))
	require.Equal(t, "server says", viewmodel.MessageFor(&apiclient.APIError{StatusCode: 400, Message: "server says"}, m))
	require.Equal(t, "bad request", viewmodel.MessageFor(&apiclient.APIError{StatusCode: 400}, m))
	require.Equal(t, "fallback", viewmodel.MessageFor(&apiclient.APIError{StatusCode: 500}, m))
	require.Equal(t, "fallback", viewmodel.MessageFor(errors.New("dial tcp: refused"), m))
	require.Equal(t, viewmodel.MsgSessionExpired, viewmodel.MessageFor(apperrors.ErrSessionExpired, m))

	m.StatusFirst = true
	require.Equal(t, "bad request", viewmodel.MessageFor(&apiclient.APIError{StatusCode: 400, Message: "server says"}, m))
}

type fakeSignIn struct {
	result auth.SignInResult
	err    error
	calls  int
}

func (f *fakeSignIn) SignIn(context.Context, auth.SignInRequest) (auth.SignInResult, error) {
	f.calls++
	return f.result, f.err
}

func TestLogin_Submit(t *testing.T) {
	newSession := func() *session.Session { return session.NewManager().Load(session.NewMemoryStore()) }
	ctx := context.Background()

	t.Run("success stores tokens", func(t *testing.T) {
		svc := &fakeSignIn{result: auth.SignInResult{
			User:   auth.User{Name: "Ana"},
			Tokens: auth.Tokens{AccessToken: "a", RefreshToken: "r", IDToken: "i", ExpiresIn: 3600},
		}}
		sess := newSession()
		l := viewmodel.NewLogin(svc)

		require.True(t, l.Submit(ctx, auth.LoginForm{Email: " ana@captal.com ", Password: "Abcdef1!"}, sess))
		require.Equal(t, "a", sess.AccessToken())
		require.Equal(t, "Bearer", sess.TokenType())
		require.Equal(t, "Ana", l.User.Name)
		require.WithinDuration(t, time.Now().Add(1800*time.Second), mustExpiry(t, sess), 2*time.Second)
	})

	t.Run("validation stops before the API", func(t *testing.T) {
		svc := &fakeSignIn{}
		l := viewmodel.NewLogin(svc)
		require.False(t, l.Submit(ctx, auth.LoginForm{Email: "ana", Password: "1"}, newSession()))
		require.Equal(t, auth.MsgInvalidEmail, l.FieldErrors["email"])
		require.Zero(t, svc.calls)
	})

	t.Run("server message", func(t *testing.T) {
		l := viewmodel.NewLogin(&fakeSignIn{err: &apiclient.APIError{StatusCode: 401, Message: "Email ou senha incorretos"}})
		require.False(t, l.Submit(ctx, auth.LoginForm{Email: "ana@captal.com", Password: "Abcdef1!"}, newSession()))
		require.Equal(t, "Email ou senha incorretos", l.Error)
	})

	t.Run("unknown failure", func(t *testing.T) {
		sess := newSession()
		l := viewmodel.NewLogin(&fakeSignIn{err: errors.New("connection reset")})
		require.False(t, l.Submit(ctx, auth.LoginForm{Email: "ana@captal.com", Password: "Abcdef1!"}, sess))
		require.Equal(t, viewmodel.MsgLoginFailed, l.Error)
		require.False(t, sess.IsAuthenticated())
	})
}

func mustExpiry(t *testing.T, sess *session.Session) time.Time {
	t.Helper()
	at, ok := sess.ExpiresAt()
	require.True(t, ok)
	return at
}

func TestLoadHome(t *testing.T) {
	ctx := context.Background()

	h, err := viewmodel.LoadHome(ctx, seededRepo(), admin)
	require.NoError(t, err)
	require.True(t, h.Loaded)
	require.Equal(t, "Ana", h.UserName)
	require.Equal(t, projects.Stats{Total: 3, Pending: 1, Approved: 1, Rejected: 1, ApprovedRevenue: 250}, h.Stats)

	t.Run("no role means no fetch", func(t *testing.T) {
		repo := seededRepo()
		repo.Err = errors.New("must not be called")
		h, err := viewmodel.LoadHome(ctx, repo, token.Fallback())
		require.NoError(t, err)
		require.False(t, h.Loaded)
		require.Empty(t, h.Error)
		require.Equal(t, "User", h.UserName)
	})

	t.Run("failure resets stats", func(t *testing.T) {
		repo := seededRepo()
		repo.Err = &apiclient.APIError{StatusCode: 500}
		h, err := viewmodel.LoadHome(ctx, repo, admin)
		require.NoError(t, err)
		require.Equal(t, viewmodel.MsgLoadProjects, h.Error)
		require.Equal(t, projects.Stats{}, h.Stats)
		require.Empty(t, h.Projects)
	})

	t.Run("session expiry is returned", func(t *testing.T) {
		repo := seededRepo()
		repo.Err = apperrors.Wrapf(apperrors.ErrSessionExpired, "refresh")
		_, err := viewmodel.LoadHome(ctx, repo, admin)
		require.True(t, apperrors.Is(err, apperrors.ErrSessionExpired))
	})
}

func TestProjects_LoadAndFilter(t *testing.T) {
	ctx := context.Background()
	vm := viewmodel.NewProjects(seededRepo(), developer)

	require.NoError(t, vm.Load(ctx))
	require.Len(t, vm.Filtered, 3)

	vm.SetFilter(projects.Filter{Search: "AUR"})
	require.Len(t, vm.Filtered, 1)
	require.Equal(t, "1", vm.Filtered[0].ID)

	vm.SetFilter(projects.Filter{Status: "rejected"})
	require.Len(t, vm.Filtered, 1)
	require.Equal(t, "3", vm.Filtered[0].ID)

	vm.SetFilter(projects.Filter{})
	require.Equal(t, projects.StatusAll, vm.Filter.Status)
	require.Len(t, vm.Filtered, 3)
}

func TestProjects_LoadFailure(t *testing.T) {
	repo := seededRepo()
	repo.Err = &apiclient.APIError{StatusCode: 503}
	vm := viewmodel.NewProjects(repo, developer)

	require.NoError(t, vm.Load(context.Background()))
	require.Equal(t, viewmodel.MsgLoadProjects, vm.Error)
	require.Empty(t, vm.All)
}

func TestProjects_Create(t *testing.T) {
	ctx := context.Background()
	valid := viewmodel.ProjectForm{Name: "Nova Torre", Location: "Recife", LandArea: "1500,5", EstimatedCost: "200000", ExpectedRevenue: "350000.75"}

	t.Run("success appends and closes the modal", func(t *testing.T) {
		vm := viewmodel.NewProjects(seededRepo(), developer)
		require.NoError(t, vm.Load(ctx))
		vm.OpenCreate()

		created, err := vm.Create(ctx, valid)
		require.NoError(t, err)
		require.Equal(t, 1500.5, created.LandArea.Float())
		require.Equal(t, 350000.75, created.ExpectedRevenue.Float())
		require.False(t, vm.CreateOpen)
		require.Len(t, vm.All, 4)
		require.Equal(t, created.ID, vm.All[3].ID)
	})

	t.Run("validation keeps the modal open", func(t *testing.T) {
		vm := viewmodel.NewProjects(seededRepo(), developer)
		_, err := vm.Create(ctx, viewmodel.ProjectForm{LandArea: "abc", EstimatedCost: "0", ExpectedRevenue: "-1"})
		require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		require.True(t, vm.CreateOpen)
		require.Equal(t, map[string]string{
			"name":            viewmodel.MsgProjectNameRequired,
			"location":        viewmodel.MsgProjectLocationRequired,
			"landArea":        viewmodel.MsgLandAreaInvalid,
			"estimatedCost":   viewmodel.MsgEstimatedCostPositive,
			"expectedRevenue": viewmodel.MsgExpectedRevenuePositive,
		}, vm.CreateFieldErrors)
	})

	t.Run("api failure", func(t *testing.T) {
		repo := seededRepo()
		vm := viewmodel.NewProjects(repo, developer)
		repo.Err = &apiclient.APIError{StatusCode: 500}
		_, err := vm.Create(ctx, valid)
		require.Error(t, err)
		require.True(t, vm.CreateOpen)
		require.Equal(t, viewmodel.MsgCreateProject, vm.CreateError)

		repo.Err = &apiclient.APIError{StatusCode: 400, Message: "Nome já cadastrado"}
		_, _ = vm.Create(ctx, valid)
		require.Equal(t, "Nome já cadastrado", vm.CreateError)
	})
}

func TestProjects_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("admin approves", func(t *testing.T) {
		vm := viewmodel.NewProjects(seededRepo(), admin)
		require.NoError(t, vm.Load(ctx))
		require.True(t, vm.CanReview(vm.All[0]))
		require.False(t, vm.CanReview(vm.All[1]))

		updated, err := vm.UpdateStatus(ctx, "1", projects.StatusApproved)
		require.NoError(t, err)
		require.Equal(t, projects.StatusApproved, updated.Status)
		require.Equal(t, projects.StatusApproved, vm.All[0].Status)
		require.False(t, vm.CanReview(vm.All[0]))
	})

	t.Run("developer cannot", func(t *testing.T) {
		vm := viewmodel.NewProjects(seededRepo(), developer)
		require.NoError(t, vm.Load(ctx))
		require.False(t, vm.CanReview(vm.All[0]))

		_, err := vm.UpdateStatus(ctx, "1", projects.StatusApproved)
		require.True(t, apperrors.Is(err, apperrors.ErrNotAuthorized))
		require.Equal(t, projects.StatusPending, vm.All[0].Status)
	})
}

func TestProjects_Select(t *testing.T) {
	ctx := context.Background()
	vm := viewmodel.NewProjects(seededRepo(), developer)

	require.NoError(t, vm.Select(ctx, "2"))
	require.True(t, vm.DetailsOpen)
	require.Equal(t, "Atlântica", vm.Selected.Name)

	vm.CloseDetails()
	require.Nil(t, vm.Selected)

	require.NoError(t, vm.Select(ctx, "missing"))
	require.False(t, vm.DetailsOpen)
	require.Equal(t, viewmodel.MsgLoadProject, vm.Error)
}

type fakeAbout struct {
	info *about.Info
	err  error
}

func (f fakeAbout) Info(context.Context) (*about.Info, error) { return f.info, f.err }

func TestLoadAbout(t *testing.T) {
	a, err := viewmodel.LoadAbout(context.Background(), fakeAbout{info: &about.Info{Name: "Captal", Version: "1.0.0"}})
	require.NoError(t, err)
	require.Equal(t, "1.0.0", a.Info.Version)

	a, err = viewmodel.LoadAbout(context.Background(), fakeAbout{err: errors.New("down")})
	require.NoError(t, err)
	require.Equal(t, viewmodel.MsgLoadAbout, a.Error)
}

func TestIdentity(t *testing.T) {
	require.Equal(t, token.Fallback(), viewmodel.Identity(context.Background(), token.UnverifiedDecoder{}, nil))

	sess := session.NewManager().Load(session.NewMemoryStore())
	require.Equal(t, "User", viewmodel.Identity(context.Background(), token.UnverifiedDecoder{}, sess).Name)
}
