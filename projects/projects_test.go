package projects_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/captal-web/apiclient"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/internal/utils"
	"github.com/jrsteele09/captal-web/projects"
	"github.com/jrsteele09/captal-web/projects/repofake"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []projects.Project {
	return []projects.Project{
		{ID: "1", Name: "Residencial Aurora", Location: "São Paulo", Status: projects.StatusPending, ExpectedRevenue: 1000},
		{ID: "2", Name: "Torre Atlântica", Location: "Rio de Janeiro", Status: projects.StatusApproved, ExpectedRevenue: 2500.5},
		{ID: "3", Name: "Vila Verde", Location: "Curitiba", Status: projects.StatusRejected, ExpectedRevenue: 900},
		{ID: "4", Name: "Parque das Águas", Location: "são josé", Status: projects.StatusApproved, ExpectedRevenue: 499.5},
	}
}

func ids(list []projects.Project) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	list := sampleProjects()

	tests := []struct {
		name   string
		filter projects.Filter
		want   []string
	}{
		{"empty filter keeps everything", projects.Filter{}, []string{"1", "2", "3", "4"}},
		{"all status keeps everything", projects.Filter{Status: projects.StatusAll}, []string{"1", "2", "3", "4"}},
		{"status only", projects.Filter{Status: "approved"}, []string{"2", "4"}},
		{"search by name is case-insensitive", projects.Filter{Search: "TORRE"}, []string{"2"}},
		{"search matches location", projects.Filter{Search: "são"}, []string{"1", "4"}},
		{"search and status are conjunctive", projects.Filter{Search: "são", Status: "approved"}, []string{"4"}},
		{"no match", projects.Filter{Search: "xyz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(tt.filter.Apply(list)))
		})
	}
}

func TestFold(t *testing.T) {
	stats := projects.Fold(sampleProjects())
	require.Equal(t, projects.Stats{
		Total:           4,
		Pending:         1,
		Approved:        2,
		Rejected:        1,
		ApprovedRevenue: 3000,
	}, stats)

	require.Equal(t, projects.Stats{}, projects.Fold(nil))
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	var p projects.Project
	err := json.Unmarshal([]byte(`{"id":"1","landArea":"1500.50","estimatedCost":200000,"expectedRevenue":null,"status":"pending"}`), &p)
	require.NoError(t, err)
	require.Equal(t, 1500.5, p.LandArea.Float())
	require.Equal(t, 200000.0, p.EstimatedCost.Float())
	require.Zero(t, p.ExpectedRevenue.Float())

	err = json.Unmarshal([]byte(`{"landArea":"muito"}`), &p)
	require.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	s, err := projects.ParseStatus(" Approved ")
	require.NoError(t, err)
	require.Equal(t, projects.StatusApproved, s)
	require.Equal(t, "Aprovado", s.Label())

	_, err = projects.ParseStatus("archived")
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestProject_Created(t *testing.T) {
	p := projects.Project{CreatedAt: "2024-03-05T10:00:00Z"}
	require.Equal(t, 2024, p.Created().Year())
	require.True(t, projects.Project{CreatedAt: "yesterday"}.Created().IsZero())
}

type apiCall struct {
	method string
	uri    string
	body   string
}

func newAPIRepo(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*projects.APIRepo, *[]apiCall) {
	t.Helper()
	var calls []apiCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, apiCall{method: r.Method, uri: r.URL.RequestURI(), body: string(body)})
		w.Header().Set("Content-Type", "application/json")
		respond(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return projects.NewAPIRepo(client), &calls
}

func TestAPIRepo_List(t *testing.T) {
	repo, calls := newAPIRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode":200,"timestamp":"2024-01-01T00:00:00Z","path":"/projects","data":[
			{"id":"1","name":"Aurora","landArea":"1200","estimatedCost":"500000.00","expectedRevenue":900000,"status":"pending"}]}`)
	})

	list, err := repo.List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1200.0, list[0].LandArea.Float())
	require.Equal(t, 500000.0, list[0].EstimatedCost.Float())
	require.Equal(t, "/projects?limit=10&page=1", (*calls)[0].uri)
}

func TestAPIRepo_Writes(t *testing.T) {
	repo, calls := newAPIRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"id":"p1","name":"Aurora","status":"approved"}}`)
	})
	ctx := context.Background()

	created, err := repo.Create(ctx, projects.NewProject{Name: "Aurora", Location: "SP", LandArea: 10, EstimatedCost: 20, ExpectedRevenue: 30})
	require.NoError(t, err)
	require.Equal(t, "p1", created.ID)

	_, err = repo.Update(ctx, "p1", projects.Changes{Name: utils.Ptr("Aurora II")})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, "p1", projects.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, projects.StatusApproved, updated.Status)

	_, err = repo.UpdateProgress(ctx, "p1", 40)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "p1"))

	require.Equal(t, []apiCall{
		{http.MethodPost, "/projects", `{"name":"Aurora","location":"SP","landArea":10,"estimatedCost":20,"expectedRevenue":30}`},
		{http.MethodPut, "/projects/p1", `{"name":"Aurora II"}`},
		{http.MethodPatch, "/projects/p1/status", `{"status":"approved"}`},
		{http.MethodPatch, "/projects/p1/progress", `{"progress":40}`},
		{http.MethodDelete, "/projects/p1", ``},
	}, *calls)
}

func TestAPIRepo_RejectsInvalidInputLocally(t *testing.T) {
	repo, calls := newAPIRepo(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()

	_, err := repo.UpdateStatus(ctx, "p1", "archived")
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	_, err = repo.UpdateProgress(ctx, "p1", 101)
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	require.Empty(t, *calls)
}

func TestAPIRepo_NotFound(t *testing.T) {
	repo, _ := newAPIRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Project not found"}`)
	})

	_, err := repo.Get(context.Background(), "missing")
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	require.Equal(t, "Project not found", apiclient.ServerMessage(err))
}

func TestAPIRepo_Stats(t *testing.T) {
	repo, _ := newAPIRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"totalProjects":3,"completedProjects":1,"inProgressProjects":2,"totalBudget":"1500.5","totalSpent":200,"averageProgress":33.3}}`)
	})

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalProjects)
	require.Equal(t, 1500.5, stats.TotalBudget.Float())
}

func TestFakeProjectRepo(t *testing.T) {
	ctx := context.Background()
	repo := repofake.NewFakeProjectRepo(sampleProjects()...)

	page, err := repo.List(ctx, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"4"}, ids(page))

	created, err := repo.Create(ctx, projects.NewProject{Name: "Novo", Location: "BH", LandArea: 1, EstimatedCost: 1, ExpectedRevenue: 1})
	require.NoError(t, err)
	require.Equal(t, projects.StatusPending, created.Status)

	_, err = repo.UpdateStatus(ctx, created.ID, projects.StatusApproved)
	require.NoError(t, err)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, stats.TotalProjects)
	require.Equal(t, 3, stats.CompletedProjects)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
