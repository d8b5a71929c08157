package http

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/usecase"
	"github.com/chek-project/chek-kma/pkg/utils/errutil"
	"github.com/chek-project/chek-kma/pkg/utils/safe"
)

var pages = template.Must(template.New("pages").Parse(`
{{define "login"}}<!DOCTYPE html>
<html><head><title>CHEK KMA - Login</title></head><body>
<h1>Login</h1>
<form method="post" action="/login">
<label>Access token <input type="password" name="access_token"></label>
<button type="submit">Login</button>
</form>
</body></html>{{end}}

{{define "welcome"}}<!DOCTYPE html>
<html><head><title>CHEK KMA</title></head><body>
<h1>Welcome</h1>
{{if .Alert}}<p role="alert">{{.Alert}}</p>{{end}}
{{if .Projects}}<ul>{{range .Projects}}<li><a href="/projects/{{.ID}}">{{.Name}}</a></li>{{end}}</ul>
{{else}}<p>No projects loaded.</p>{{end}}
</body></html>{{end}}

{{define "project"}}<!DOCTYPE html>
<html><head><title>CHEK KMA - Project {{.ProjectID}}</title></head><body>
<h1>Project {{.ProjectID}}</h1>
{{if not .Loaded}}<p>Maturity data is loading.</p>{{else}}
{{range .Categories}}<h2>{{.Name}}</h2>
<table><tr><th>Label</th><th>Level</th><th>Benchmark</th></tr>
{{range .Items}}<tr><td>{{.Label}}</td><td>{{if .Level}}{{.Level.Int}}{{else}}-{{end}}</td><td>{{if .Benchmark}}{{.Benchmark.Int}}{{else}}<span class="no-benchmark">-</span>{{end}}</td></tr>
{{end}}</table>
{{end}}{{end}}
</body></html>{{end}}
`))

type welcomePage struct {
	Projects []model.Project
	Alert    string
}

type projectPageCategory struct {
	Name  string
	Items []model.AnsweredItem
}

type projectPage struct {
	ProjectID  types.ProjectID
	Loaded     bool
	Categories []projectPageCategory
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to render page", goerr.V("page", name)), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	safe.Write(r.Context(), w, buf.Bytes())
}

// homeHandler sends authenticated visitors from / to /welcome
func homeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/welcome", http.StatusFound)
}

func (s *Server) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "login", nil)
}

func (s *Server) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseForm(); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid login form"), http.StatusBadRequest)
		return
	}

	var current types.SessionID
	if sess, ok := sessionFromContext(r.Context()); ok {
		current = sess.ID
	}

	sess, err := s.uc.Sessions.Login(r.Context(), current, r.PostForm.Get("access_token"))
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyToken) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	s.setSessionCookie(w, sess.ID)
	http.Redirect(w, r, "/welcome", http.StatusSeeOther)
}

// welcomePageHandler loads projects on every visit, mirroring the dashboard entry view
func (s *Server) welcomePageHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	result := sess.Store.LoadProjects(r.Context())

	page := welcomePage{Projects: result.Projects}
	if result.Notify {
		page.Alert = result.Message
	}
	s.renderPage(w, r, "welcome", page)
}

func (s *Server) projectPageHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	projectID, err := types.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	data, ok := sess.Store.MaturityData(projectID)
	if !ok {
		data, ok = sess.Store.LoadMaturityData(r.Context(), projectID).Data, true
	}

	page := projectPage{ProjectID: projectID, Loaded: ok}
	for _, c := range types.AllMaturityCategories() {
		page.Categories = append(page.Categories, projectPageCategory{Name: c.String(), Items: data[c]})
	}
	s.renderPage(w, r, "project", page)
}
