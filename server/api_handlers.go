package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/jrsteele09/captal-web/auth"
	"github.com/jrsteele09/captal-web/flow"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/viewmodel"
)

const contentTypeJSON = "application/json"

// PasswordCheck is one line of the live password checklist
type PasswordCheck struct {
	Label string
	Met   bool
}

var passwordChecklist = []string{
	auth.MsgPasswordMin,
	auth.MsgPasswordLowercase,
	auth.MsgPasswordUppercase,
	auth.MsgPasswordNumber,
	auth.MsgPasswordSpecial,
}

func passwordChecks(password string) []PasswordCheck {
	problems := auth.PasswordProblems(password)
	checks := make([]PasswordCheck, 0, len(passwordChecklist))
	for _, label := range passwordChecklist {
		checks = append(checks, PasswordCheck{Label: label, Met: !slices.Contains(problems, label)})
	}
	return checks
}

// ValidatePasswordHandler renders the password checklist fragment for HTMX (POST /api/validate-password)
func (s *Server) ValidatePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		password := r.FormValue("password")
		if password == "" {
			password = r.FormValue("newPassword")
		}
		checks := passwordChecks(password)

		trigger := `{"passwordValid": ""}`
		if len(auth.PasswordProblems(password)) > 0 {
			trigger = `{"passwordInvalid": ""}`
		}
		w.Header().Set("HX-Trigger", trigger)
		s.render(w, r, "password_checklist.html", http.StatusOK, checks)
	}
}

// CodeCountdownHandler streams the seconds left before a code may be resent as
// Server-Sent Events (GET /api/code-countdown?flow=signup|recovery). Closing the
// page cancels the request context and with it the countdown.
func (s *Server) CodeCountdownHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := flow.Kind(r.URL.Query().Get("flow"))
		if kind != flow.KindSignUp && kind != flow.KindRecovery {
			http.Error(w, "unknown flow", http.StatusBadRequest)
			return
		}
		st, _ := flow.LoadState(s.flowStore(w, r), kind)
		remaining := flow.Remaining(st.SentAt(), session.NowTimeFunc(), s.codeCooldown)

		rc := http.NewResponseController(w)
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		send := func(event string, seconds int) {
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %d\n\n", event, seconds); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				requestLogger(r).Debug().Err(err).Msg("countdown flush failed")
			}
		}

		countdown := flow.NewCountdown(remaining)
		countdown.Interval = s.countdownInterval
		countdown.Start(r.Context(),
			func(left int) { send("tick", left) },
			func() { send("done", 0) },
		)
		<-countdown.Done()
	}
}

// ProjectStatsHandler returns the API's project aggregate as JSON (GET /api/projects/stats)
func (s *Server) ProjectStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.projects.Stats(r.Context())
		switch {
		case apperrors.Is(err, apperrors.ErrSessionExpired):
			writeJSON(w, r, http.StatusUnauthorized, map[string]string{"message": viewmodel.MsgSessionExpired})
			return
		case err != nil:
			requestLogger(r).Err(err).Msg("project stats failed")
			writeJSON(w, r, http.StatusBadGateway, map[string]string{"message": viewmodel.MsgLoadProjects})
			return
		}
		writeJSON(w, r, http.StatusOK, stats)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger(r).Err(err).Msg("failed to write JSON response")
	}
}
