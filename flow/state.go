// Package flow holds the multi-step sign-up and password-recovery forms and the
// verification-code countdown shared by both.
package flow

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/jrsteele09/captal-web/session"
)

const (
	// CookieName holds the state of the flow in progress
	CookieName = "captal_flow"
	// StateLifetime bounds how long an abandoned flow is remembered
	StateLifetime = 30 * time.Minute
)

type Kind string

const (
	KindSignUp   Kind = "signup"
	KindRecovery Kind = "recovery"
)

// State is what survives between form posts. Passwords are never kept.
type State struct {
	Kind       Kind   `json:"k"`
	Stage      string `json:"s"`
	Name       string `json:"n,omitempty"`
	Email      string `json:"e,omitempty"`
	CodeSentAt int64  `json:"c,omitempty"`
}

// SentAt returns when the last code was sent, zero when none was
func (s State) SentAt() time.Time {
	if s.CodeSentAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.CodeSentAt, 0)
}

// LoadState reads the flow of the given kind. A stored flow of another kind reads as absent.
func LoadState(store session.Store, kind Kind) (State, bool) {
	raw, ok := store.Get(CookieName)
	if !ok {
		return State{}, false
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return State{}, false
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil || st.Kind != kind {
		return State{}, false
	}
	return st, true
}

func SaveState(store session.Store, st State) {
	data, err := json.Marshal(st)
	if err != nil {
		return
	}
	store.Set(CookieName, base64.RawURLEncoding.EncodeToString(data), session.NowTimeFunc().Add(StateLifetime))
}

func ClearState(store session.Store) {
	store.Clear(CookieName)
}
