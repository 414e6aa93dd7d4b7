package states

import (
	"github.com/Faultbox/midgard-ui/internal/ui"
	"github.com/Faultbox/midgard-ui/internal/ui/panels"
)

// LoginState covers the screens from the login form up to character
// selection. Only the form is seeded; the login handlers drive the rest.
type LoginState struct {
	env *panels.Env
}

// NewLoginState creates the login state.
func NewLoginState(env *panels.Env) *LoginState {
	return &LoginState{env: env}
}

func (s *LoginState) Name() string { return "login" }

// Enter shows the login form.
func (s *LoginState) Enter(r *ui.Registry) error {
	r.Emplace(panels.NewLogin(s.env))
	return nil
}

// Exit is called when leaving this state.
func (s *LoginState) Exit(r *ui.Registry) error {
	return nil
}

// Update is called every tick.
func (s *LoginState) Update(dt float64) error {
	return nil
}
