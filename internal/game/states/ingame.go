package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/logger"
	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
	"github.com/Faultbox/midgard-ui/internal/ui/panels"
)

// GameState is the in-game HUD of one character.
type GameState struct {
	env  *panels.Env
	char packets.CharEntry

	// MapName and MapSize seed the minimap when set.
	MapName string
	MapSize ui.Point

	// elapsed is the time spent in game, in seconds.
	elapsed float64
}

// NewGameState creates the in-game state for char.
func NewGameState(env *panels.Env, char packets.CharEntry) *GameState {
	return &GameState{env: env, char: char}
}

func (s *GameState) Name() string { return "ingame" }

// Character returns the character being played.
func (s *GameState) Character() packets.CharEntry { return s.char }

// Elapsed returns the seconds spent in this state.
func (s *GameState) Elapsed() float64 { return s.elapsed }

// Enter builds the HUD: status bar, minimap and chat bar.
func (s *GameState) Enter(r *ui.Registry) error {
	s.elapsed = 0
	r.Emplace(panels.NewStatusBar(s.env, s.char.Stats))

	mm := panels.NewMiniMap(s.env)
	if s.MapName != "" {
		mm.SetMap(s.MapName, s.MapSize)
	}
	r.Emplace(mm)

	chat := panels.NewChatBar(s.env)
	r.Emplace(chat)
	chat.AddMessage(panels.ChatSystem, "Welcome, "+s.char.Stats.Name+".")

	logger.Info("entered game", zap.String("character", s.char.Stats.Name), zap.Int32("cid", s.char.ID))
	return nil
}

// Exit is called when leaving this state.
func (s *GameState) Exit(r *ui.Registry) error {
	return nil
}

// Update is called every tick.
func (s *GameState) Update(dt float64) error {
	s.elapsed += dt
	return nil
}
