//go:build ebiten

package app

import (
	"log/slog"

	"magfield/internal/colorrange"
	"magfield/internal/render"
	"magfield/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a synthesized field session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.FieldPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	logger  *slog.Logger

	scale    int
	hudWidth int
}

// New constructs a Game for the provided session.
func New(s *Session, cfg *Config, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	size := s.Sim.Size()
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	hudWidth := cfg.HUDWidth
	if hudWidth < 0 {
		hudWidth = 0
	}
	return &Game{
		session:  s,
		painter:  render.NewFieldPainter(size.W, size.H, s.Mapper, cfg.Workers),
		overlay:  ui.NewOverlay(s.Sim, scale),
		hud:      ui.NewHUD(s.Sim, s.Range, s.Mapper, hudWidth),
		logger:   logger,
		scale:    scale,
		hudWidth: hudWidth,
	}
}

// heldCommands maps the arrow keys, which repeat while held, to range
// commands. Every held key applies each frame.
func heldCommands() []colorrange.Command {
	return colorrange.HeldCommands(
		ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
	)
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, cmd := range heldCommands() {
		g.session.Range.Apply(cmd)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Range.ResetToDefault()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.session.Resynthesize(); err != nil {
			g.logger.Error("resynthesis failed", "err", err)
		}
		g.painter.Invalidate()
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update(g.session.Sim.Size().W * g.scale)
	}
	return nil
}

// Draw renders the field, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.session.Sim.Grid(), g.session.Range.Value(), g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.session.Sim.Size().W*g.scale, g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
