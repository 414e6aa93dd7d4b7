package panels

import (
	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	mapButtonMin ui.ButtonID = iota
	mapButtonNormal
	mapButtonMax
)

// MapMode is the display size of the minimap.
type MapMode uint8

const (
	MapMin MapMode = iota
	MapNormal
	MapMax
)

func (m MapMode) String() string {
	switch m {
	case MapMin:
		return "MIN"
	case MapNormal:
		return "NORMAL"
	case MapMax:
		return "MAX"
	default:
		return "UNKNOWN"
	}
}

// MarkerType is the kind of point drawn on the minimap.
type MarkerType uint8

const (
	MarkerParty MarkerType = iota
	MarkerNPC
	MarkerWarp
)

// Marker is a point of interest in tile coordinates.
type Marker struct {
	X, Y int
	Type MarkerType
}

const mapTitleH = 18

// mapSizes maps each mode to the edge of the map area.
var mapSizes = [...]int{MapMin: 0, MapNormal: 128, MapMax: 256}

// MiniMap is a draggable overview of the current map.
type MiniMap struct {
	ui.DragElement

	env     *Env
	mode    MapMode
	name    string
	size    ui.Point
	player  ui.Point
	markers []Marker
}

// NewMiniMap creates the minimap in the top right corner.
func NewMiniMap(env *Env) *MiniMap {
	p := &MiniMap{env: env}
	width := mapSizes[MapNormal] + 8
	s := env.screen()
	p.InitDrag(p, ui.Pt(s.X-width-8, 8), ui.Point{}, ui.Rect{Max: ui.Pt(width, mapTitleH)})
	p.Buttons[mapButtonMin] = ui.NewButton("-", ui.Rect{})
	p.Buttons[mapButtonNormal] = ui.NewButton("o", ui.Rect{})
	p.Buttons[mapButtonMax] = ui.NewButton("+", ui.Rect{})
	p.SetMode(MapNormal)
	return p
}

func (p *MiniMap) Type() ui.PanelType { return ui.MiniMap }

// Mode returns the display mode.
func (p *MiniMap) Mode() MapMode { return p.mode }

// SetMode resizes the window. The button for the current mode is hidden.
func (p *MiniMap) SetMode(m MapMode) {
	p.mode = m
	edge := mapSizes[m]
	width := max(edge, mapSizes[MapNormal]) + 8
	height := mapTitleH
	if edge > 0 {
		height += edge + 8
	}
	p.SetDimension(ui.Pt(width, height))
	p.Handle = ui.Rect{Max: ui.Pt(width-3*18, mapTitleH)}

	x := width - 3*18
	for _, id := range []ui.ButtonID{mapButtonMin, mapButtonNormal, mapButtonMax} {
		b := p.Buttons[id]
		b.Bounds = ui.RectAt(ui.Pt(x, 2), ui.Pt(16, 14))
		b.SetActive(MapMode(id) != m)
		x += 18
	}
}

// SetMap changes the displayed map. size is in tiles.
func (p *MiniMap) SetMap(name string, size ui.Point) {
	p.name = name
	p.size = size
	p.markers = p.markers[:0]
}

// MapName returns the displayed map name.
func (p *MiniMap) MapName() string { return p.name }

// SetPlayer moves the player marker to a tile.
func (p *MiniMap) SetPlayer(tile ui.Point) { p.player = tile }

// AddMarker adds a point of interest.
func (p *MiniMap) AddMarker(m Marker) { p.markers = append(p.markers, m) }

// ClearMarkers removes every point of interest.
func (p *MiniMap) ClearMarkers() { p.markers = p.markers[:0] }

func (p *MiniMap) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case mapButtonMin:
		p.SetMode(MapMin)
	case mapButtonNormal:
		p.SetMode(MapNormal)
	case mapButtonMax:
		p.SetMode(MapMax)
	}
	return ui.ButtonNormal
}

// toScreen maps a tile to a screen position inside the map area. The tile
// y axis points up.
func (p *MiniMap) toScreen(tile ui.Point, area ui.Rect) ui.Point {
	edge := area.Size()
	if p.size.X <= 0 || p.size.Y <= 0 {
		return area.Min.Add(ui.Pt(edge.X/2, edge.Y/2))
	}
	x := tile.X * edge.X / p.size.X
	y := edge.Y - tile.Y*edge.Y/p.size.Y
	return area.Min.Add(ui.Pt(x, y))
}

func (p *MiniMap) Draw(c ui.Canvas, alpha float32) {
	origin := p.Position()
	dim := p.Dimension()
	c.FillRect(ui.RectAt(origin, dim), ui.ColorPanelBg.Fade(alpha))
	c.FillRect(ui.RectAt(origin, ui.Pt(dim.X, mapTitleH)), ui.ColorTitleBar.Fade(alpha))
	c.StrokeRect(ui.RectAt(origin, dim), ui.ColorPanelBorder.Fade(alpha))

	title := p.name
	if title == "" {
		title = "Minimap"
	}
	c.DrawText(origin.Add(ui.Pt(6, 3)), title, ui.ColorWhite.Fade(alpha))
	p.DragElement.Draw(c, alpha)

	edge := mapSizes[p.mode]
	if edge == 0 {
		return
	}
	area := ui.RectAt(origin.Add(ui.Pt((dim.X-edge)/2, mapTitleH+4)), ui.Pt(edge, edge))
	c.FillRect(area, ui.ColorInputBg.Fade(alpha))
	c.StrokeRect(area, ui.ColorPanelBorder.Fade(alpha))

	for _, m := range p.markers {
		at := p.toScreen(ui.Pt(m.X, m.Y), area)
		c.FillRect(ui.RectAt(at.Sub(ui.Pt(1, 1)), ui.Pt(3, 3)), markerColor(m.Type).Fade(alpha))
	}
	at := p.toScreen(p.player, area)
	c.FillRect(ui.RectAt(at.Sub(ui.Pt(2, 2)), ui.Pt(5, 5)), ui.ColorWhite.Fade(alpha))
}

func markerColor(t MarkerType) ui.Color {
	switch t {
	case MarkerParty:
		return ui.RGB(128, 255, 128)
	case MarkerNPC:
		return ui.RGB(255, 255, 128)
	case MarkerWarp:
		return ui.ColorHP
	default:
		return ui.ColorTextDim
	}
}
