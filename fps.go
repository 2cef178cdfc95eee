package grove

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshInterval = 0.5 // seconds

// fpsCounter refreshes the shared label text; fpsLabel prints it. They are
// two components because each component carries a single tag.
type fpsCounter struct {
	label   *fpsLabel
	elapsed float64
}

func (*fpsCounter) ComponentType() *ComponentType { return UpdateComponentType }

func (c *fpsCounter) Update(_ *Scene, dt float64) {
	c.elapsed += dt
	if c.elapsed < fpsRefreshInterval && c.label.text != "" {
		return
	}
	c.elapsed = 0
	c.label.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

type fpsLabel struct {
	node *Node
	text string
}

func (*fpsLabel) ComponentType() *ComponentType { return DrawComponentType }

func (l *fpsLabel) OnAttach(n *Node) { l.node = n }

func (l *fpsLabel) Draw(_ *Scene, screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, l.text, int(l.node.X), int(l.node.Y))
}

// NewFPSWidget creates a node that displays the current FPS and TPS at its
// X/Y position, refreshed every ~0.5 seconds.
func NewFPSWidget() *Node {
	node := NewNode("fps_widget")
	label := Attach(node, &fpsLabel{})
	node.AddComponent(&fpsCounter{label: label})
	return node
}
