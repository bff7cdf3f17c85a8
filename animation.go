package evergreen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenFields or TweenColor and call Update(dt) each frame. Values are
// written straight into the bound fields.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the bound
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenFields animates each field to the matching target. At most 4 fields
// are supported; extra pairs panic.
func TweenFields(duration float32, fn ease.TweenFunc, pairs ...TweenPair) *TweenGroup {
	if len(pairs) > 4 {
		panic("evergreen: TweenFields supports at most 4 fields")
	}
	g := &TweenGroup{count: len(pairs)}
	for i, p := range pairs {
		if p.Field == nil {
			panic("evergreen: TweenFields with nil field")
		}
		g.tweens[i] = gween.New(float32(*p.Field), float32(p.To), duration, fn)
		g.fields[i] = p.Field
	}
	g.Done = g.count == 0
	return g
}

// TweenPair binds a field to its tween target.
type TweenPair struct {
	Field *float64
	To    float64
}

// TweenColor animates all four components of c to the target color.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenFields(duration, fn,
		TweenPair{&c.R, to.R},
		TweenPair{&c.G, to.G},
		TweenPair{&c.B, to.B},
		TweenPair{&c.A, to.A},
	)
}
