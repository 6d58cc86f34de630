package garden

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
)

// commandCanvas adapts a recording.Recorder to Canvas so tests can inspect
// the geometry a layer emits.
type commandCanvas struct {
	*recording.Recorder
}

func newCommandCanvas() *commandCanvas {
	return &commandCanvas{recording.NewRecorder(Width, Height)}
}

func (c *commandCanvas) SetLineCap(lc gg.LineCap) { c.SetLineCapGG(lc) }
func (c *commandCanvas) Fill() error             { c.Recorder.Fill(); return nil }
func (c *commandCanvas) Stroke() error           { c.Recorder.Stroke(); return nil }

// paths returns the fill and stroke commands of a finished recording with
// their resolved paths.
type paintedPath struct {
	stroke bool
	width  float64
	path   *gg.Path
}

func (c *commandCanvas) painted() []paintedPath {
	rec := c.FinishRecording()
	var out []paintedPath
	for _, cmd := range rec.Commands() {
		switch cmd := cmd.(type) {
		case recording.FillPathCommand:
			out = append(out, paintedPath{path: rec.Resources().GetPath(cmd.Path)})
		case recording.StrokePathCommand:
			out = append(out, paintedPath{stroke: true, width: cmd.Stroke.Width, path: rec.Resources().GetPath(cmd.Path)})
		}
	}
	return out
}

// pathStep is one verb of a path with its end point.
type pathStep struct {
	verb gg.PathVerb
	pt   gg.Point
}

func pathSteps(p *gg.Path) []pathStep {
	var out []pathStep
	p.Iterate(func(verb gg.PathVerb, coords []float64) {
		st := pathStep{verb: verb}
		if n := len(coords); n >= 2 {
			st.pt = gg.Point{X: coords[n-2], Y: coords[n-1]}
		}
		out = append(out, st)
	})
	return out
}

func firstPoint(p *gg.Path) gg.Point {
	for _, st := range pathSteps(p) {
		if st.verb == gg.MoveTo {
			return st.pt
		}
	}
	return gg.Point{}
}

func lastPoint(p *gg.Path) gg.Point {
	steps := pathSteps(p)
	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i].verb != gg.Close {
			return steps[i].pt
		}
	}
	return gg.Point{}
}

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestLayerOrder(t *testing.T) {
	want := []string{"sky", "sun", "clouds", "jungle", "trees", "butterflies", "monkey", "ground"}
	got := LayerNames()
	if len(got) != len(want) {
		t.Fatalf("LayerNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("layer %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRenderSceneCommandCounts(t *testing.T) {
	cv := newCommandCanvas()
	if err := RenderScene(cv, 4.2); err != nil {
		t.Fatal(err)
	}
	fills, strokes := 0, 0
	for _, p := range cv.painted() {
		if p.stroke {
			strokes++
		} else {
			fills++
		}
	}
	// sky 2, sun 1, clouds 9, canopy 7, trees 66, butterflies 18, monkey 6, ground 5
	if fills != 114 {
		t.Errorf("fills = %d, want 114", fills)
	}
	// rays 10, trees 36, monkey 7, blades 120
	if strokes != 173 {
		t.Errorf("strokes = %d, want 173", strokes)
	}
}

func TestSkyCoversFrame(t *testing.T) {
	cv := newCommandCanvas()
	drawSky(&pen{cv: cv}, 0)
	got := cv.painted()
	if len(got) != 2 {
		t.Fatalf("sky painted %d paths, want 2", len(got))
	}
	b := got[0].path
	p0 := firstPoint(b)
	if p0.X != 0 || p0.Y != 0 {
		t.Errorf("sky starts at %v, want origin", p0)
	}
	var maxX, maxY float64
	for _, st := range pathSteps(b) {
		if st.verb == gg.LineTo {
			maxX = math.Max(maxX, st.pt.X)
			maxY = math.Max(maxY, st.pt.Y)
		}
	}
	if maxX != Width || maxY != Height {
		t.Errorf("sky extent = (%v, %v), want (%d, %d)", maxX, maxY, Width, Height)
	}
}

func TestSunCenterRange(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		tt := float64(i) * 0.1
		c := SunCenter(tt)
		if c.X != Width-120 {
			t.Fatalf("SunCenter(%v).X = %v, want %d", tt, c.X, Width-120)
		}
		if c.Y < 70-1e-9 || c.Y > 90+1e-9 {
			t.Fatalf("SunCenter(%v).Y = %v, want within [70, 90]", tt, c.Y)
		}
	}
}

func TestSunRaysFollowRotation(t *testing.T) {
	cv := newCommandCanvas()
	drawSun(&pen{cv: cv}, 0)
	got := cv.painted()
	if len(got) != 11 {
		t.Fatalf("sun painted %d paths, want 11", len(got))
	}
	// At t=0 ray 0 points straight up 80 units from (840, 80).
	ray := got[1]
	if !ray.stroke || ray.width != 3 {
		t.Errorf("ray 0 stroke=%v width=%v, want stroke width 3", ray.stroke, ray.width)
	}
	start, end := firstPoint(ray.path), lastPoint(ray.path)
	if !near(start.X, 840, 1e-9) || !near(start.Y, 80, 1e-9) {
		t.Errorf("ray 0 starts at %v, want (840, 80)", start)
	}
	if !near(end.X, 840, 1e-9) || !near(end.Y, 0, 1e-9) {
		t.Errorf("ray 0 ends at %v, want (840, 0)", end)
	}
	// Ray 5 is rotated half a turn and points straight down.
	end = lastPoint(got[6].path)
	want := 80 + 80 + math.Sin(5)*4
	if !near(end.X, 840, 1e-9) || !near(end.Y, want, 1e-9) {
		t.Errorf("ray 5 ends at %v, want (840, %v)", end, want)
	}
}

func TestCloudOffsetWraps(t *testing.T) {
	period := float64(Width+200) / 20
	for idx := range clouds {
		for _, tt := range []float64{0, 1.5, 17, 58} {
			a := CloudOffset(tt, idx)
			b := CloudOffset(tt+period, idx)
			if !near(a, b, 1e-6) {
				t.Errorf("cloud %d: offset(%v)=%v, offset(%v+period)=%v", idx, tt, a, tt, b)
			}
			if a < -100 || a >= Width+100 {
				t.Errorf("cloud %d offset %v outside [-100, %d)", idx, a, Width+100)
			}
		}
	}
	if got := CloudOffset(0, 1); got != 100 {
		t.Errorf("CloudOffset(0, 1) = %v, want 100", got)
	}
}

func TestCloudsAreScaled(t *testing.T) {
	cv := newCommandCanvas()
	drawClouds(&pen{cv: cv}, 0)
	got := cv.painted()
	if len(got) != 9 {
		t.Fatalf("clouds painted %d paths, want 9", len(got))
	}
	// Cloud 1 (scale 1.3) first puff at offset 100: right edge x = 100 + 30·1.3.
	p := firstPoint(got[3].path)
	if !near(p.X, 100+30*1.3, 1e-9) || !near(p.Y, 70, 1e-9) {
		t.Errorf("cloud 1 puff 0 starts at %v, want (139, 70)", p)
	}
}

func TestMonkeyPoseBounds(t *testing.T) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	for i := 0; i <= 4000; i++ {
		p := MonkeyPoseAt(float64(i) * 0.01)
		minX = math.Min(minX, p.Body.X)
		maxX = math.Max(maxX, p.Body.X)
		if p.Ease < 0 || p.Ease > 1 {
			t.Fatalf("ease %v outside [0, 1]", p.Ease)
		}
	}
	lo, hi := Width*0.45-130, Width*0.45+130
	if minX < lo-1e-9 || maxX > hi+1e-9 {
		t.Errorf("body x range [%v, %v] exceeds [%v, %v]", minX, maxX, lo, hi)
	}
	if !near(minX, lo, 0.1) || !near(maxX, hi, 0.1) {
		t.Errorf("body x range [%v, %v] should reach [%v, %v]", minX, maxX, lo, hi)
	}
}

func TestMonkeyPosePeriod(t *testing.T) {
	period := 2 * math.Pi / 1.5
	for _, tt := range []float64{0, 0.3, 1.7, 5} {
		a := MonkeyPoseAt(tt).Body.X
		b := MonkeyPoseAt(tt + period).Body.X
		if !near(a, b, 1e-9) {
			t.Errorf("body x at %v = %v, one period later = %v", tt, a, b)
		}
	}
}

func TestMonkeyBodyDrawnAtPose(t *testing.T) {
	const tt = 2.5
	cv := newCommandCanvas()
	drawMonkey(&pen{cv: cv}, tt)
	got := cv.painted()
	if len(got) != 13 {
		t.Fatalf("monkey painted %d paths, want 13", len(got))
	}
	pose := MonkeyPoseAt(tt)

	vine := got[0]
	if s := firstPoint(vine.path); !near(s.X, pose.Anchor.X, 1e-9) || !near(s.Y, pose.Anchor.Y, 1e-9) {
		t.Errorf("vine starts at %v, want anchor %v", s, pose.Anchor)
	}
	if e := lastPoint(vine.path); !near(e.Y, pose.Body.Y-20*pose.Ease, 1e-9) {
		t.Errorf("vine ends at y=%v, want %v", e.Y, pose.Body.Y-20*pose.Ease)
	}

	body := firstPoint(got[1].path)
	if !near(body.X, pose.Body.X+38, 1e-9) || !near(body.Y, pose.Body.Y, 1e-9) {
		t.Errorf("body ellipse starts at %v, want (%v, %v)", body, pose.Body.X+38, pose.Body.Y)
	}

	mouth := got[5]
	if !mouth.stroke {
		t.Fatal("mouth should be stroked")
	}
	s, e := firstPoint(mouth.path), lastPoint(mouth.path)
	if !near(s.X, pose.Head.X+6, 1e-9) || !near(e.X, pose.Head.X-6, 1e-9) {
		t.Errorf("mouth arc from %v to %v, want x %v to %v", s, e, pose.Head.X+6, pose.Head.X-6)
	}
}

func TestArcFollowsTransform(t *testing.T) {
	cv := newCommandCanvas()
	p := &pen{cv: cv}
	cv.Translate(100, 50)
	cv.Scale(2, 2)
	p.arc(0, 0, 10, 0, math.Pi)
	_ = p.cv.Stroke()
	got := cv.painted()
	if len(got) != 1 {
		t.Fatalf("got %d paths, want 1", len(got))
	}
	s, e := firstPoint(got[0].path), lastPoint(got[0].path)
	if !near(s.X, 120, 1e-9) || !near(s.Y, 50, 1e-9) {
		t.Errorf("arc starts at %v, want (120, 50)", s)
	}
	if !near(e.X, 80, 1e-9) || !near(e.Y, 50, 1e-9) {
		t.Errorf("arc ends at %v, want (80, 50)", e)
	}
	segments := 0
	for _, st := range pathSteps(got[0].path) {
		if st.verb == gg.CubicTo {
			segments++
			if segments == 1 && (!near(st.pt.X, 100, 1e-9) || !near(st.pt.Y, 70, 1e-9)) {
				t.Errorf("quarter point = %v, want (100, 70)", st.pt)
			}
		}
	}
	if segments != 2 {
		t.Errorf("half circle used %d segments, want 2", segments)
	}
}

func TestLinearGradientMapsAxis(t *testing.T) {
	cv := newCommandCanvas()
	p := &pen{cv: cv}
	cv.Translate(100, 40)
	cv.Rotate(math.Pi / 2)
	g := p.linearGradient(0, 0, 120, 0, gradientStop{0, leafDark}, gradientStop{1, leafLight})
	if !near(g.Start.X, 100, 1e-9) || !near(g.Start.Y, 40, 1e-9) {
		t.Errorf("gradient start = %v, want (100, 40)", g.Start)
	}
	if !near(g.End.X, 100, 1e-9) || !near(g.End.Y, 160, 1e-9) {
		t.Errorf("gradient end = %v, want (100, 160)", g.End)
	}
	if len(g.Stops) != 2 {
		t.Errorf("stops = %d, want 2", len(g.Stops))
	}
}

func TestButterflyFlapRange(t *testing.T) {
	for i := 0; i < butterflyCount; i++ {
		for step := 0; step < 300; step++ {
			b := ButterflyAt(float64(step)*0.05, i)
			if math.Abs(b.Flap) > 0.6+1e-9 {
				t.Fatalf("butterfly %d flap %v exceeds 0.6", i, b.Flap)
			}
		}
	}
	b := ButterflyAt(0, 0)
	if !near(b.Pos.X, 0, 1e-9) || !near(b.Pos.Y, Height*0.35+20, 1e-9) {
		t.Errorf("butterfly 0 at t=0 = %v, want (0, %v)", b.Pos, Height*0.35+20)
	}
}

func TestTreeLayout(t *testing.T) {
	if b := treeBase(0); b.X != 80 || b.Y != Height*0.55 {
		t.Errorf("tree 0 base = %v", b)
	}
	if b := treeBase(3); !near(b.X, 80+0.5*(Width-160), 1e-9) {
		t.Errorf("tree 3 base x = %v", b.X)
	}
	if treeHeight(0) != 250 || treeHeight(1) != 220 {
		t.Errorf("tree heights = %v, %v, want 250, 220", treeHeight(0), treeHeight(1))
	}

	cv := newCommandCanvas()
	drawBananaTree(&pen{cv: cv}, Vec2{X: 100, Y: 300}, 220, 0, 1)
	got := cv.painted()
	trunk := got[0]
	if !trunk.stroke || trunk.width != 18 {
		t.Errorf("trunk stroke=%v width=%v, want width 18", trunk.stroke, trunk.width)
	}
	if e := lastPoint(trunk.path); !near(e.X, 100, 1e-9) || !near(e.Y, 80, 1e-9) {
		t.Errorf("trunk top = %v, want (100, 80)", e)
	}
}

func TestCanopyBandsCloseToBottom(t *testing.T) {
	cv := newCommandCanvas()
	drawJungle(&pen{cv: cv}, 1)
	for i, p := range cv.painted() {
		els := pathSteps(p.path)
		if els[len(els)-1].verb != gg.Close {
			t.Errorf("band %d is not closed", i)
		}
		// MoveTo + 33 columns (0..960 by 30, x=0 via MoveTo) + 2 corners + close
		if len(els) != 1+32+2+1 {
			t.Errorf("band %d has %d elements, want 36", i, len(els))
		}
	}
}

func TestGroundBlades(t *testing.T) {
	cv := newCommandCanvas()
	drawGround(&pen{cv: cv}, 0)
	got := cv.painted()
	if len(got) != 2+bladeCount+sparkleCount {
		t.Fatalf("ground painted %d paths, want %d", len(got), 2+bladeCount+sparkleCount)
	}
	blade := got[2+1]
	if s := firstPoint(blade.path); s.X != 37 || !near(s.Y, Height*0.68, 1e-9) {
		t.Errorf("blade 1 starts at %v, want (37, %v)", s, Height*0.68)
	}
	if !blade.stroke || blade.width != 1.5 {
		t.Errorf("blade stroke=%v width=%v", blade.stroke, blade.width)
	}
}
