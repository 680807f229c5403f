package placement

import (
	"math"
	"testing"
)

func TestOrbitFourItems(t *testing.T) {
	res := Orbit(makeItems(4), DefaultOrbitConfig())

	want := []Position{
		{X: 85, Y: 50},
		{X: 50, Y: 85},
		{X: 15, Y: 50},
		{X: 50, Y: 15},
	}
	for i, p := range res {
		if p.Position != want[i] {
			t.Errorf("result[%d] = %s, want %s", i, p.Position, want[i])
		}
		if p.Fallback || p.Attempts != 0 {
			t.Errorf("result[%d] = %+v, want no fallback and no attempts", i, p)
		}
	}
}

func TestOrbitEvenSpacing(t *testing.T) {
	items := makeItems(22)
	res := Orbit(items, OrbitConfig{Radius: 30, Margin: 10, Phase: 17})

	if len(res) != len(items) {
		t.Fatalf("len(result) = %d, want %d", len(res), len(items))
	}

	first := res[0].Position.Distance(res[1].Position)
	for i := range res {
		next := res[(i+1)%len(res)].Position
		if d := res[i].Position.Distance(next); math.Abs(d-first) > 0.05 {
			t.Errorf("gap %d = %.3f, want %.3f", i, d, first)
		}
		if r := res[i].Position.Distance(Center); math.Abs(r-30) > 0.02 {
			t.Errorf("result[%d] radius = %.3f, want 30", i, r)
		}
	}
}

func TestOrbitClampsRadius(t *testing.T) {
	res := Orbit(makeItems(8), OrbitConfig{Radius: 60, Margin: 10})
	for i, p := range res {
		if p.Position.X < 10 || p.Position.X > 90 || p.Position.Y < 10 || p.Position.Y > 90 {
			t.Errorf("result[%d] at %s outside margin box", i, p.Position)
		}
	}
	if res[0].Position != (Position{X: 90, Y: 50}) {
		t.Errorf("result[0] = %s, want (90.00, 50.00)", res[0].Position)
	}
}

func TestOrbitRoundingStaysInBox(t *testing.T) {
	margin := 10.003
	hi := FieldSize - margin
	res := Orbit(makeItems(8), OrbitConfig{Radius: 60, Margin: margin})
	for i, p := range res {
		if p.Position.X < margin || p.Position.X > hi || p.Position.Y < margin || p.Position.Y > hi {
			t.Errorf("result[%d] at (%v, %v) outside [%v, %v]", i, p.Position.X, p.Position.Y, margin, hi)
		}
	}
	if got := res[0].Position.X; got != hi {
		t.Errorf("result[0].X = %v, want %v", got, hi)
	}
}

func TestOrbitEmpty(t *testing.T) {
	if res := Orbit(nil, DefaultOrbitConfig()); len(res) != 0 {
		t.Errorf("len(Orbit(nil)) = %d, want 0", len(res))
	}
}
