package percent

import (
	"math"
	"testing"
)

func TestPercentClamping(t *testing.T) {
	for in, out := range map[float64]Percent{
		-3:          0,
		math.NaN():  0,
		42.4:        42,
		99.6:        100,
		250:         100,
		math.Inf(1): 100,
	} {
		if p := FromFloat(in); p != out {
			t.Errorf("expected %v for %g, have %v", out, in, p)
		}
	}
}

func TestPercentOf(t *testing.T) {
	if p := Of(100<<20, 256<<20); p.String() != "39%" {
		t.Errorf("expected 39%%, have %s", p)
	}
	if p := Of(5, 0); p != 0 {
		t.Errorf("expected 0%% for empty whole, have %s", p)
	}
	if p := Of(300, 200); p != 100 {
		t.Errorf("expected usage to be clamped to 100%%, have %s", p)
	}
}

func TestBar(t *testing.T) {
	for p, bar := range map[Percent]string{
		0:   "[----------]",
		39:  "[####------]",
		100: "[##########]",
	} {
		if b := p.Bar(10); b != bar {
			t.Errorf("expected %s for %s, have %s", bar, p, b)
		}
	}
	if b := Percent(50).Bar(0); b != "[]" {
		t.Errorf("expected empty bar, have %s", b)
	}
}
