package game

import "testing"

var judgeTests = map[float64]Grade{
	0:     Perfect,
	0.5:   Perfect,
	-0.5:  Perfect,
	0.51:  Great,
	0.8:   Great,
	-1.0:  Good,
	1.1:   Good,
	1.3:   Bad,
	-1.4:  Bad,
	1.41:  Miss,
	-25.0: Miss,
}

func TestJudge(t *testing.T) {
	for distance, expected := range judgeTests {
		if g := Judge(distance, 10); g != expected {
			t.Log("distance", distance)
			t.Log("got     ", g)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestJudgeScalesWithSpeed(t *testing.T) {
	// At double speed every window doubles
	if g := Judge(1.0, 20); g != Perfect {
		t.Errorf("Judge(1.0, 20) = %v, want Perfect", g)
	}
	if g := Judge(2.8, 20); g != Bad {
		t.Errorf("Judge(2.8, 20) = %v, want Bad", g)
	}
	if w := Window(Bad, 5); w != 0.7 {
		t.Errorf("Window(Bad, 5) = %v, want 0.7", w)
	}
}

func TestCombos(t *testing.T) {
	expected := map[Grade]bool{Perfect: true, Great: true, Good: true, Bad: false, Miss: false}
	for g, want := range expected {
		if g.Combos() != want {
			t.Errorf("%v.Combos() = %v, want %v", g, g.Combos(), want)
		}
	}
}
