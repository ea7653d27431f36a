package progress

import "testing"

func TestBarsLifecycle(t *testing.T) {
	b := NewBars()
	b.Incr() // no bar yet
	b.Stop()

	b.Start("empty", 0)
	b.Incr()
	b.Stop()

	b.Start("read", 3)
	for i := 0; i < 3; i++ {
		b.Incr()
	}
	if b.bar == nil || b.bar.Current() != 3 {
		t.Fatalf("bar current = %v, want 3", b.bar)
	}
	b.Start("vectorize", 2)
	if b.bar.Current() != 0 {
		t.Errorf("new stage should start from 0, got %d", b.bar.Current())
	}
	b.Stop()
	if b.p != nil || b.bar != nil {
		t.Error("Stop should release the bar")
	}
}

func TestNop(t *testing.T) {
	r := Nop()
	r.Start("stage", 10)
	r.Incr()
	r.Stop()
}
