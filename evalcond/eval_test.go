package evalcond

import (
	"testing"

	"github.com/Kaushal171205/Code-Visualizer/object"
)

func frameWith(vars map[string]int64) *object.Frame {
	f := object.NewFrame()
	for name, v := range vars {
		f.Vars.Set(name, &object.Variable{Name: name, Visual: object.Primitive, Value: object.IntValue{V: v}})
	}
	return f
}

func TestModuloConditions(t *testing.T) {
	f := frameWith(map[string]int64{"i": 4})
	if !Eval("i%2==0", f) {
		t.Error("i%2==0 with i=4 should be true")
	}
	f = frameWith(map[string]int64{"i": 5})
	if Eval("i%2==0", f) {
		t.Error("i%2==0 with i=5 should be false")
	}
	if !Eval("i%2!=0", f) {
		t.Error("i%2!=0 with i=5 should be true")
	}
}

func TestComparisonConditions(t *testing.T) {
	f := frameWith(map[string]int64{"x": 3, "y": 3})
	if !Eval("x<=y", f) {
		t.Error("x<=y with x=y=3 should be true")
	}
	if Eval("x<y", f) {
		t.Error("x<y with x=y=3 should be false")
	}
	if !Eval("x>=y", f) {
		t.Error("x>=y with x=y=3 should be true")
	}
	if !Eval("x==y", f) {
		t.Error("x==y with x=y=3 should be true")
	}
}

func TestTruthyFallback(t *testing.T) {
	f := frameWith(map[string]int64{"n": 1})
	if !Eval("n", f) {
		t.Error("bare truthy expression n=1 should be true")
	}
	f = frameWith(map[string]int64{"n": 0})
	if Eval("n", f) {
		t.Error("bare truthy expression n=0 should be false")
	}
}
