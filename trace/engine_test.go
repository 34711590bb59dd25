package trace

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Kaushal171205/Code-Visualizer/object"
)

func TestRunS1PrimitivesAndSum(t *testing.T) {
	src := `int main(){ int x=10; int y=20; int sum=x+y; return 0; }`
	states, err := New().Run(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 3 {
		t.Fatalf("got %d states, want 3", len(states))
	}
	final := states[len(states)-1]
	if len(final.Variables) != 3 {
		t.Fatalf("got %d variables, want 3", len(final.Variables))
	}
	wantValues := map[string]int64{"x": 10, "y": 20, "sum": 30}
	for _, v := range final.Variables {
		if v.Visual != object.Primitive {
			t.Errorf("%s: visual = %v, want primitive", v.Name, v.Visual)
		}
		if got := object.AsInt(v.Value); got != wantValues[v.Name] {
			t.Errorf("%s = %d, want %d", v.Name, got, wantValues[v.Name])
		}
	}
	wantActions := []string{"Created x = 10", "Created y = 20", "Created sum = 30"}
	gotActions := make([]string, len(states))
	for i, s := range states {
		if s.Action != nil {
			gotActions[i] = *s.Action
		}
	}
	if diff := cmp.Diff(wantActions, gotActions); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestRunS2ArrayLiteralBoundedForLoop(t *testing.T) {
	src := `int main(){ int arr[5]={1,2,3,4,5}; for(int i=0;i<5;i++){ arr[i]=arr[i]*2; } }`
	states, err := New().Run(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 6 {
		t.Fatalf("got %d states, want 6", len(states))
	}
	final := states[len(states)-1]
	var arr *object.Variable
	for _, v := range final.Variables {
		if v.Name == "arr" {
			arr = v
		}
	}
	if arr == nil {
		t.Fatal("arr not found in final state")
	}
	want := []int64{2, 4, 6, 8, 10}
	got := make([]int64, len(arr.Elements))
	for i, e := range arr.Elements {
		got[i] = object.AsInt(e)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("arr mismatch (-want +got):\n%s", diff)
	}
}

func TestRunS3VariableBoundedLoop(t *testing.T) {
	src := `int main(){ int n=4; int arr[4]={0,0,0,0}; for(int i=0;i<n;i++){ arr[i]=i; } }`
	states, err := New().Run(src)
	if err != nil {
		t.Fatal(err)
	}
	final := states[len(states)-1]
	var arr *object.Variable
	for _, v := range final.Variables {
		if v.Name == "arr" {
			arr = v
		}
	}
	if arr == nil {
		t.Fatal("arr not found")
	}
	want := []int64{0, 1, 2, 3}
	got := make([]int64, len(arr.Elements))
	for i, e := range arr.Elements {
		got[i] = object.AsInt(e)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("arr mismatch (-want +got):\n%s", diff)
	}
}

func TestRunS4LinkedList(t *testing.T) {
	src := `struct Node{int data; Node* next;};
int main(){
  Node* head=new Node(); head->data=10;
  Node* second=new Node(); second->data=20; head->next=second;
  Node* third=new Node(); third->data=30; second->next=third; third->next=nullptr;
}`
	states, err := New().Run(src)
	if err != nil {
		t.Fatal(err)
	}
	final := states[len(states)-1]
	if len(final.Heap) != 3 {
		t.Fatalf("got %d heap objects, want 3", len(final.Heap))
	}
	third := final.Heap[2]
	nextField := third.FieldByName("next")
	if nextField == nil || nextField.Value.String() != "nullptr" {
		t.Errorf("third.next = %+v, want nullptr", nextField)
	}
	var head *object.Variable
	for _, v := range final.Variables {
		if v.Name == "head" {
			head = v
		}
	}
	if head == nil || head.PointsTo == nil || head.PointsTo.ID != final.Heap[0].ID {
		t.Errorf("head does not point to first heap object: %+v", head)
	}
}

func TestRunS5ConditionalInsideLoop(t *testing.T) {
	src := `int main(){ int count=0; for(int i=0;i<6;i++){ if(i%2==0){ count=count+1; } } }`
	states, err := New().Run(src)
	if err != nil {
		t.Fatal(err)
	}
	final := states[len(states)-1]
	var count *object.Variable
	for _, v := range final.Variables {
		if v.Name == "count" {
			count = v
		}
	}
	if count == nil || object.AsInt(count.Value) != 3 {
		t.Errorf("count = %v, want 3", count)
	}
	// Only the three even iterations should have emitted a change.
	changes := 0
	for _, s := range states {
		if s.Action != nil && *s.Action != "" {
			changes++
		}
	}
	if changes != 1+3 { // "Created count = 0" plus 3 increments
		t.Errorf("got %d changed states, want 4", changes)
	}
}

func TestRunStepIndicesAreSequential(t *testing.T) {
	src := `int main(){ int x=1; int y=2; }`
	states, err := New().Run(src)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range states {
		if s.StepIndex != i {
			t.Errorf("state %d has StepIndex %d", i, s.StepIndex)
		}
	}
}

func TestRunDeepCopyAcrossStates(t *testing.T) {
	// Invariant I4/P3: mutating one state's variable slice must not
	// perturb a state emitted earlier for the same run.
	src := `int main(){ int x=1; x=2; x=3; }`
	states, err := New().Run(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 3 {
		t.Fatalf("got %d states, want 3", len(states))
	}
	before := []object.Variable{*states[0].Variables[0]}
	states[2].Variables[0].Value = object.IntValue{V: 999}
	after := []object.Variable{*states[0].Variables[0]}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("earlier state mutated (-before +after):\n%s", diff)
	}
}

func TestRunEmptyProgramYieldsSyntheticStart(t *testing.T) {
	states, err := New().Run(`int main(){ }`)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 {
		t.Fatalf("got %d states, want 1 synthetic state", len(states))
	}
	if states[0].Action == nil || *states[0].Action != "Program start" {
		t.Errorf("got action %v, want \"Program start\"", states[0].Action)
	}
}
