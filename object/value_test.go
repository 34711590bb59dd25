package object

import "testing"

func TestValueKinds(t *testing.T) {
	tests := []struct {
		v        Value
		wantKind Kind
		wantStr  string
	}{
		{IntValue{V: 42}, IntKind, "42"},
		{FloatValue{V: 3.5}, FloatKind, "3.5"},
		{BoolValue{V: true}, BoolKind, "true"},
		{CharValue{V: 'x'}, CharKind, "x"},
		{StringValue{V: "hi"}, StringKind, "hi"},
		{AddressValue{V: "&x"}, AddressKind, "&x"},
		{NullValue{}, NullKind, "nullptr"},
	}

	for _, tt := range tests {
		if got := tt.v.Kind(); got != tt.wantKind {
			t.Errorf("Kind() = %q, want %q", got, tt.wantKind)
		}
		if got := tt.v.String(); got != tt.wantStr {
			t.Errorf("String() = %q, want %q", got, tt.wantStr)
		}
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{IntValue{V: 0}, false},
		{IntValue{V: 1}, true},
		{StringValue{V: ""}, false},
		{StringValue{V: "x"}, true},
		{NullValue{}, false},
		{BoolValue{V: true}, true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
