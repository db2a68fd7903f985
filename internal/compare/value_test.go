package compare

import "testing"

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal int64", Int64Value(5), Int64Value(5), true},
		{"unequal int64", Int64Value(5), Int64Value(6), false},
		{"kind mismatch int32 vs int64", Int32Value(5), Int64Value(5), false},
		{"signed vs unsigned", Int8Value(1), Uint8Value(1), false},
		{"equal strings", Utf8Value("x"), Utf8Value("x"), true},
		{"unequal strings", Utf8Value("x"), Utf8Value("y"), false},
		{"equal float32", Float32Value(1.5), Float32Value(1.5), true},
		{"float width mismatch", Float32Value(1.5), Float64Value(1.5), false},
		{"null equals null", NullValue(), NullValue(), true},
		{"null vs zero", NullValue(), Int64Value(0), false},
		{"equal date32", Date32Value(19000), Date32Value(19000), true},
		{"date32 vs int32", Date32Value(19000), Int32Value(19000), false},
		{"equal uint64", Uint64Value(1 << 40), Uint64Value(1 << 40), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NullValue(), "Null"},
		{Int8Value(-3), "Int8(-3)"},
		{Int64Value(42), "Int64(42)"},
		{Uint16Value(7), "UInt16(7)"},
		{Float32Value(1.5), "Float32(1.5)"},
		{Float64Value(0.25), "Float64(0.25)"},
		{Utf8Value("hi"), `Utf8("hi")`},
		{Date32Value(1), "Date32(1)"},
		{Date64Value(86400000), "Date64(86400000)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRowString(t *testing.T) {
	row := Row{Int64Value(1), Utf8Value("x"), NullValue()}
	want := `[Int64(1), Utf8("x"), Null]`
	if got := row.String(); got != want {
		t.Errorf("Row.String() = %q, want %q", got, want)
	}
}
