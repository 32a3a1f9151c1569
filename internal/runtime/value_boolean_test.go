package runtime

import "testing"

func TestCoerceBooleanCaseInsensitive(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "Yes", "ON"} {
		if !CoerceBoolean(NewString(s)) {
			t.Errorf("CoerceBoolean(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"false", "0", "", "no", "off"} {
		if CoerceBoolean(NewString(s)) {
			t.Errorf("CoerceBoolean(%q) = true, want false", s)
		}
	}
}

func TestBooleanOperators(t *testing.T) {
	tru := NewBoolean(true)
	fal := NewBoolean(false)
	v, err := tru.Invoke(nil, []Value{NewString("and"), fal})
	if err != nil || v.String() != "false" {
		t.Fatalf("and = %v, %v", v, err)
	}
	v, err = tru.Invoke(nil, []Value{NewString("or"), fal})
	if err != nil || v.String() != "true" {
		t.Fatalf("or = %v, %v", v, err)
	}
	v, err = tru.Invoke(nil, []Value{NewString("not")})
	if err != nil || v.String() != "false" {
		t.Fatalf("not = %v, %v", v, err)
	}
}
