package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_FORMAT", "  json ")
	log := New().Prefix("LOG_")
	if got := log.Get("FORMAT", "console"); got != "json" {
		t.Fatalf("Get = %q", got)
	}
	if got := log.Get("LEVEL", "info"); got != "info" {
		t.Fatalf("Get default = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	cases := map[string]bool{"1": true, "TRUE": true, "yes": true, "no": false, "0": false, "maybe": false}
	for v, want := range cases {
		t.Setenv("B_CALLER", v)
		if got := c.GetBool("CALLER", !want); got != want {
			t.Fatalf("GetBool(%q) = %v", v, got)
		}
	}
	if !c.GetBool("UNSET", true) {
		t.Fatalf("unset should use default")
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("I_")
	cases := map[string]int{"5": 5, " 12 ": 12, "-1": 7, "x": 7, "": 7}
	for v, want := range cases {
		t.Setenv("I_SAMPLE", v)
		if got := c.GetInt("SAMPLE", 7); got != want {
			t.Fatalf("GetInt(%q) = %d, want %d", v, got, want)
		}
	}
}
