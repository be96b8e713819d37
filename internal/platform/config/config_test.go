package config

import (
	"testing"
	"time"

	kit "spoilerguard/internal/platform/testkit"
)

func TestPrefixesAccumulate(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("SPOILER_")
	if got := c.key("BATCH_SIZE"); got != "CORE_SPOILER_BATCH_SIZE" {
		t.Fatalf("key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("T1_")
	t.Setenv("T1_DBURL", "  postgres://x ")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	t.Setenv("T1_BLANK", "   ")
	kit.MustPanic(t, func() { c.MustString("BLANK") })
	kit.MustPanic(t, func() { c.MustString("UNSET") })
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("T2_")
	t.Setenv("T2_BATCH", " 75 ")
	t.Setenv("T2_BAD_INT", "lots")
	t.Setenv("T2_TEMP", "0.7")
	t.Setenv("T2_ON", "true")
	t.Setenv("T2_BAD_BOOL", "yes please")
	t.Setenv("T2_EVERY", "30m")
	t.Setenv("T2_BAD_DUR", "hourly")
	t.Setenv("T2_MODEL", " moonshot-v1-8k ")

	if got := c.MayInt("BATCH", 150); got != 75 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD_INT", 150); got != 150 {
		t.Fatalf("MayInt malformed = %d", got)
	}
	if got := c.MayInt("UNSET", 3); got != 3 {
		t.Fatalf("MayInt unset = %d", got)
	}
	if got := c.MayFloat64("TEMP", 0.3); got != 0.7 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if !c.MayBool("ON", false) || c.MayBool("BAD_BOOL", false) {
		t.Fatalf("MayBool mismatch")
	}
	if got := c.MayDuration("EVERY", time.Hour); got != 30*time.Minute {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("BAD_DUR", time.Hour); got != time.Hour {
		t.Fatalf("MayDuration malformed = %v", got)
	}
	if got := c.MayString("MODEL", "x"); got != "moonshot-v1-8k" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("UNSET", "x"); got != "x" {
		t.Fatalf("MayString unset = %q", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("T3_")
	t.Setenv("T3_ORIGINS", " chrome-extension://a, ,moz-extension://b ,")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "chrome-extension://a" || got[1] != "moz-extension://b" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("T3_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV all blank = %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("T4_")
	if got := c.MayEnum("STORE", "sqlite", "pg", "sqlite", "redis"); got != "sqlite" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("T4_STORE", "PG")
	if got := c.MayEnum("STORE", "sqlite", "pg", "sqlite", "redis"); got != "pg" {
		t.Fatalf("case folded = %q", got)
	}
	t.Setenv("T4_STORE", "mongo")
	kit.MustPanic(t, func() { c.MayEnum("STORE", "sqlite", "pg", "sqlite", "redis") })
}
