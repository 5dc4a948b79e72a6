package main

import "testing"

func TestParseArgs_Defaults(t *testing.T) {
	country, maxPerApp, err := parseArgs(nil)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if country != "us" || maxPerApp != 50 {
		t.Fatalf("got (%q, %d), want (us, 50)", country, maxPerApp)
	}
}

func TestParseArgs_Explicit(t *testing.T) {
	country, maxPerApp, err := parseArgs([]string{"gb", "25"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if country != "gb" || maxPerApp != 25 {
		t.Fatalf("got (%q, %d), want (gb, 25)", country, maxPerApp)
	}
}

func TestParseArgs_BadMax(t *testing.T) {
	for _, bad := range []string{"0", "-3", "abc"} {
		if _, _, err := parseArgs([]string{"us", bad}); err == nil {
			t.Fatalf("parseArgs(us, %s): expected error", bad)
		}
	}
}
