package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.CacheDir != ".shaderc-cache" {
		t.Errorf("CacheDir default = %q, want %q", cfg.CacheDir, ".shaderc-cache")
	}
	if cfg.CacheEnable {
		t.Error("CacheEnable default should be false")
	}
	if cfg.GatherAll {
		t.Error("GatherAll default should be false")
	}
	if cfg.Color != "auto" {
		t.Errorf("Color default = %q, want %q", cfg.Color, "auto")
	}
	if cfg.WatchDebounceMS != 100 {
		t.Errorf("WatchDebounceMS default = %d, want 100", cfg.WatchDebounceMS)
	}
}

func TestHasSourceExt(t *testing.T) {
	cases := map[string]bool{
		"foo.shd":    true,
		"foo.shader": true,
		"foo.txt":    false,
		".shd":       false,
	}
	for name, want := range cases {
		if got := HasSourceExt(name); got != want {
			t.Errorf("HasSourceExt(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestTrimSourceExt(t *testing.T) {
	if got := TrimSourceExt("foo.shd"); got != "foo" {
		t.Errorf("TrimSourceExt(\"foo.shd\") = %q, want %q", got, "foo")
	}
	if got := TrimSourceExt("foo.txt"); got != "foo.txt" {
		t.Errorf("TrimSourceExt(\"foo.txt\") = %q, want unchanged", got)
	}
}
