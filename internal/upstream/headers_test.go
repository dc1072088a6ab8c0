package upstream

import "testing"

func TestHeaderBuilderBuild(t *testing.T) {
	headers := NewHeaderBuilder().Build("  sk-test-key ")

	if headers["Content-Type"] != "application/json" {
		t.Fatalf("Content-Type = %q", headers["Content-Type"])
	}
	if headers["x-api-key"] != "sk-test-key" {
		t.Fatalf("x-api-key = %q", headers["x-api-key"])
	}
	if headers["User-Agent"] != "nchc-wrapper/1.0.0" {
		t.Fatalf("User-Agent = %q", headers["User-Agent"])
	}
	if _, ok := headers["Authorization"]; ok {
		t.Fatal("Authorization header should not be set")
	}
}

func TestHeaderBuilderBuildWithoutKey(t *testing.T) {
	headers := NewHeaderBuilder().Build("")
	if _, ok := headers["x-api-key"]; ok {
		t.Fatal("x-api-key should be absent for an empty key")
	}
}

func TestMaskToken(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"short":            "*****",
		"sk-1234567890abc": "sk-1...0abc",
	}
	for in, want := range cases {
		if got := MaskToken(in); got != want {
			t.Errorf("MaskToken(%q) = %q, want %q", in, got, want)
		}
	}
}
