package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func executeForTest(args ...string) (string, error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	rootCmd.SetArgs(nil)
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := executeForTest("--help")
	if err != nil {
		t.Fatalf("help command error: %v", err)
	}
	for _, name := range []string{"serve", "ask", "models", "version"} {
		if !strings.Contains(out, name) {
			t.Fatalf("help output missing %s command: %s", name, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeForTest("version")
	if err != nil {
		t.Fatalf("version command error: %v", err)
	}
	if !strings.Contains(out, "nchc-wrapper") {
		t.Fatalf("version output missing binary name: %s", out)
	}
	if !strings.Contains(out, "commit:") {
		t.Fatalf("version output missing commit field: %s", out)
	}
}

func TestModelsCommand(t *testing.T) {
	out, err := executeForTest("models")
	if err != nil {
		t.Fatalf("models command error: %v", err)
	}
	if !strings.Contains(out, "Llama-4-Maverick-17B-128E-Instruct-FP8") {
		t.Fatalf("models output missing default model: %s", out)
	}
}
