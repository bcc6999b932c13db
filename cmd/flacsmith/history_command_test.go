package main

import (
	"testing"

	"flacsmith/internal/testsupport"
)

func TestHistoryCommandListsAndClears(t *testing.T) {
	stub := testsupport.StubBinary(t, "flac", failOnBadStub)
	cfg := testsupport.NewConfig(t, testsupport.WithVerifyTool(stub, "-t", "-s"))
	testsupport.WriteLibrary(t, cfg, "one.flac")
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history on empty store: %v", err)
	}
	requireContains(t, out, "no runs recorded")

	if _, _, err := runCLI(t, configPath, "verify"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	out, _, err = runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "ok")
	requireContains(t, out, "Started")

	out, _, err = runCLI(t, configPath, "history", "clear")
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "removed 1 run(s)")
}
