package assembler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
)

func TestParseConfig(t *testing.T) {
	config, err := assembler.ParseConfig([]byte("duplicateLabels: last\ncompatibility: true\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := assembler.AssemblerConfig{
		DuplicateLabels: assembler.DuplicateLabelsLastWins,
		LiteralOverflow: assembler.LiteralOverflowReject,
		Compatibility:   true,
	}
	if config != expected {
		t.Errorf("Expected %+v, got %+v", expected, config)
	}
}

func TestParseConfigRejectsUnknownPolicy(t *testing.T) {
	for _, doc := range []string{"duplicateLabels: newest\n", "literalOverflow: wrap\n", "compatibility: [\n"} {
		if _, err := assembler.ParseConfig([]byte(doc)); err == nil {
			t.Errorf("Expected an error for %q", doc)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asmconfig.yaml")
	if err := os.WriteFile(path, []byte("literalOverflow: truncate\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := assembler.LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.LiteralOverflow != assembler.LiteralOverflowTruncate || config.DuplicateLabels != assembler.DuplicateLabelsReject {
		t.Errorf("Unexpected config %+v", config)
	}

	if _, err := assembler.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}

func TestSetConfigAppliesToAssemble(t *testing.T) {
	defer assembler.SetConfig(assembler.DefaultConfig())

	assembler.SetConfig(assembler.AssemblerConfig{LiteralOverflow: assembler.LiteralOverflowTruncate})
	if assembler.GetConfig().DuplicateLabels != assembler.DuplicateLabelsReject {
		t.Errorf("Expected unset policy to default to reject")
	}

	res := assembler.Assemble("mov r0, #300")
	if res.Err != nil {
		t.Fatalf("Unexpected error: %v", res.Err)
	}
	if res.ProgramText[0] != 0x102C {
		t.Errorf("Expected 0x102C, got 0x%04X", res.ProgramText[0])
	}
}
