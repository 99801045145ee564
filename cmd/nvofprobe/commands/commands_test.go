package commands

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/nvof/dynload"
	"github.com/gogpu/nvof/opticalflow"
)

// mapOpener serves libraries and symbols from maps keyed by file name.
type mapOpener struct {
	files   map[string]uintptr
	symbols map[uintptr][]string
}

func (o mapOpener) Open(file string) (uintptr, error) {
	if h, ok := o.files[file]; ok {
		return h, nil
	}
	return 0, fmt.Errorf("%s: cannot open shared object file", file)
}

func (o mapOpener) Symbol(h uintptr, name string) (uintptr, error) {
	for i, s := range o.symbols[h] {
		if s == name {
			return h<<8 | uintptr(i+1), nil
		}
	}
	return 0, nil
}

func nppOpener(libs []dynload.Library) mapOpener {
	return mapOpener{
		files: map[string]uintptr{
			libs[0].Candidates[1]: 1, // only the unversioned nppicc
			libs[1].Candidates[0]: 2,
		},
		symbols: map[uintptr][]string{
			1: {"nppiNV12ToRGB_8u_P2C3R_Ctx"},
			2: {"nppGetStreamContext"},
		},
	}
}

func TestReportSymbols(t *testing.T) {
	libs := dynload.NPPLibraries(12)
	r := dynload.NewNPPResolver(12, dynload.WithOpener(nppOpener(libs)))

	var out bytes.Buffer
	err := reportSymbols(&out, r, []string{"nppGetStreamContext", "nppiNV12ToRGB_8u_P2C3R_Ctx", "nppiBogus"})
	if err != nil {
		t.Fatalf("reportSymbols() = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"nppGetStreamContext",
		"nppiBogus",
		"missing",
		libs[0].Name + " => " + libs[0].Candidates[1],
		libs[1].Name + " => " + libs[1].Candidates[0],
		"3 symbols checked, 3 cached",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if n := strings.Count(got, "available"); n != 2 {
		t.Errorf("output has %d available lines, want 2:\n%s", n, got)
	}
}

func TestReportSymbolsMissingLibrary(t *testing.T) {
	r := dynload.NewNPPResolver(12, dynload.WithOpener(mapOpener{}))

	var out bytes.Buffer
	err := reportSymbols(&out, r, []string{"nppGetStreamContext"})
	if !errors.Is(err, dynload.ErrLibraryNotFound) {
		t.Fatalf("reportSymbols() = %v, want ErrLibraryNotFound", err)
	}
	if !strings.Contains(out.String(), "not installed") {
		t.Errorf("output = %q, want a not installed line", out.String())
	}
}

func TestReportFormats(t *testing.T) {
	var out bytes.Buffer
	if err := reportFormats(&out, 1920); err != nil {
		t.Fatalf("reportFormats() = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// header plus Grayscale8 through Uint8
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out.String())
	}

	tests := []struct {
		line int
		want []string
	}{
		{1, []string{"Grayscale8", "1,920"}},
		{2, []string{"NV12", "1,920", "-"}},
		{5, []string{"Short2", "7,680", "-"}},
	}
	for _, tt := range tests {
		for _, want := range tt.want {
			if !strings.Contains(lines[tt.line], want) {
				t.Errorf("line %d = %q, want it to contain %q", tt.line, lines[tt.line], want)
			}
		}
	}
}

func TestReportDriverMissing(t *testing.T) {
	var out bytes.Buffer
	err := reportDriver(&out, opticalflow.WithOpener(mapOpener{}))
	if !errors.Is(err, dynload.ErrLibraryNotFound) {
		t.Fatalf("reportDriver() = %v, want ErrLibraryNotFound", err)
	}
	if !strings.Contains(out.String(), "Status:      unavailable") {
		t.Errorf("output = %q, want unavailable status", out.String())
	}
}

func TestRootCommandWiring(t *testing.T) {
	want := map[string]bool{"symbols": false, "driver": false, "formats": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if rootCmd.PersistentFlags().Lookup("cuda-major") == nil {
		t.Error("--cuda-major flag not registered")
	}
}
