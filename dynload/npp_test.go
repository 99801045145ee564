package dynload

import (
	"strings"
	"testing"
)

func TestVersionedLibrary(t *testing.T) {
	l := VersionedLibrary("nppc", 12, "hint")
	if l.Name != "libnppc" {
		t.Errorf("Name = %q, want libnppc", l.Name)
	}
	if len(l.Candidates) != 2 {
		t.Fatalf("Candidates = %v, want 2 entries", l.Candidates)
	}
	if !strings.Contains(l.Candidates[0], "12") {
		t.Errorf("first candidate %q is not version qualified", l.Candidates[0])
	}
	if strings.Contains(l.Candidates[1], "12") {
		t.Errorf("second candidate %q should be unversioned", l.Candidates[1])
	}
}

func TestNPPLibrariesOrder(t *testing.T) {
	libs := NPPLibraries(DefaultCUDAMajor)
	if len(libs) != 2 {
		t.Fatalf("NPPLibraries() returned %d libraries, want 2", len(libs))
	}
	if libs[0].Name != "libnppicc" || libs[1].Name != "libnppc" {
		t.Errorf("lookup order = %s, %s; want libnppicc, libnppc", libs[0].Name, libs[1].Name)
	}
	for _, l := range libs {
		if l.Hint == "" {
			t.Errorf("%s has no remediation hint", l.Name)
		}
	}
}

func TestNewNPPResolverUsesOpener(t *testing.T) {
	f := newFakeOpener()
	libs := NPPLibraries(11)
	f.install(libs[0].Candidates[0], 1, "nppiNV12ToRGB_8u_P2C3R")
	f.install(libs[1].Candidates[1], 2, "nppGetStreamContext")

	r := NewNPPResolver(11, WithOpener(f))
	for _, sym := range []string{"nppiNV12ToRGB_8u_P2C3R", "nppGetStreamContext"} {
		if ok, err := r.IsAvailable(sym); err != nil || !ok {
			t.Errorf("IsAvailable(%q) = %v, %v; want true, nil", sym, ok, err)
		}
	}
	if ok, _ := r.IsAvailable("nppiNotARealFunction"); ok {
		t.Error("unexpected symbol reported available")
	}
}

func TestCUDAMajorFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", DefaultCUDAMajor},
		{"12", 12},
		{"abc", DefaultCUDAMajor},
		{"-1", DefaultCUDAMajor},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(CUDAMajorEnv, tt.value)
			if got := cudaMajorFromEnv(); got != tt.want {
				t.Errorf("cudaMajorFromEnv() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNPPIsSingleton(t *testing.T) {
	if NPP() != NPP() {
		t.Error("NPP() returned different resolvers")
	}
	if len(NPP().Libraries()) != 2 {
		t.Errorf("NPP() has %d libraries, want 2", len(NPP().Libraries()))
	}
}
