package opticalflow

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewBufferDescriptor(t *testing.T) {
	d := NewBufferDescriptor(640, 480, BufferFormatNV12, BufferUsageInput)
	want := BufferDescriptor{Width: 640, Height: 480, Usage: BufferUsageInput, Format: BufferFormatNV12}
	if d != want {
		t.Errorf("NewBufferDescriptor() = %+v, want %+v", d, want)
	}
	if again := NewBufferDescriptor(640, 480, BufferFormatNV12, BufferUsageInput); again != d {
		t.Error("NewBufferDescriptor is not a pure function of its inputs")
	}
	if got := d.String(); got != "640x480 NV12 Input" {
		t.Errorf("String() = %q", got)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSuccess, "NV_OF_SUCCESS"},
		{StatusOutOfMemory, "NV_OF_ERR_OUT_OF_MEMORY"},
		{StatusGeneric, "NV_OF_ERR_GENERIC"},
		{Status(99), "Status(99)"},
		{Status(-1), "Status(-1)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBufferFormat(t *testing.T) {
	tests := []struct {
		format     BufferFormat
		wantString string
		wantBPP    int
		wantRows   uint64
	}{
		{BufferFormatUndefined, "Undefined", 0, 10},
		{BufferFormatGrayscale8, "Grayscale8", 1, 10},
		{BufferFormatNV12, "NV12", 1, 15},
		{BufferFormatABGR8, "ABGR8", 4, 10},
		{BufferFormatShort, "Short", 2, 10},
		{BufferFormatShort2, "Short2", 4, 10},
		{BufferFormatUint, "Uint", 4, 10},
		{BufferFormatUint8, "Uint8", 1, 10},
		{BufferFormat(42), "Unknown(42)", 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			if got := tt.format.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
			if got := tt.format.BytesPerPixel(); got != tt.wantBPP {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.wantBPP)
			}
			if got := tt.format.planeRows(10); got != tt.wantRows {
				t.Errorf("planeRows(10) = %d, want %d", got, tt.wantRows)
			}
		})
	}
}

func TestBufferUsageString(t *testing.T) {
	for u, want := range map[BufferUsage]string{
		BufferUsageUndefined:  "Undefined",
		BufferUsageInput:      "Input",
		BufferUsageOutput:     "Output",
		BufferUsageHint:       "Hint",
		BufferUsageCost:       "Cost",
		BufferUsageGlobalFlow: "GlobalFlow",
		BufferUsage(9):        "Unknown(9)",
	} {
		if got := u.String(); got != want {
			t.Errorf("BufferUsage(%d).String() = %q, want %q", uint32(u), got, want)
		}
	}
}

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		format BufferFormat
		want   gputypes.TextureFormat
		wantOK bool
	}{
		{BufferFormatGrayscale8, gputypes.TextureFormatR8Unorm, true},
		{BufferFormatABGR8, gputypes.TextureFormatRGBA8Unorm, true},
		{BufferFormatNV12, gputypes.TextureFormatUndefined, false},
		{BufferFormatShort2, gputypes.TextureFormatUndefined, false},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got, ok := tt.format.TextureFormat()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("TextureFormat() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
