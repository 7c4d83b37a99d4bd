package vulkan

import (
	"testing"

	"github.com/gogpu/rendergraph/hal"
)

func TestFormatCodes(t *testing.T) {
	tests := []struct {
		format hal.TextureFormat
		want   int
	}{
		{hal.FormatRGBA8Unorm, 37},
		{hal.FormatRGBA16Float, 97},
		{hal.FormatDepth32Float, 126},
		{hal.FormatBGRA8Unorm, 44},
	}
	for _, tt := range tests {
		if got := Format(tt.format); got != tt.want {
			t.Errorf("Format(%v) = %d, want %d", tt.format, got, tt.want)
		}
	}
}

func TestLoadOpClearCode(t *testing.T) {
	if got := LoadOp(hal.LoadOpClear); got != 1 {
		t.Errorf("LoadOp(LoadOpClear) = %d, want 1", got)
	}
}

func TestImageLayoutColorAttachmentCode(t *testing.T) {
	if got := ImageLayout(hal.LayoutColorAttachment); got != 2 {
		t.Errorf("ImageLayout(LayoutColorAttachment) = %d, want 2", got)
	}
}

func TestAccessFlagsCombines(t *testing.T) {
	flags := hal.AccessShaderRead | hal.AccessColorAttachmentWrite
	got := AccessFlags(flags)
	want := 0x00000020 | 0x00000100
	if got != want {
		t.Errorf("AccessFlags(%v) = %#x, want %#x", flags, got, want)
	}
}

func TestAccessFlagsEmpty(t *testing.T) {
	if got := AccessFlags(hal.AccessNone); got != 0 {
		t.Errorf("AccessFlags(AccessNone) = %#x, want 0", got)
	}
}

func TestShaderStageCombines(t *testing.T) {
	flags := hal.ShaderStageVertex | hal.ShaderStageFragment
	got := ShaderStage(flags)
	want := 0x00000001 | 0x00000010
	if got != want {
		t.Errorf("ShaderStage(%v) = %#x, want %#x", flags, got, want)
	}
}
