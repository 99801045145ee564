package opticalflow

import "github.com/gogpu/gputypes"

// TextureFormat returns the WebGPU texture format with the same memory layout
// as the first plane of f, for copying buffer contents into a texture.
// ok is false when WebGPU has no equivalent format.
func (f BufferFormat) TextureFormat() (format gputypes.TextureFormat, ok bool) {
	switch f {
	case BufferFormatGrayscale8:
		return gputypes.TextureFormatR8Unorm, true
	case BufferFormatABGR8:
		return gputypes.TextureFormatRGBA8Unorm, true
	default:
		return gputypes.TextureFormatUndefined, false
	}
}
