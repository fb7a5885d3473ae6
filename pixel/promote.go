package pixel

// The promotion functions below are the edges of the lossless upcast
// DAG: Y8->YA8, Y8->YF, Y8->RGB8, Y8->RGBA8, YF->RGBF, YA8->RGB8,
// YA8->RGBA8, RGB8->RGBA8, RGB8->RGBF. Identity promotion (A->A) is
// always free and is simply the value itself.
//
// They are plain named functions rather than one generic `promote`
// dispatcher: each edge has distinct construction logic (e.g. what
// alpha or chroma value a narrower type is missing), so a single
// type-level dispatch would just be a switch in disguise. Composing
// functions along a DAG path satisfies promote_B(promote_A(p)) ==
// promote_B(p) along any path, because each edge is independently
// idempotent-compatible: there's exactly one value-preserving way to
// add the missing channels.

// PromoteY8ToYA8 adds a fully-opaque alpha channel.
func PromoteY8ToYA8(p Y8) YA8 { return YA8{Y: p.Y, A: 255} }

// PromoteY8ToF widens the 8-bit sample to a float32 in [0,1].
func PromoteY8ToF(p Y8) YF { return YF{Y: float32(p.Y) / 255} }

// PromoteY8ToRGB8 replicates the luminance into all three channels.
func PromoteY8ToRGB8(p Y8) RGB8 { return RGB8{R: p.Y, G: p.Y, B: p.Y} }

// PromoteY8ToRGBA8 replicates the luminance and adds full alpha.
func PromoteY8ToRGBA8(p Y8) RGBA8 { return RGBA8{R: p.Y, G: p.Y, B: p.Y, A: 255} }

// PromoteYFToRGBF replicates the float luminance into all three channels.
func PromoteYFToRGBF(p YF) RGBF { return RGBF{R: p.Y, G: p.Y, B: p.Y} }

// PromoteYA8ToRGB8 replicates luminance into RGB and drops alpha.
// Unlike the other edges of the DAG it does not preserve every value:
// RGB8 has no alpha channel, so YA8's alpha is discarded.
func PromoteYA8ToRGB8(p YA8) RGB8 { return RGB8{R: p.Y, G: p.Y, B: p.Y} }

// PromoteYA8ToRGBA8 replicates luminance into RGB and keeps alpha.
func PromoteYA8ToRGBA8(p YA8) RGBA8 { return RGBA8{R: p.Y, G: p.Y, B: p.Y, A: p.A} }

// PromoteRGB8ToRGBA8 adds a fully-opaque alpha channel.
func PromoteRGB8ToRGBA8(p RGB8) RGBA8 { return RGBA8{R: p.R, G: p.G, B: p.B, A: 255} }

// PromoteRGB8ToRGBF widens each channel to float32 in [0,1].
func PromoteRGB8ToRGBF(p RGB8) RGBF {
	return RGBF{R: float32(p.R) / 255, G: float32(p.G) / 255, B: float32(p.B) / 255}
}
