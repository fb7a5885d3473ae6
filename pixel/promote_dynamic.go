package pixel

// KindOf returns the DynamicKind tag for a concrete pixel value, via a
// type switch over the seven known pixel record types.
func KindOf(p any) DynamicKind {
	switch p.(type) {
	case Y8:
		return KindY8
	case YF:
		return KindYF
	case YA8:
		return KindYA8
	case RGB8:
		return KindRGB8
	case RGBF:
		return KindRGBF
	case RGBA8:
		return KindRGBA8
	case YCbCr8:
		return KindYCbCr8
	default:
		panic("pixel: KindOf: unknown pixel type")
	}
}

// PromoteDynamicTo promotes img along the lossless-upcast DAG to the
// requested target kind, mapping every pixel with PixelMap. It fails
// with IncompatiblePromotion if target is not reachable from img's
// current kind (the caller requested a pixel type narrower than, or
// unrelated to, what the image actually contains).
//
// The DAG has at most two hops from any source this module's decoders
// produce, so each reachable (source, target) pair is handled directly
// rather than via a general graph search; promote_B(promote_A(p)) ==
// promote_B(p) along any path holds because every multi-hop case below
// composes the same single-edge functions PromoteXToY defines in
// promote.go.
func PromoteDynamicTo(img DynamicImage, target DynamicKind) (DynamicImage, error) {
	if img.Kind() == target {
		return img, nil
	}

	switch v := img.(type) {
	case DynY8:
		switch target {
		case KindYA8:
			return DynYA8{Image: PixelMap[uint8, Y8, uint8, YA8](v.Image, PromoteY8ToYA8)}, nil
		case KindYF:
			return DynYF{Image: PixelMap[uint8, Y8, float32, YF](v.Image, PromoteY8ToF)}, nil
		case KindRGB8:
			return DynRGB8{Image: PixelMap[uint8, Y8, uint8, RGB8](v.Image, PromoteY8ToRGB8)}, nil
		case KindRGBA8:
			return DynRGBA8{Image: PixelMap[uint8, Y8, uint8, RGBA8](v.Image, PromoteY8ToRGBA8)}, nil
		case KindRGBF:
			return DynRGBF{Image: PixelMap[uint8, Y8, float32, RGBF](v.Image, func(p Y8) RGBF {
				return PromoteRGB8ToRGBF(PromoteY8ToRGB8(p))
			})}, nil
		}
	case DynYF:
		if target == KindRGBF {
			return DynRGBF{Image: PixelMap[float32, YF, float32, RGBF](v.Image, PromoteYFToRGBF)}, nil
		}
	case DynYA8:
		switch target {
		case KindRGB8:
			return DynRGB8{Image: PixelMap[uint8, YA8, uint8, RGB8](v.Image, PromoteYA8ToRGB8)}, nil
		case KindRGBA8:
			return DynRGBA8{Image: PixelMap[uint8, YA8, uint8, RGBA8](v.Image, PromoteYA8ToRGBA8)}, nil
		case KindRGBF:
			return DynRGBF{Image: PixelMap[uint8, YA8, float32, RGBF](v.Image, func(p YA8) RGBF {
				return PromoteRGB8ToRGBF(PromoteYA8ToRGB8(p))
			})}, nil
		}
	case DynRGB8:
		switch target {
		case KindRGBA8:
			return DynRGBA8{Image: PixelMap[uint8, RGB8, uint8, RGBA8](v.Image, PromoteRGB8ToRGBA8)}, nil
		case KindRGBF:
			return DynRGBF{Image: PixelMap[uint8, RGB8, float32, RGBF](v.Image, PromoteRGB8ToRGBF)}, nil
		}
	}

	return nil, Errorf(IncompatiblePromotion, "cannot promote %s to %s", img.Kind(), target)
}
