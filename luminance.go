package fastdhash

// lumaScale keeps the Rec. 601 luma weights (0.299, 0.587, 0.114) as exact
// integers: luminance values are 1000× luma. The scale divides out when
// grid bins are compared.
const lumaScale = 1000

// luminance converts one pixel's channel bytes to scaled luma. A single
// channel is used as-is, gray+alpha uses the gray channel, and three or
// four channels apply Rec. 601 weighting to R, G, B. Alpha never
// contributes. No gamma correction.
func luminance(px []byte, channels int) int64 {
	switch channels {
	case 1, 2:
		return int64(px[0]) * lumaScale
	default:
		return 299*int64(px[0]) + 587*int64(px[1]) + 114*int64(px[2])
	}
}
