package dsp

import "testing"

func u8x4Image(t *testing.T, width, height int, pixels []U8x4Pixel) *Image {
	t.Helper()
	buf := make([]byte, width*height*4)
	for i, p := range pixels {
		copy(buf[i*4:], p[:])
	}
	img, err := NewImage(width, height, buf, U8x4)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	return img
}

func readU8x4Pixel(img *Image) []U8x4Pixel {
	v, _ := AsTyped[U8x4Pixel](img)
	out := make([]U8x4Pixel, 0, img.Width()*img.Height())
	for y := 0; y < img.Height(); y++ {
		out = append(out, v.Row(y)...)
	}
	return out
}

// TestMultiplyAlphaS1 checks premultiply against hand-computed values
// across every CPU tier.
func TestMultiplyAlphaS1(t *testing.T) {
	for _, tier := range []CPUExtensions{CPUNone, CPUSSE41, CPUAVX2} {
		t.Run(tier.String(), func(t *testing.T) {
			src := u8x4Image(t, 2, 1, []U8x4Pixel{{255, 128, 0, 128}, {0, 0, 0, 0}})
			dst := u8x4Image(t, 2, 1, make([]U8x4Pixel, 2))
			if err := MultiplyAlpha(src, dst, tier, false); err != nil {
				t.Fatalf("MultiplyAlpha: %v", err)
			}
			want := []U8x4Pixel{{128, 64, 0, 128}, {0, 0, 0, 0}}
			got := readU8x4Pixel(dst)
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("pixel %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

// TestDivideAlphaS2 checks unpremultiply against a hand-computed value.
func TestDivideAlphaS2(t *testing.T) {
	src := u8x4Image(t, 1, 1, []U8x4Pixel{{128, 64, 0, 128}})
	dst := u8x4Image(t, 1, 1, make([]U8x4Pixel, 1))
	if err := DivideAlpha(src, dst, CPUNone, false); err != nil {
		t.Fatalf("DivideAlpha: %v", err)
	}
	want := U8x4Pixel{255, 128, 0, 128}
	if got := readU8x4Pixel(dst)[0]; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestDivideAlphaS3 covers the alpha == 0 short-circuit.
func TestDivideAlphaS3(t *testing.T) {
	src := u8x4Image(t, 1, 1, []U8x4Pixel{{200, 200, 200, 0}})
	dst := u8x4Image(t, 1, 1, make([]U8x4Pixel, 1))
	if err := DivideAlpha(src, dst, CPUNone, false); err != nil {
		t.Fatalf("DivideAlpha: %v", err)
	}
	want := U8x4Pixel{0, 0, 0, 0}
	if got := readU8x4Pixel(dst)[0]; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestMultiplyAlphaPreservesAlpha is invariant 1.
func TestMultiplyAlphaPreservesAlpha(t *testing.T) {
	pixels := make([]U8x4Pixel, 256)
	for a := 0; a < 256; a++ {
		pixels[a] = U8x4Pixel{200, 100, 50, byte(a)}
	}
	src := u8x4Image(t, 256, 1, pixels)
	dst := u8x4Image(t, 256, 1, make([]U8x4Pixel, 256))
	if err := MultiplyAlpha(src, dst, CPUNone, false); err != nil {
		t.Fatal(err)
	}
	got := readU8x4Pixel(dst)
	for a := 0; a < 256; a++ {
		if got[a][3] != byte(a) {
			t.Fatalf("alpha %d: channel 3 = %d, want %d", a, got[a][3], a)
		}
	}
}

// TestDivideMultiplyRoundTrip is invariant 2: divide(multiply(x)) ~= x,
// within 1 per channel for alpha>0, exactly (0,0,0,0) for alpha==0.
func TestDivideMultiplyRoundTrip(t *testing.T) {
	var pixels []U8x4Pixel
	for a := 1; a < 256; a += 7 {
		for c := 0; c < 256; c += 17 {
			pixels = append(pixels, U8x4Pixel{byte(c), byte(c), byte(c), byte(a)})
		}
	}
	pixels = append(pixels, U8x4Pixel{200, 200, 200, 0})

	src := u8x4Image(t, len(pixels), 1, pixels)
	premult := u8x4Image(t, len(pixels), 1, make([]U8x4Pixel, len(pixels)))
	if err := MultiplyAlpha(src, premult, CPUNone, false); err != nil {
		t.Fatal(err)
	}
	roundTrip := u8x4Image(t, len(pixels), 1, make([]U8x4Pixel, len(pixels)))
	if err := DivideAlpha(premult, roundTrip, CPUNone, false); err != nil {
		t.Fatal(err)
	}

	orig := readU8x4Pixel(src)
	got := readU8x4Pixel(roundTrip)
	for i := range orig {
		if orig[i][3] == 0 {
			if got[i] != (U8x4Pixel{}) {
				t.Fatalf("pixel %d: alpha 0 round trip = %v, want zero pixel", i, got[i])
			}
			continue
		}
		for ch := 0; ch < 3; ch++ {
			delta := int(got[i][ch]) - int(orig[i][ch])
			if delta < 0 {
				delta = -delta
			}
			if delta > 1 {
				t.Fatalf("pixel %d channel %d: round trip %d vs original %d (delta %d)", i, ch, got[i][ch], orig[i][ch], delta)
			}
		}
	}
}

// TestTiersAgreeOnMultiply is invariant 3 for multiply: all tiers produce
// byte-exact identical output.
func TestTiersAgreeOnMultiply(t *testing.T) {
	var pixels []U8x4Pixel
	for a := 0; a < 256; a++ {
		pixels = append(pixels, U8x4Pixel{byte(a), byte(255 - a), byte(a / 2), byte(a)})
	}
	// Use a width not a multiple of 4 or 8 to exercise tail handling.
	width := len(pixels) - 3
	pixels = pixels[:width]

	results := map[CPUExtensions][]U8x4Pixel{}
	for _, tier := range []CPUExtensions{CPUNone, CPUSSE41, CPUAVX2} {
		src := u8x4Image(t, width, 1, pixels)
		dst := u8x4Image(t, width, 1, make([]U8x4Pixel, width))
		if err := MultiplyAlpha(src, dst, tier, false); err != nil {
			t.Fatal(err)
		}
		results[tier] = readU8x4Pixel(dst)
	}
	base := results[CPUNone]
	for tier, got := range results {
		for i := range base {
			if got[i] != base[i] {
				t.Fatalf("tier %s pixel %d = %v, scalar = %v", tier, i, got[i], base[i])
			}
		}
	}
}

// TestTiersWithinToleranceOnDivide is invariant 3 for divide: tiers may
// differ from the scalar table-based reference by at most 1 per channel.
func TestTiersWithinToleranceOnDivide(t *testing.T) {
	var pixels []U8x4Pixel
	for a := 1; a < 256; a++ {
		pixels = append(pixels, U8x4Pixel{byte(a), byte(255 - a), byte((a * 37) % 256), byte(a)})
	}
	width := len(pixels)

	scalarSrc := u8x4Image(t, width, 1, pixels)
	scalarDst := u8x4Image(t, width, 1, make([]U8x4Pixel, width))
	if err := DivideAlpha(scalarSrc, scalarDst, CPUNone, false); err != nil {
		t.Fatal(err)
	}
	scalar := readU8x4Pixel(scalarDst)

	for _, tier := range []CPUExtensions{CPUSSE41, CPUAVX2} {
		src := u8x4Image(t, width, 1, pixels)
		dst := u8x4Image(t, width, 1, make([]U8x4Pixel, width))
		if err := DivideAlpha(src, dst, tier, false); err != nil {
			t.Fatal(err)
		}
		got := readU8x4Pixel(dst)
		for i := range scalar {
			for ch := 0; ch < 4; ch++ {
				delta := int(got[i][ch]) - int(scalar[i][ch])
				if delta < 0 {
					delta = -delta
				}
				if delta > 1 {
					t.Fatalf("tier %s pixel %d channel %d = %d, scalar = %d (delta %d)", tier, i, ch, got[i][ch], scalar[i][ch], delta)
				}
			}
		}
	}
}

// TestAlphaShapeMismatch covers the IncompatibleShapes contract.
func TestAlphaShapeMismatch(t *testing.T) {
	src := u8x4Image(t, 2, 1, make([]U8x4Pixel, 2))
	dst := u8x4Image(t, 1, 1, make([]U8x4Pixel, 1))
	if err := MultiplyAlpha(src, dst, CPUNone, false); err != ErrIncompatibleShapes {
		t.Fatalf("got %v, want ErrIncompatibleShapes", err)
	}
}

// TestAlphaUnsupportedFormat covers the UnsupportedFormat contract for
// non-4-channel formats.
func TestAlphaUnsupportedFormat(t *testing.T) {
	buf := make([]byte, 4)
	src, _ := NewImage(4, 1, buf, U8)
	dst, _ := NewImage(4, 1, make([]byte, 4), U8)
	if err := MultiplyAlpha(src, dst, CPUNone, false); err != ErrUnsupportedFormat {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

// TestMultiplyAlphaInPlace exercises the aliased in-place path.
func TestMultiplyAlphaInPlace(t *testing.T) {
	img := u8x4Image(t, 2, 1, []U8x4Pixel{{255, 128, 0, 128}, {0, 0, 0, 0}})
	if err := MultiplyAlphaInPlace(img, CPUNone, false); err != nil {
		t.Fatal(err)
	}
	want := []U8x4Pixel{{128, 64, 0, 128}, {0, 0, 0, 0}}
	got := readU8x4Pixel(img)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestParallelMatchesSequential is invariant 8: row-partitioned execution
// produces the same bytes as single-threaded execution.
func TestParallelMatchesSequential(t *testing.T) {
	var pixels []U8x4Pixel
	for i := 0; i < 4000; i++ {
		pixels = append(pixels, U8x4Pixel{byte(i), byte(i * 3), byte(i * 7), byte(1 + i%255)})
	}
	width, height := 200, len(pixels)/200

	seqSrc := u8x4Image(t, width, height, pixels)
	seqDst := u8x4Image(t, width, height, make([]U8x4Pixel, width*height))
	if err := MultiplyAlpha(seqSrc, seqDst, CPUNone, false); err != nil {
		t.Fatal(err)
	}

	parSrc := u8x4Image(t, width, height, pixels)
	parDst := u8x4Image(t, width, height, make([]U8x4Pixel, width*height))
	if err := MultiplyAlpha(parSrc, parDst, CPUNone, true); err != nil {
		t.Fatal(err)
	}

	seq := readU8x4Pixel(seqDst)
	par := readU8x4Pixel(parDst)
	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("pixel %d: sequential %v, parallel %v", i, seq[i], par[i])
		}
	}
}
