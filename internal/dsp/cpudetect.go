package dsp

import "golang.org/x/sys/cpu"

// CPUExtensions is a coarse SIMD capability tier, ordered by capability.
// Selection is advisory: SetCPUExtensions on AlphaEngine/Resizer records
// the caller's request, and the dispatcher downgrades to the next lower
// tier when the requested tier is not actually available at dispatch
// time. Scalar implementations always exist; vector tiers are only
// reached when the host and build actually support them, as probed once
// at package init via a real feature-detection library rather than
// hand-rolled CPUID assembly.
type CPUExtensions int

const (
	CPUNone CPUExtensions = iota
	CPUSSE2
	CPUSSE41
	CPUAVX2
	CPUNEON
)

// String implements fmt.Stringer.
func (t CPUExtensions) String() string {
	switch t {
	case CPUNone:
		return "none"
	case CPUSSE2:
		return "sse2"
	case CPUSSE41:
		return "sse4.1"
	case CPUAVX2:
		return "avx2"
	case CPUNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// detectedTier is the highest CPUExtensions tier actually present on the
// host, probed once via golang.org/x/sys/cpu at package init (see
// DESIGN.md for why hand-rolled CPUID assembly was not used instead).
var detectedTier CPUExtensions

func init() {
	detectedTier = probeCPUExtensions()
}

func probeCPUExtensions() CPUExtensions {
	switch {
	case cpu.X86.HasAVX2:
		return CPUAVX2
	case cpu.X86.HasSSE41:
		return CPUSSE41
	case cpu.X86.HasSSE2:
		return CPUSSE2
	case cpu.ARM64.HasASIMD:
		return CPUNEON
	default:
		return CPUNone
	}
}

// DetectedCPUExtensions returns the highest SIMD tier this process has
// detected as available on the host.
func DetectedCPUExtensions() CPUExtensions {
	return detectedTier
}

// resolveTier returns the tier to actually dispatch to: the lesser of the
// caller's requested tier and what was detected on the host. On an ARM
// host (detected CPUNEON) the x86 tiers are not available and resolve to
// CPUNone. Unknown or out-of-range requested tags resolve to CPUNone.
func resolveTier(requested CPUExtensions) CPUExtensions {
	if requested < CPUNone || requested > CPUNEON {
		return CPUNone
	}
	if detectedTier == CPUNEON && requested != CPUNEON {
		return CPUNone
	}
	if requested > detectedTier {
		return detectedTier
	}
	return requested
}
