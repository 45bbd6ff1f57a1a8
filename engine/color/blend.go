package color

import "github.com/Carmen-Shannon/oxy-raster/common"

// BlendMode selects a separable blend formula B(Cb, Cs) applied per channel.
type BlendMode int

const (
	// BlendNormal returns the source unchanged.
	BlendNormal BlendMode = iota
	// BlendAdd sums the channels, saturating at 1.
	BlendAdd
	// BlendSubtract subtracts the source from the backdrop, saturating at 0.
	BlendSubtract
	// BlendMultiply: Cb * Cs
	BlendMultiply
	// BlendScreen: 1 - (1 - Cb) * (1 - Cs)
	BlendScreen
	// BlendOverlay: HardLight with the parameters swapped.
	BlendOverlay
	// BlendDarken: min(Cb, Cs)
	BlendDarken
	// BlendLighten: max(Cb, Cs)
	BlendLighten
	// BlendColorDodge: Cs == 1 ? 1 : min(1, Cb / (1 - Cs))
	BlendColorDodge
	// BlendColorBurn: Cs == 0 ? 0 : 1 - min(1, (1 - Cb) / Cs)
	BlendColorBurn
	// BlendDifference: |Cb - Cs|
	BlendDifference
)

var blendModeNames = map[BlendMode]string{
	BlendNormal:     "normal",
	BlendAdd:        "add",
	BlendSubtract:   "subtract",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendColorDodge: "color-dodge",
	BlendColorBurn:  "color-burn",
	BlendDifference: "difference",
}

func (m BlendMode) String() string {
	if name, ok := blendModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// channelFunc returns the per-channel formula operating on normalized [0, 1] values.
func (m BlendMode) channelFunc() func(cb, cs float32) float32 {
	switch m {
	case BlendAdd:
		return func(cb, cs float32) float32 { return min(cb+cs, 1) }
	case BlendSubtract:
		return func(cb, cs float32) float32 { return max(cb-cs, 0) }
	case BlendMultiply:
		return func(cb, cs float32) float32 { return cb * cs }
	case BlendScreen:
		return func(cb, cs float32) float32 { return 1 - (1-cb)*(1-cs) }
	case BlendOverlay:
		return func(cb, cs float32) float32 {
			if cb <= 0.5 {
				return 2 * cb * cs
			}
			return 1 - 2*(1-cb)*(1-cs)
		}
	case BlendDarken:
		return func(cb, cs float32) float32 { return min(cb, cs) }
	case BlendLighten:
		return func(cb, cs float32) float32 { return max(cb, cs) }
	case BlendColorDodge:
		return func(cb, cs float32) float32 {
			if cs >= 1 {
				return 1
			}
			return min(1, cb/(1-cs))
		}
	case BlendColorBurn:
		return func(cb, cs float32) float32 {
			if cs <= 0 {
				return 0
			}
			return 1 - min(1, (1-cb)/cs)
		}
	case BlendDifference:
		return func(cb, cs float32) float32 {
			if cb > cs {
				return cb - cs
			}
			return cs - cb
		}
	default:
		return func(_, cs float32) float32 { return common.Clamp(cs, 0, 1) }
	}
}
