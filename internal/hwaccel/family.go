package hwaccel

// Family identifies a GPU-vendor encode path with its own encoder name,
// preset vocabulary, and rate-control flags.
type Family string

const (
	FamilyNvidia Family = "nvidia"
	FamilyIntel  Family = "intel"
	FamilyAmd    Family = "amd"
	FamilyVaapi  Family = "vaapi"
)

// SoftwareEncoder is the fallback encoder when no hardware family resolves.
const SoftwareEncoder = "libx264"

// probeOrder is the fixed priority in which candidate families are tried.
// The first family whose synthetic encode succeeds wins.
var probeOrder = []Family{FamilyNvidia, FamilyIntel, FamilyAmd, FamilyVaapi}

// SpeedPresets is the enumerated set of engine-independent preset names.
var SpeedPresets = []string{"ultrafast", "fast", "balanced", "quality"}

// Encoder returns the ffmpeg encoder name for the family.
func (f Family) Encoder() string {
	switch f {
	case FamilyNvidia:
		return "h264_nvenc"
	case FamilyIntel:
		return "h264_qsv"
	case FamilyAmd:
		return "h264_amf"
	case FamilyVaapi:
		return "h264_vaapi"
	default:
		return SoftwareEncoder
	}
}

// PreInputArgs returns the hardware flags injected before the inputs:
// device selection for vaapi, decoder acceleration for nvidia and intel.
// AMD needs none.
func (f Family) PreInputArgs() []string {
	switch f {
	case FamilyNvidia:
		return []string{"-hwaccel", "cuda"}
	case FamilyIntel:
		return []string{"-hwaccel", "qsv"}
	case FamilyVaapi:
		return []string{"-vaapi_device", "/dev/dri/renderD128"}
	default:
		return nil
	}
}

// PresetArgs maps the engine-independent speed preset through the family's
// preset vocabulary. Families without a preset flag (vaapi) and unmapped
// preset names yield no arguments; the flag is omitted rather than guessed.
func (f Family) PresetArgs(preset string) []string {
	flag, table := f.presetTable()
	if flag == "" {
		return nil
	}
	value, ok := table[preset]
	if !ok {
		return nil
	}
	return []string{flag, value}
}

// QualityArgs returns the family-specific rate-control flags.
func (f Family) QualityArgs() []string {
	switch f {
	case FamilyNvidia:
		return []string{"-rc", "vbr", "-cq", "20", "-b:v", "0"}
	case FamilyAmd:
		return []string{"-rc", "vbr_latency", "-qp_p", "20", "-qp_i", "20"}
	case FamilyIntel:
		return []string{"-global_quality", "20", "-look_ahead", "1"}
	default:
		return []string{"-qp", "20"}
	}
}

func (f Family) presetTable() (string, map[string]string) {
	switch f {
	case FamilyNvidia:
		return "-preset", map[string]string{
			"ultrafast": "p1",
			"fast":      "p4",
			"balanced":  "p5",
			"quality":   "p7",
		}
	case FamilyAmd:
		return "-quality", map[string]string{
			"ultrafast": "speed",
			"fast":      "balanced",
			"balanced":  "balanced",
			"quality":   "quality",
		}
	case FamilyIntel:
		return "-preset", map[string]string{
			"ultrafast": "veryfast",
			"fast":      "fast",
			"balanced":  "medium",
			"quality":   "veryslow",
		}
	case FamilyVaapi:
		return "", nil
	default:
		return "-preset", softwarePresets
	}
}

var softwarePresets = map[string]string{
	"ultrafast": "ultrafast",
	"fast":      "veryfast",
	"balanced":  "medium",
	"quality":   "slow",
}

// SoftwarePresetArgs maps the speed preset for the software encoder.
func SoftwarePresetArgs(preset string) []string {
	value, ok := softwarePresets[preset]
	if !ok {
		return nil
	}
	return []string{"-preset", value}
}

// ValidPreset reports whether name is one of the enumerated speed presets.
func ValidPreset(name string) bool {
	for _, preset := range SpeedPresets {
		if preset == name {
			return true
		}
	}
	return false
}
