package config

// Presets are ready-made run configurations keyed by name.
var Presets = map[string]*Config{
	"pulse": {
		Width: 256, Height: 256, Steps: 400, Boundary: "cpml", Scenario: "empty",
		Source: SourceConfig{Type: "point", Waveform: "ricker", Mode: "soft",
			X: 128, Y: 128, Frequency: 0.05, Amplitude: 1, Center: 60},
		Probe: ProbeConfig{X: 192, Y: 128, Size: 256},
	},
	"double-slit": {
		Width: 384, Height: 384, Steps: 900, Boundary: "cpml", Scenario: "double-slit",
		Source: SourceConfig{Type: "plane", Waveform: "sine", Mode: "soft",
			X: 20, Frequency: 0.05, Amplitude: 1},
		Probe: ProbeConfig{X: 300, Y: 192, Size: 512},
	},
	"waveguide": {
		Width: 384, Height: 384, Steps: 1200, Boundary: "cpml", Scenario: "waveguide",
		Source: SourceConfig{Type: "beam", Waveform: "sine", Mode: "soft",
			X: 40, Y: 192, Frequency: 0.08, Amplitude: 1, Waist: 8},
		Probe: ProbeConfig{X: 288, Y: 60, Size: 512},
	},
	"lens": {
		Width: 384, Height: 384, Steps: 900, Boundary: "cpml", Scenario: "lens",
		Source: SourceConfig{Type: "plane", Waveform: "sine", Mode: "soft",
			X: 24, Frequency: 0.06, Amplitude: 1},
		Probe: ProbeConfig{X: 310, Y: 192, Size: 512},
	},
	"steered-array": {
		Width: 300, Height: 300, Steps: 700, Boundary: "cpml", Scenario: "empty",
		Source: SourceConfig{Type: "array", Waveform: "sine", Mode: "soft",
			X: 40, Y: 115, Frequency: 0.08, Amplitude: 1,
			Elements: 8, Spacing: 10, Phase: 0.7853981633974483},
		Probe: ProbeConfig{X: 220, Y: 150, Size: 512},
	},
}

// GetPreset returns the named preset, or nil.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
