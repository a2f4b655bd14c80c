package config

import "sort"

var presets = map[string]*Config{
	// the textbook setup: B = A = N = omega = 1
	"classroom": {
		Field: "cosine", Omega: 1.0, PeakField: 1.0,
		CoilWidth: 1.0, CoilHeight: 1.0, Turns: 1.0,
		Dt: 0.05, Duration: 10.0, Frames: DefaultFrames,
	},
	"fast": {
		Field: "cosine", Omega: 6.0, PeakField: 1.0,
		CoilWidth: 1.0, CoilHeight: 1.0, Turns: 1.0,
		Dt: 0.01, Duration: 10.0, Frames: DefaultFrames,
	},
	"reverse": {
		Field: "cosine", Omega: -2.0, PeakField: 0.8,
		CoilWidth: 1.0, CoilHeight: 1.0, Turns: 1.0,
		Dt: 0.05, Duration: 10.0, Frames: DefaultFrames,
	},
	"strong": {
		Field: "cosine", Omega: 2.0, PeakField: 1.5,
		CoilWidth: 0.5, CoilHeight: 0.4, Turns: 20.0,
		Dt: 0.02, Duration: 10.0, Frames: DefaultFrames,
	},
	"dipole": {
		Field: "dipole", Omega: 2.0, PeakField: 1.0,
		CoilWidth: 1.0, CoilHeight: 1.0, Turns: 1.0,
		Dt: 0.05, Duration: 10.0, Frames: DefaultFrames,
	},
}

func GetPreset(name string) *Config {
	return presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
