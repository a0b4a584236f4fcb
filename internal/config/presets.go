package config

import "sort"

var Presets = map[string]*Config{
	"scenario-bubble": {Algorithm: "bubble", List: []int{5, 1, 4, 2, 8}},
	"scenario-quick":  {Algorithm: "quick", List: []int{3, 6, 2, 7}},
	"scenario-merge":  {Algorithm: "merge", List: []int{4, 2}},
	"reversed":        {Algorithm: "insertion", List: []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}},
	"sorted":          {Algorithm: "bubble", List: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	"duplicates":      {Algorithm: "quick", List: []int{7, 3, 7, 1, 3, 7, 1, 3}},
	"max": {
		Algorithm: "merge",
		List: []int{
			100, 96, 92, 88, 84, 80, 76, 72, 68, 64, 60, 56, 52,
			48, 44, 40, 36, 32, 28, 24, 20, 16, 12, 8, 4,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
