package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a YAML-declared seeding profile, so demo environments can be
// described in a checked-in file instead of command line flags.
//
//	users: 25
//	posts_per_user: 4
//	clean: true
//	rand_seed: 42
type Preset struct {
	Users        int   `yaml:"users"`
	PostsPerUser int   `yaml:"posts_per_user"`
	Clean        bool  `yaml:"clean"`
	RandSeed     int64 `yaml:"rand_seed"`
}

// LoadPreset reads a preset file and converts it to run options. Counts
// default to a small demo data set when omitted.
func LoadPreset(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading preset %s: %w", path, err)
	}

	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return Options{}, fmt.Errorf("parsing preset %s: %w", path, err)
	}

	opts := Options{
		Users:        preset.Users,
		PostsPerUser: preset.PostsPerUser,
		Clean:        preset.Clean,
		RandSeed:     preset.RandSeed,
	}
	if opts.Users <= 0 {
		opts.Users = 10
	}
	if opts.PostsPerUser <= 0 {
		opts.PostsPerUser = 3
	}
	return opts, nil
}
