// Package patterns holds the rule tables every conversion consults: asset
// directory patterns, the extension table, navigation selectors, region
// tables per dialect and the repetition thresholds.
//
// Tables are loaded once from the embedded patterns.yaml and never modified,
// so a single *Tables is shared by concurrent conversions.
package patterns

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var defaultYAML []byte

// Category maps an asset directory pattern to an output subdirectory.
type Category struct {
	Name    string
	Pattern *regexp.Regexp
}

// ExtensionGroup maps file suffixes to an output subdirectory.
type ExtensionGroup struct {
	Category string
	Suffixes []string
}

// Region is a named layout region and its candidate selectors, tried in order.
type Region struct {
	Name      string
	Selectors []string
}

// Tables is the compiled, read-only rule set.
type Tables struct {
	Categories   []Category
	Extensions   []ExtensionGroup
	NavSelectors []string
	Containers   []string
	MinChildren  int
	MinSimilar   int

	regions map[string][]Region
}

type fileTables struct {
	Assets struct {
		Categories []struct {
			Name    string `yaml:"name"`
			Pattern string `yaml:"pattern"`
		} `yaml:"categories"`
		Extensions []struct {
			Category string   `yaml:"category"`
			Suffixes []string `yaml:"suffixes"`
		} `yaml:"extensions"`
	} `yaml:"assets"`
	Navigation struct {
		Selectors []string `yaml:"selectors"`
	} `yaml:"navigation"`
	Regions    map[string][]fileRegion `yaml:"regions"`
	Repetition struct {
		Containers  []string `yaml:"containers"`
		MinChildren int      `yaml:"min_children"`
		MinSimilar  int      `yaml:"min_similar"`
	} `yaml:"repetition"`
}

type fileRegion struct {
	Name      string   `yaml:"name"`
	Selectors []string `yaml:"selectors"`
}

var loadDefault = sync.OnceValues(func() (*Tables, error) {
	return Parse(defaultYAML)
})

// Default returns the built-in tables. It panics if the embedded file is
// invalid, which can only happen in a broken build.
func Default() *Tables {
	t, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("patterns: embedded tables: %v", err))
	}
	return t
}

// Parse decodes and validates a YAML rule file.
func Parse(data []byte) (*Tables, error) {
	var f fileTables
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode patterns: %w", err)
	}

	t := &Tables{
		NavSelectors: f.Navigation.Selectors,
		Containers:   f.Repetition.Containers,
		MinChildren:  f.Repetition.MinChildren,
		MinSimilar:   f.Repetition.MinSimilar,
		regions:      make(map[string][]Region, len(f.Regions)),
	}

	for _, c := range f.Assets.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("asset category without name")
		}
		re, err := regexp.Compile("(?i)" + c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("asset category %q: %w", c.Name, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("asset category %q: pattern needs a capture group", c.Name)
		}
		t.Categories = append(t.Categories, Category{Name: c.Name, Pattern: re})
	}

	for _, e := range f.Assets.Extensions {
		suffixes := make([]string, 0, len(e.Suffixes))
		for _, s := range e.Suffixes {
			suffixes = append(suffixes, strings.ToLower(s))
		}
		t.Extensions = append(t.Extensions, ExtensionGroup{Category: e.Category, Suffixes: suffixes})
	}

	for dialect, regions := range f.Regions {
		for _, r := range regions {
			if len(r.Selectors) == 0 {
				return nil, fmt.Errorf("region %s/%s has no selectors", dialect, r.Name)
			}
			t.regions[dialect] = append(t.regions[dialect], Region{Name: r.Name, Selectors: r.Selectors})
		}
	}

	if t.MinChildren <= 0 {
		t.MinChildren = 3
	}
	if t.MinSimilar <= 0 {
		t.MinSimilar = 2
	}
	return t, nil
}

// RegionsFor returns the ordered region table for a dialect name.
func (t *Tables) RegionsFor(dialect string) []Region {
	return t.regions[dialect]
}

// CategoryForExt returns the output subdirectory for a lower-cased file
// extension such as ".png".
func (t *Tables) CategoryForExt(ext string) (string, bool) {
	ext = strings.ToLower(ext)
	for _, g := range t.Extensions {
		for _, s := range g.Suffixes {
			if s == ext {
				return g.Category, true
			}
		}
	}
	return "", false
}

// IsContainer reports whether tag is scanned for repeated children.
func (t *Tables) IsContainer(tag string) bool {
	for _, c := range t.Containers {
		if c == tag {
			return true
		}
	}
	return false
}
