package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the name of the per-directory CLI settings file.
const ProjectFile = ".html2twig.yaml"

// Project holds CLI defaults read from ProjectFile. Command-line flags
// override every field.
type Project struct {
	Target    string `yaml:"target"`
	Layout    string `yaml:"layout"`
	Theme     string `yaml:"theme"`
	OutputDir string `yaml:"output_dir"`
	Report    *bool  `yaml:"report"`
	Workers   int    `yaml:"workers"`
}

// WantReport reports whether conversion reports should be written. It
// defaults to true when the file does not say.
func (p Project) WantReport() bool {
	return p.Report == nil || *p.Report
}

// LoadProject reads ProjectFile from dir. A missing file yields the zero
// Project and no error.
func LoadProject(dir string) (Project, error) {
	path := filepath.Join(dir, ProjectFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Project{}, nil
	}
	if err != nil {
		return Project{}, fmt.Errorf("read %s: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Workers < 0 {
		return Project{}, fmt.Errorf("parse %s: workers must not be negative", path)
	}
	return p, nil
}
