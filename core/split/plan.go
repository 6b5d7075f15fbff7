// Package split segments one style guide document into a README fragment plus
// a set of named section fragments, each converted to Markdown independently.
//
// The segmentation is driven by a Plan: ordered lookup tables mapping heading
// identifiers to output filenames. One designated section is split a second
// time at its internal third-level headings.
package split

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// SectionRule maps one heading identifier to an output filename.
type SectionRule struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

// SubSplit designates one top-level section that is further split at its
// third-level headings. Intro is the filename for the content between the
// section heading and the first third-level heading.
type SubSplit struct {
	ID       string        `yaml:"id"`
	Dir      string        `yaml:"dir"`
	Intro    string        `yaml:"intro"`
	Sections []SectionRule `yaml:"sections"`
}

// Plan is the full split configuration for one document. Section order is
// preserved as written; it controls nothing beyond processing order, since
// fragment boundaries come from the document itself.
type Plan struct {
	ReadmeFile string        `yaml:"readme_file"`
	Sections   []SectionRule `yaml:"sections"`
	SubSplit   SubSplit      `yaml:"sub_split"`
}

// DefaultPlan returns the built-in plan for the TypeScript style guide
// document this tool was written for.
func DefaultPlan() Plan {
	return Plan{
		ReadmeFile: "README.md",
		Sections: []SectionRule{
			{ID: "introduction", File: "01-introduction.md"},
			{ID: "source-file-basics", File: "02-source-file-basics.md"},
			{ID: "source-file-structure", File: "03-source-file-structure.md"},
			{ID: "naming", File: "05-naming.md"},
			{ID: "type-system", File: "06-type-system.md"},
			{ID: "toolchain", File: "07-toolchain-requirements.md"},
			{ID: "comments", File: "08-comments-and-documentation.md"},
			{ID: "policies", File: "09-policies.md"},
		},
		SubSplit: SubSplit{
			ID:    "language-features",
			Dir:   "04-language-features",
			Intro: "README.md",
			Sections: []SectionRule{
				{ID: "local-variable-declarations", File: "01-local-variable-declarations.md"},
				{ID: "array-literals", File: "02-array-literals.md"},
				{ID: "object-literals", File: "03-object-literals.md"},
				{ID: "classes", File: "04-classes.md"},
				{ID: "functions", File: "05-functions.md"},
				{ID: "this", File: "06-this.md"},
				{ID: "interfaces", File: "07-interfaces.md"},
				{ID: "primitive-literals", File: "08-primitive-literals.md"},
				{ID: "control-structures", File: "09-control-structures.md"},
				{ID: "decorators", File: "10-decorators.md"},
				{ID: "disallowed-features", File: "11-disallowed-features.md"},
			},
		},
	}
}

// LoadPlan reads a split plan from a YAML file.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("reading plan file: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("parsing plan file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, fmt.Errorf("invalid plan file %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the plan for missing or duplicate entries.
func (p Plan) Validate() error {
	if p.ReadmeFile == "" {
		return fmt.Errorf("readme_file must be set")
	}
	if len(p.Sections) == 0 {
		return fmt.Errorf("at least one section rule is required")
	}
	seen := map[string]bool{}
	for _, r := range p.Sections {
		if r.ID == "" || r.File == "" {
			return fmt.Errorf("section rule must have both id and file (got id=%q file=%q)", r.ID, r.File)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate section id %q", r.ID)
		}
		seen[r.ID] = true
	}
	if p.SubSplit.ID != "" {
		if p.SubSplit.Dir == "" || p.SubSplit.Intro == "" {
			return fmt.Errorf("sub_split %q must have dir and intro set", p.SubSplit.ID)
		}
		subSeen := map[string]bool{}
		for _, r := range p.SubSplit.Sections {
			if r.ID == "" || r.File == "" {
				return fmt.Errorf("sub_split rule must have both id and file (got id=%q file=%q)", r.ID, r.File)
			}
			if subSeen[r.ID] {
				return fmt.Errorf("duplicate sub_split section id %q", r.ID)
			}
			subSeen[r.ID] = true
		}
	}
	return nil
}
