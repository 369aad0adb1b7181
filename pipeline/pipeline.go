// Package pipeline runs every atlas and animation job a configuration
// enables.
//
// Jobs are independent. A failing job is logged and recorded in the Report;
// the remaining jobs still run.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritepack/anim"
	"badc0de.net/pkg/spritepack/atlas"
	"badc0de.net/pkg/spritepack/config"
	"badc0de.net/pkg/spritepack/manifest"
	"badc0de.net/pkg/spritepack/paths"
)

// Kind tells atlas jobs from animation jobs.
type Kind int

const (
	AtlasJob Kind = iota
	AnimationJob
)

func (k Kind) String() string {
	switch k {
	case AtlasJob:
		return "atlas"
	case AnimationJob:
		return "animation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Job is the outcome of one atlas category or one animation.
type Job struct {
	Kind Kind
	// Name is the category for atlases and "<category>/<subdir>" for
	// animations.
	Name    string
	Source  string
	Outputs []string
	Err     error
}

// Report lists every job Run attempted, in the order they ran.
type Report struct {
	Jobs []Job
}

// Failed returns the jobs that did not complete.
func (r Report) Failed() []Job {
	var failed []Job
	for _, j := range r.Jobs {
		if j.Err != nil {
			failed = append(failed, j)
		}
	}
	return failed
}

// Err summarizes failed jobs in a single error, or returns nil when every
// job succeeded.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, len(failed))
	for i, j := range failed {
		names[i] = j.Kind.String() + " " + j.Name
	}
	return errors.Errorf("%d of %d jobs failed: %s", len(failed), len(r.Jobs), strings.Join(names, ", "))
}

// Run executes the atlas jobs and then the animation jobs enabled in cfg,
// one at a time.
func Run(cfg config.Config) Report {
	var r Report
	for _, cat := range cfg.Atlases {
		r.Jobs = append(r.Jobs, runAtlas(cfg, cat))
	}
	assembler := anim.New(cfg)
	for _, cat := range cfg.Animations {
		r.Jobs = append(r.Jobs, runAnimations(cfg, assembler, cat)...)
	}
	return r
}

func runAtlas(cfg config.Config, cat string) Job {
	j := Job{
		Kind:   AtlasJob,
		Name:   cat,
		Source: filepath.Join(cfg.AssetsPath, cat),
	}
	outDir := filepath.Join(cfg.OutputPath, cat)
	imagePath := filepath.Join(outDir, cfg.AtlasImageName)
	manifestPath := filepath.Join(outDir, cfg.AtlasManifestName)

	if _, err := atlas.Generate(cfg, j.Source, imagePath, manifestPath); err != nil {
		j.Err = err
		glog.Errorf("atlas %s: %v", cat, err)
		return j
	}
	j.Outputs = []string{imagePath, manifestPath, manifest.MinifiedPath(manifestPath)}
	return j
}

// runAnimations turns every subdirectory of the category into a GIF. A
// category that cannot be listed is reported as a single failed job.
func runAnimations(cfg config.Config, a *anim.Assembler, cat string) []Job {
	catDir := filepath.Join(cfg.AssetsPath, cat)
	subdirs, err := paths.Subdirectories(catDir)
	if err != nil {
		glog.Errorf("animation category %s: %v", cat, err)
		return []Job{{Kind: AnimationJob, Name: cat, Source: catDir, Err: err}}
	}
	if len(subdirs) == 0 {
		glog.Warningf("animation category %s: no subdirectories in %s", cat, catDir)
	}

	jobs := make([]Job, 0, len(subdirs))
	for _, sub := range subdirs {
		j := Job{
			Kind:   AnimationJob,
			Name:   cat + "/" + sub,
			Source: filepath.Join(catDir, sub),
		}
		out := filepath.Join(cfg.OutputPath, cat, sub+".gif")
		if err := a.Assemble(j.Source, out); err != nil {
			j.Err = err
			glog.Errorf("animation %s: %v", j.Name, err)
		} else {
			j.Outputs = []string{out}
		}
		jobs = append(jobs, j)
	}
	return jobs
}
