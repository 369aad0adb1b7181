// Package spritepack holds the error types shared by the atlas and
// animation pipelines.
//
// The pipelines themselves live in subpackages: paths scans directories,
// imagemeta reads image headers, sprite normalizes sprites, pack lays them
// out on shelves, atlas composites and encodes them, manifest writes the
// coordinate manifest, and anim turns frame directories into looping GIFs.
// The pipeline package runs whole categories of jobs from a config.Config.
package spritepack
