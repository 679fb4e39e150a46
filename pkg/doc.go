// Package pkg provides the core libraries for blobposter.
//
// # Overview
//
// Blobposter composes abstract posters from eight translucent, irregular
// blobs drawn from a named color palette. The pkg directory is organized
// into three areas:
//
//  1. Catalogs: [palette] and [style] hold the fixed palette and style tables
//  2. Composition: [blob] builds closed outlines, [poster] layers them
//  3. Output: [render] draws posters, [pipeline] ties everything together
//
// # Architecture
//
// The typical data flow:
//
//	palette name, style name, seed
//	         ↓
//	    [palette] + [style] (resolve)
//	         ↓
//	    [poster] package (8 layers of [blob] outlines)
//	         ↓
//	    [render] package (PNG, SVG, JSON, terminal preview)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/blobposter/pkg/palette"
//	    "github.com/matzehuels/blobposter/pkg/poster"
//	    "github.com/matzehuels/blobposter/pkg/render"
//	    "github.com/matzehuels/blobposter/pkg/style"
//	)
//
//	pal, _ := palette.Get("Pastel colors only")
//	p := poster.Compose(pal, style.Resolve("vivid"), poster.NewSource(42))
//	png, _ := render.PNG(p)
//
// Most callers use [pipeline.Runner] instead, which validates options,
// picks a seed and reports through the [observability] hooks.
//
// # Supporting Packages
//
// [errors] - Coded errors shared by the CLI, the web API and the pipeline.
//
// [fonts] - The embedded Go fonts used for poster text.
//
// [buildinfo] - Version information set at build time.
package pkg
