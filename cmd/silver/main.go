// Package main provides the silver stage command: normalize, validate and
// deduplicate every bronze file.
package main

import "steamfeatured/internal/pipeline"

func main() {
	pipeline.Main(pipeline.SilverStage)
}
