// Package main provides the unified command that runs capture, silver and
// gold once, in order.
package main

import "steamfeatured/internal/pipeline"

func main() {
	pipeline.Main(pipeline.CaptureStage, pipeline.SilverStage, pipeline.GoldStage)
}
