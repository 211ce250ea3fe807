// Package main provides the bronze stage command: one fetch of the storefront
// featured categories, saved verbatim.
package main

import "steamfeatured/internal/pipeline"

func main() {
	pipeline.Main(pipeline.CaptureStage)
}
