// Package main provides the gold stage command: aggregate the newest silver
// file into fact rows.
package main

import "steamfeatured/internal/pipeline"

func main() {
	pipeline.Main(pipeline.GoldStage)
}
