// Package scene provides the serialized form of a computed plant layout.
//
// A [Scene] is what leaves the process: it is written to JSON files, served
// by the HTTP API, streamed over the live WebSocket, cached and consumed by
// the renderers. It flattens a [plant.Layout] into renderer-friendly values
// (positions as [3]float64 arrays, explicit pipe endpoints by tank index,
// style colours and a platform extent).
//
// # Formats
//
//	data, _ := scene.MarshalScene(s)     // indented JSON
//	s, _ := scene.UnmarshalScene(data)   // JSON, validated
//	bin, _ := scene.MarshalMsgpack(s)    // compact binary
//	scene.WriteSceneFile(s, "plant.json")
//
// Design parameter files are read with [ReadParamsFile], which accepts JSON,
// YAML and TOML by file extension:
//
//	flowRate: 100
//	numberOfTanks: 4
//	pipeDiameter: 50
//	layoutType: compact
//
// # Concurrency
//
// All functions are safe for concurrent use.
package scene
