// Package io reads seating problems from files and writes solve results.
//
// # Problem Files
//
// Problems are written in TOML or JSON. The format is chosen from the file
// extension (".toml" or ".json"):
//
//	name   = "Smith wedding"
//	tables = 2
//	seats  = 2
//	guests = ["Alice", "Bob", "Carol", "Dave"]
//
//	together = [["Alice", "Carol"]]
//	apart    = [["Alice", "Bob"]]
//
//	# Optional fixed seating, checked by "seatplan check".
//	seating = [["Alice", "Carol"], ["Bob", "Dave"]]
//
// Unknown keys are rejected so that typos such as "apparts" do not silently
// drop rules.
//
// # Results
//
// [WriteResult] and [WriteCheckReport] encode their values as indented JSON.
// [ExportResult] is the file-based convenience wrapper.
package io
