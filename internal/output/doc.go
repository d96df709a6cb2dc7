// Package output renders slicing rows for the terminal and for files.
//
// The package is organized around two concerns:
//
//   - Rendering (render.go): table, YAML, JSON and CSV encodings of a
//     [dataset.Dataset], keeping the column order of the header.
//
//   - Writers (writer.go): Pluggable output destinations via the [Writer]
//     interface, with [StdoutWriter] and [FileWriter] implementations.
package output
