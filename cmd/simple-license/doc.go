// Command simple-license packages media files together with a rendered
// license text. Descriptive metadata is embedded into audio and PDF files
// before each file and its license are written to a zip archive.
//
// Usage:
//
//	simple-license package [flags] FILE...
//	simple-license render [flags] FILENAME
//	simple-license inspect FILE
//	simple-license types
//	simple-license config init [PATH]
//	simple-license config show
package main
