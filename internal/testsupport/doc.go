// Package testsupport builds small but structurally valid media files for
// tests. Every fixture is generated in code so no binary files are checked in.
package testsupport
