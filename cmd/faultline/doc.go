// Package main hosts the Faultline CLI entrypoint and command graph.
//
// The Cobra-based command tree reads NRML rupture documents, meshes their
// surfaces, scans directories into the SQLite catalog and scaffolds the TOML
// configuration. It centralizes configuration resolution and logger setup so
// subcommands can focus on output.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
