// Package nrml reads NRML 0.3 rupture documents into rupture.Rupture values.
//
// A document carries exactly one of three rupture markers (pointRupture,
// simpleFaultRupture, complexFaultRupture). The Reader parses the file,
// reads the shared scalars (magnitude, tectonic region), dispatches on the
// first marker found and runs the matching geometry builder. Any failure
// aborts the read; no partially built rupture is ever returned.
//
// # Positions
//
// gml:pos and gml:posList carry whitespace separated (longitude, latitude,
// depth) triples. ParsePositions converts them into geo.Location values,
// which store latitude first. The token count must be a multiple of three.
//
// # Errors
//
// Every failure is an *Error carrying a Kind, the read Stage reached, the
// source path and the XPath of the offending field. Use errors.Is with the
// Err* sentinels to branch on the kind.
//
// # Entry Points
//
// NewReader / Reader.Read: read one rupture from a file.
// Parse: load a Document from any io.Reader.
// ParsePositions: tokenise a position list.
package nrml
