// Package caf implements the COMES Archive Format, a line-oriented text
// archive in which every integer — the version, the entry count, payload
// sizes, and the payload bytes themselves — is spelled out in Polish
// cardinal numerals.
//
// An archive has three sections:
//   - Header: the magic "CAF " followed by the version numeral.
//   - Index: "INDEKS " with the entry count, then one "KATALOG " line per
//     directory marker and one "PLIK " line per file marker.
//   - Files: for each file entry, "ROZMIAR " with the payload length and
//     the payload encoded as 64-bit big-endian groups, runs of identical
//     groups collapsed with an " X " repeat suffix.
//
// Values larger than one byte are written as byte numerals joined by "<<",
// most significant first: 258 is "jeden<<dwa".
//
// # Quick start
//
// Pack a directory and write the archive:
//
//	b := caf.NewBuilder()
//	if err := b.AddFS(os.DirFS("./src"), ""); err != nil {
//	    return err
//	}
//	_, err := b.Finish().WriteTo(out)
//
// Parse and unpack:
//
//	a, err := caf.Parse(data)
//	if err != nil {
//	    return err
//	}
//	err = a.UnpackTo("./dst")
//
// Parsed archives can also be read in place through [Archive.FS], which
// serves the same file tree UnpackTo would materialize.
package caf
