// SPDX-License-Identifier: MPL-2.0

// Package resource builds the Rez source document that carries a software
// license agreement into a disk image's resource fork.
//
// The document is made of fixed blocks (the LPic template, the language map,
// two STR# button tables and a styl table) around one dynamic TEXT or "RTF "
// resource holding the license. Build is pure and deterministic: the same
// lines and kind always produce the same bytes.
package resource
