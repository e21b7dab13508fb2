// SPDX-License-Identifier: MPL-2.0

// Package embed drives the toolchain that adds a license agreement to a
// disk image.
//
// An Embedder writes the Rez source from package resource to a scoped
// temporary file, then runs hdiutil unflatten, Rez, hdiutil flatten and an
// optional hdiutil convert, strictly in that order. The Rez exit status
// decides the Outcome; failures of the hdiutil steps are kept as warnings.
// The temporary payload never outlives Embed.
package embed
