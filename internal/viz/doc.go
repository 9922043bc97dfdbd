// Package viz holds the terminal drawing surfaces shared by the effects,
// the interest galaxy and the journey map:
//
//   - [Canvas]: braille dot surface (2x4 dots per cell)
//   - [Grid]: plain rune surface for layering sprites and text
//   - [Theme]: light, dark and dream palettes
package viz
