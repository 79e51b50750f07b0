// Package bitmap decodes a BITD cast member's pixel data into a standard
// library image.Image, and resolves the palette (CLUT or a built-in
// table) a bitmap's pixel depth needs to do so.
package bitmap
