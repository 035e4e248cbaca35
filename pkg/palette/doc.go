// Package palette defines the palette document model.
//
// A Document names a source image, the palette colors pulled from it, and the
// relative visual weight of each color. Documents are plain JSON files so they
// can be hand-edited, versioned, and round-tripped between the CLI and the
// preview server. Rendering, layout, and color naming all consume the same
// document; none of them write it back.
package palette
