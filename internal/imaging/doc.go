// Package imaging connects the iconkit core to files and tool responses.
//
// It loads source images from disk in every format the server accepts,
// answers the small inspection questions an agent asks before generating an
// icon (dimensions, sampled colors, likely background), encodes results for
// transport, composes square icon sets and grades finished icons.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Regions use an inclusive
// (x1,y1) and an exclusive (x2,y2).
//
// # Supported Formats
//
// Decoding is chosen by file extension: PNG, JPEG, GIF, BMP, TIFF, WebP and
// TGA. Output is PNG or lossless WebP.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless
// and never modify their input images.
//
// # Performance Considerations
//
// The cache keeps decoded images in memory. Give NewImageCache a limit for
// long-running processes, or call Evict and Clear.
package imaging
