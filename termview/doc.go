// Package termview renders an evergreen tree into a terminal cell grid
// with tcell, and plays a short chime on each toggle with beep.
//
// Cells are twice as tall as they are wide, so the camera projects into a
// viewport of width x 2*height and rows are halved when rasterizing.
package termview
