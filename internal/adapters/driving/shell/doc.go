// Package shell implements the line-oriented archive menu.
//
// It is used when stdin is not a terminal, so the menu can be driven by
// a script or a pipe. Each prompt reads one line. End of input behaves
// like choosing Exit.
package shell
