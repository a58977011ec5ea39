// Package filesystem loads documents from a local directory.
//
// Loader turns every matching file directly inside a directory into
// chunks ready for storage. Watcher follows the same directory with
// fsnotify and reports files as they are created or rewritten.
package filesystem
