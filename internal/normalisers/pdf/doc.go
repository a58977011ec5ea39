// Package pdf extracts text and keyword metadata from PDF files.
//
// Text is read from page content streams (Tj, TJ, ' and " operators) and
// keeps line breaks; pages are separated by a blank line. The document
// information Keywords entry is parsed as "key: value; key: value".
package pdf
