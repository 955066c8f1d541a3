package domain

import "io"

// Document is the display content handed to a renderer.
type Document struct {
	Title  string
	Author string
	Body   string
}

// DocumentRenderer turns a Document into a downloadable byte stream.
type DocumentRenderer interface {
	ContentType() string
	Render(w io.Writer, doc Document) error
}
