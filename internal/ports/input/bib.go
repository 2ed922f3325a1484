package input

import "context"

// BibImage is a rendered, downloadable participant bib.
type BibImage struct {
	Filename string
	PNG      []byte
}

type BibUseCase interface {
	// Bib renders the bib for number. An empty name falls back to the name
	// stored for that participant.
	Bib(ctx context.Context, number, name string) (*BibImage, error)
}
