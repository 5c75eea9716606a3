package storage

import (
	"context"
	"io"
)

type UploadInput struct {
	File        io.Reader
	Size        int64
	ContentType string
	Name        string
}

// FileStorage abstrae el almacenamiento de archivos adjuntos, como las
// fotos de las mascotas y las imágenes de vacunas y operaciones.
type FileStorage interface {
	Upload(ctx context.Context, input UploadInput) (string, error)
	Delete(ctx context.Context, url string) error
}
