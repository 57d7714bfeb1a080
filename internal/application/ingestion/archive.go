package ingestion

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// maxEntryBytes límite de tamaño descomprimido por XML dentro de un ZIP.
const maxEntryBytes = 10 << 20

// document es un XML listo para parsear; Name identifica su origen en logs y errores.
type document struct {
	Name    string
	Content []byte
}

// documentsOf devuelve los XML contenidos en el upload.
func documentsOf(u *entity.Upload) ([]document, error) {
	switch u.FileType {
	case entity.FileTypeXML:
		return []document{{Name: u.FileName, Content: u.Content}}, nil
	case entity.FileTypeZIP:
		return expandZIP(u.FileName, u.Content)
	default:
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedFile, u.FileName, u.FileType)
	}
}

func expandZIP(name string, data []byte) ([]document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip inválido %s: %v", domain.ErrInvalidInput, name, err)
	}

	var docs []document
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		if !strings.EqualFold(path.Ext(f.Name), ".xml") {
			continue
		}
		content, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", domain.ErrInvalidInput, name, f.Name, err)
		}
		docs = append(docs, document{Name: name + "/" + f.Name, Content: content})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s no contiene archivos XML", domain.ErrInvalidInput, name)
	}
	return docs, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, maxEntryBytes+1))
	if err != nil {
		return nil, err
	}
	if len(content) > maxEntryBytes {
		return nil, fmt.Errorf("excede %d bytes descomprimido", maxEntryBytes)
	}
	return content, nil
}
