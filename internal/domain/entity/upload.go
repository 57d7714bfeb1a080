package entity

import (
	"path/filepath"
	"strings"
	"time"
)

// Estados de procesamiento de un archivo subido.
const (
	UploadStatusPending   = "AGUARDANDO"
	UploadStatusFailed    = "FALHA NO PROCESSAMENTO"
	UploadStatusProcessed = "PROCESSADO"
)

// Tipos de archivo aceptados.
const (
	FileTypeXML = "XML"
	FileTypeZIP = "ZIP"
	FileTypePDF = "PDF"
)

// Upload representa un archivo recibido del operador y su resultado de procesamiento.
type Upload struct {
	ID           string
	FileName     string
	FileType     string
	Size         int64
	Content      []byte
	Status       string
	ErrorMessage string
	InvoiceCount int
	CreatedAt    time.Time
	ProcessedAt  *time.Time
}

// FileTypeFromName deduce el tipo por la extensión. Cadena vacía si no es soportado.
func FileTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		return FileTypeXML
	case ".zip":
		return FileTypeZIP
	case ".pdf":
		return FileTypePDF
	default:
		return ""
	}
}
