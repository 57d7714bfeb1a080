// Package xmlcanon calcula huellas de documentos XML independientes del formato
// (espacios entre atributos, comillas, declaración XML, orden de namespaces).
package xmlcanon

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"

	"github.com/ucarion/c14n"

	"github.com/jhoicas/recupera-monofasico/internal/domain/nfe"
)

// Canonicalize aplica Canonical XML 1.0 (sin comentarios) al documento.
func Canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	dec.CharsetReader = nfe.CharsetReader
	return c14n.Canonicalize(dec)
}

// Fingerprint devuelve el SHA-256 hexadecimal de la forma canónica.
// Si el documento no se puede canonicalizar se usa el contenido crudo.
func Fingerprint(data []byte) string {
	canon, err := Canonicalize(data)
	if err != nil {
		canon = data
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:])
}
