package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recupera-monofasico/pkg/config"
	"github.com/jhoicas/recupera-monofasico/pkg/logger"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

const notaXML = `<nfeProc><NFe><infNFe Id="NFe35240300000000000000550010000000011000000011">
<ide><dhEmi>2024-03-10T09:00:00-03:00</dhEmi></ide>
<det nItem="1"><prod><cProd>P1</cProd><xProd>SHAMPOO</xProd><NCM>33051000</NCM><CFOP>5102</CFOP><vProd>10000.00</vProd></prod>
<imposto><PIS><PISNT><CST>04</CST></PISNT></PIS></imposto></det>
<total><ICMSTot><vNF>10000.00</vNF></ICMSTot></total>
</infNFe></NFe></nfeProc>`

const parametrosYAML = `months:
  - month: "2024-03"
    anexo: anexo1
    rbt12: "200000.00"
    das_paid: "900"
  - month: "2024-04"
    anexo: anexo1
`

func TestLoadInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parametros.yaml")
	require.NoError(t, os.WriteFile(path, []byte(parametrosYAML), 0o644))

	inputs, err := loadInputs(path)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "2024-03", inputs[0].Month)
	assert.Equal(t, simples.Anexo1, inputs[0].Anexo)
	require.NotNil(t, inputs[0].RBT12)
	assert.Equal(t, "200000", inputs[0].RBT12.String())
	assert.Equal(t, "900", inputs[0].DASPaid.String())
	assert.Nil(t, inputs[1].RBT12, "rbt12 ausente queda nil")
}

func TestLoadInputs_MontoInvalido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parametros.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"months":[{"month":"2024-03","rbt12":"doscientos mil"}]}`), 0o644))

	_, err := loadInputs(path)
	assert.ErrorContains(t, err, "rbt12")
}

func TestRun_GeneraTablaYExcel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nota.xml"), []byte(notaXML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leame.txt"), []byte("ignorado"), 0o644))
	inputs := filepath.Join(t.TempDir(), "parametros.yaml")
	require.NoError(t, os.WriteFile(inputs, []byte(parametrosYAML), 0o644))
	xlsx := filepath.Join(t.TempDir(), "apuracao.xlsx")

	cfg := &config.Config{Ingest: config.IngestConfig{Workers: 2, SalesCFOPs: []string{"5102", "5405", "6102"}}}
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, logger.Nop(), dir, inputs, xlsx, "", &out))

	assert.Contains(t, out.String(), "Notas importadas: 1")
	assert.Contains(t, out.String(), "2024-03")
	assert.Contains(t, out.String(), "67.12")

	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestReadDocuments_DirectorioSinNotas(t *testing.T) {
	_, err := readDocuments(t.TempDir())
	assert.Error(t, err)
}
