package ingestion_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recupera-monofasico/internal/application/ingestion"
	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/classification"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/nfe"
	"github.com/jhoicas/recupera-monofasico/internal/infrastructure/memory"
	"github.com/jhoicas/recupera-monofasico/pkg/logger"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func nfeXML(key, ncm, cst string) []byte {
	return []byte(fmt.Sprintf(`<nfeProc><NFe><infNFe Id="NFe%s">
<ide><dhEmi>2024-03-10T09:00:00-03:00</dhEmi></ide>
<det><prod><cProd>P1</cProd><xProd>PRODUTO</xProd><NCM>%s</NCM><CFOP>5102</CFOP><vProd>100.00</vProd></prod>
<imposto><PIS><PISNT><CST>%s</CST></PISNT></PIS></imposto></det>
<total><ICMSTot><vNF>100.00</vNF></ICMSTot></total>
</infNFe></NFe></nfeProc>`, key, ncm, cst))
}

func zipOf(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newService(workers int) (*ingestion.Service, *memory.Store) {
	store := memory.NewStore()
	svc := ingestion.NewService(store.Uploads(), store, nfe.NewParser(), classification.NewClassifier(), workers, logger.Nop())
	return svc, store
}

func uploadStatus(t *testing.T, store *memory.Store) map[string]*entity.Upload {
	t.Helper()
	list, err := store.Uploads().List(context.Background())
	require.NoError(t, err)
	out := make(map[string]*entity.Upload, len(list))
	for _, u := range list {
		out[u.FileName] = u
	}
	return out
}

// ── Upload ────────────────────────────────────────────────────────────────────

func TestUpload_RechazaExtensionNoSoportada(t *testing.T) {
	svc, store := newService(1)
	_, err := svc.Upload(context.Background(), []ingestion.FileInput{
		{Name: "a.xml", Content: nfeXML("1", "33051000", "04")},
		{Name: "notas.txt", Content: []byte("x")},
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)

	list, _ := store.Uploads().List(context.Background())
	assert.Empty(t, list, "el lote se rechaza completo")
}

func TestUpload_RechazaArchivoVacio(t *testing.T) {
	svc, _ := newService(1)
	_, err := svc.Upload(context.Background(), []ingestion.FileInput{{Name: "a.xml"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpload_RegistraAguardando(t *testing.T) {
	svc, _ := newService(1)
	ups, err := svc.Upload(context.Background(), []ingestion.FileInput{
		{Name: "A.XML", Content: nfeXML("1", "33051000", "04")},
		{Name: "lote.zip", Content: []byte("PK")},
	})
	require.NoError(t, err)
	require.Len(t, ups, 2)
	assert.Equal(t, entity.FileTypeXML, ups[0].FileType)
	assert.Equal(t, entity.FileTypeZIP, ups[1].FileType)
	assert.Equal(t, entity.UploadStatusPending, ups[0].Status)
}

// ── ProcessPending ────────────────────────────────────────────────────────────

func TestProcessPending_AislaFallas(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(2)
	_, err := svc.Upload(ctx, []ingestion.FileInput{
		{Name: "ok.xml", Content: nfeXML("1", "33051000", "01")},
		{Name: "rota.xml", Content: []byte("<nfeProc><NFe>")},
		{Name: "danfe.pdf", Content: []byte("%PDF-1.4")},
	})
	require.NoError(t, err)

	summary, err := svc.ProcessPending(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 1, summary.Invoices)
	assert.Equal(t, 1, summary.ItemsToReview, "NCM monofásico con CST 01 queda para revisión")

	status := uploadStatus(t, store)
	assert.Equal(t, entity.UploadStatusProcessed, status["ok.xml"].Status)
	assert.Equal(t, 1, status["ok.xml"].InvoiceCount)
	assert.Equal(t, entity.UploadStatusFailed, status["rota.xml"].Status)
	assert.NotEmpty(t, status["rota.xml"].ErrorMessage)
	assert.Equal(t, entity.UploadStatusFailed, status["danfe.pdf"].Status)

	invoices, err := store.Invoices().List(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "1", invoices[0].AccessKey)
	assert.NotEmpty(t, invoices[0].Fingerprint)
	assert.True(t, invoices[0].Items[0].IsMonofasico, "las notas se persisten clasificadas")
}

func TestProcessPending_DescartaDuplicados(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(1)

	_, err := svc.Upload(ctx, []ingestion.FileInput{{Name: "a.xml", Content: nfeXML("9", "22030000", "04")}})
	require.NoError(t, err)
	_, err = svc.ProcessPending(ctx)
	require.NoError(t, err)

	reformatted := bytes.ReplaceAll(nfeXML("9", "22030000", "04"), []byte(`Id="NFe9"`), []byte(`Id='NFe9'`))
	_, err = svc.Upload(ctx, []ingestion.FileInput{{Name: "a-de-novo.xml", Content: reformatted}})
	require.NoError(t, err)
	summary, err := svc.ProcessPending(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 0, summary.Invoices)
	invoices, _ := store.Invoices().List(ctx)
	assert.Len(t, invoices, 1)
}

func TestProcessPending_DuplicadoPorChave(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(2)

	compact := nfeXML("999", "22030000", "04")
	pretty := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<nfeProc>
  <NFe>
    <infNFe Id="NFe999">
      <ide>
        <dhEmi>2024-03-10T09:00:00-03:00</dhEmi>
      </ide>
      <det>
        <prod>
          <cProd>P1</cProd>
          <xProd>PRODUTO</xProd>
          <NCM>22030000</NCM>
          <CFOP>5102</CFOP>
          <vProd>100.00</vProd>
        </prod>
        <imposto><PIS><PISNT><CST>04</CST></PISNT></PIS></imposto>
      </det>
      <total><ICMSTot><vNF>100.00</vNF></ICMSTot></total>
    </infNFe>
  </NFe>
</nfeProc>`)
	bare := bytes.TrimSuffix(bytes.TrimPrefix(compact, []byte("<nfeProc>")), []byte("</nfeProc>"))

	_, err := svc.Upload(ctx, []ingestion.FileInput{
		{Name: "compacta.xml", Content: compact},
		{Name: "formatada.xml", Content: pretty},
	})
	require.NoError(t, err)
	summary, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Invoices)
	assert.Equal(t, 1, summary.Duplicates, "misma chave en el mismo lote")

	_, err = svc.Upload(ctx, []ingestion.FileInput{{Name: "sem-envelope.xml", Content: bare}})
	require.NoError(t, err)
	summary, err = svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Invoices)
	assert.Equal(t, 1, summary.Duplicates, "misma chave ya importada")

	invoices, err := store.Invoices().List(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "999", invoices[0].AccessKey)
}

func TestProcessPending_ClaveSinteticaNoDeduplica(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(1)

	noID := func(vprod string) []byte {
		return []byte(`<NFe><infNFe><ide><dhEmi>2024-03-10T09:00:00-03:00</dhEmi></ide>
<det><prod><NCM>22030000</NCM><CFOP>5102</CFOP><vProd>` + vprod + `</vProd></prod></det>
<total><ICMSTot><vNF>` + vprod + `</vNF></ICMSTot></total></infNFe></NFe>`)
	}
	_, err := svc.Upload(ctx, []ingestion.FileInput{
		{Name: "a.xml", Content: noID("10.00")},
		{Name: "b.xml", Content: noID("20.00")},
	})
	require.NoError(t, err)
	summary, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Invoices)
	assert.Zero(t, summary.Duplicates)

	invoices, _ := store.Invoices().List(ctx)
	assert.Len(t, invoices, 2)
}

func TestProcessPending_ExpandeZIP(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(2)
	content := zipOf(t, map[string][]byte{
		"notas/1.xml":    nfeXML("1", "33051000", "04"),
		"notas/2.XML":    nfeXML("2", "39241000", "01"),
		"notas/leia.txt": []byte("ignorado"),
		"notas/3.xml":    []byte("quebrado"),
	})
	_, err := svc.Upload(ctx, []ingestion.FileInput{{Name: "lote.zip", Content: content}})
	require.NoError(t, err)

	summary, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 2, summary.Invoices)

	up := uploadStatus(t, store)["lote.zip"]
	assert.Equal(t, entity.UploadStatusProcessed, up.Status, "un ZIP con al menos una nota válida queda procesado")
	assert.Equal(t, 2, up.InvoiceCount)
	assert.Contains(t, up.ErrorMessage, "3.xml")
}

func TestProcessPending_ZIPSinXML(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(1)
	_, err := svc.Upload(ctx, []ingestion.FileInput{{Name: "vazio.zip", Content: zipOf(t, map[string][]byte{"a.txt": []byte("x")})}})
	require.NoError(t, err)

	summary, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, entity.UploadStatusFailed, uploadStatus(t, store)["vazio.zip"].Status)
}

func TestProcessPending_SinPendientes(t *testing.T) {
	svc, _ := newService(1)
	summary, err := svc.ProcessPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Processed+summary.Failed)
}

func TestProcessPending_Paralelo(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(4)

	files := make([]ingestion.FileInput, 0, 20)
	for i := 0; i < 20; i++ {
		files = append(files, ingestion.FileInput{Name: fmt.Sprintf("n%02d.xml", i), Content: nfeXML(fmt.Sprint(i), "33051000", "04")})
	}
	_, err := svc.Upload(ctx, files)
	require.NoError(t, err)

	summary, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, summary.Processed)
	assert.Equal(t, 20, summary.Invoices)

	invoices, _ := store.Invoices().List(ctx)
	assert.Len(t, invoices, 20)
}

func TestProcessPending_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc, _ := newService(1)
	_, err := svc.Upload(ctx, []ingestion.FileInput{{Name: "a.xml", Content: nfeXML("1", "33051000", "04")}})
	require.NoError(t, err)

	cancel()
	_, err = svc.ProcessPending(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestDelete_Inexistente(t *testing.T) {
	svc, _ := newService(1)
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), domain.ErrNotFound)
}

func TestDelete_ConservaNotas(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(1)
	ups, err := svc.Upload(ctx, []ingestion.FileInput{{Name: "a.xml", Content: nfeXML("1", "33051000", "04")}})
	require.NoError(t, err)
	_, err = svc.ProcessPending(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ups[0].ID))
	invoices, _ := store.Invoices().List(ctx)
	assert.Len(t, invoices, 1)
}
