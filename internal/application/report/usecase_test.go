package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/report"
)

type fakeSource struct {
	rep *apuracao.Report
	err error
}

func (f fakeSource) Report(context.Context) (*apuracao.Report, error) { return f.rep, f.err }

type recorder struct {
	format string
	meta   report.Meta
	calls  int
}

func (r *recorder) Render(_ context.Context, _ *apuracao.Report, meta report.Meta) ([]byte, error) {
	r.calls++
	r.meta = meta
	return []byte(r.format), nil
}

func TestUseCase_EntregaAlRendererDelFormato(t *testing.T) {
	xls, pdf := &recorder{format: "xlsx"}, &recorder{format: "pdf"}
	uc := report.NewUseCase(fakeSource{rep: &apuracao.Report{}}, xls, pdf, "Farmácia Central")

	data, name, err := uc.Excel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
	assert.Equal(t, "Farmácia Central", xls.meta.CompanyName)
	assert.Zero(t, pdf.calls)

	data, name, err = uc.PDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))
	assert.True(t, strings.HasPrefix(name, "apuracao_monofasico_"))
}

func TestUseCase_PropagaErrorDeFuente(t *testing.T) {
	boom := errors.New("db caída")
	xls := &recorder{}
	uc := report.NewUseCase(fakeSource{err: boom}, xls, xls, "")

	_, _, err := uc.Excel(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, xls.calls)
}
