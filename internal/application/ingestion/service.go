// Package ingestion recibe archivos de NF-e, los parsea y clasifica en paralelo y persiste
// las notas resultantes, registrando el estado de cada upload.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/classification"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/nfe"
	"github.com/jhoicas/recupera-monofasico/internal/domain/repository"
	"github.com/jhoicas/recupera-monofasico/internal/infrastructure/xmlcanon"
	"github.com/jhoicas/recupera-monofasico/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(invoices repository.InvoiceRepository, uploads repository.UploadRepository) error) error
}

// FileInput archivo recibido del operador.
type FileInput struct {
	Name    string
	Content []byte
}

// Summary resumen de un lote procesado.
type Summary struct {
	Processed     int // uploads con al menos una nota válida
	Failed        int
	Invoices      int // notas nuevas persistidas
	Duplicates    int // documentos ya importados antes
	ItemsToReview int
	Uploads       []*entity.Upload
}

// Service caso de uso de ingestión.
type Service struct {
	uploads    repository.UploadRepository
	tx         TxRunner
	parser     *nfe.Parser
	classifier *classification.Classifier
	workers    int
	log        *logger.Logger
	now        func() time.Time
}

// NewService construye el caso de uso. workers < 1 se trata como 1.
func NewService(
	uploads repository.UploadRepository,
	tx TxRunner,
	parser *nfe.Parser,
	classifier *classification.Classifier,
	workers int,
	log *logger.Logger,
) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		uploads:    uploads,
		tx:         tx,
		parser:     parser,
		classifier: classifier,
		workers:    workers,
		log:        log.Component("ingestion"),
		now:        time.Now,
	}
}

// Upload registra los archivos como AGUARDANDO. Rechaza el lote completo si algún
// archivo está vacío o tiene extensión no soportada.
func (s *Service) Upload(ctx context.Context, files []FileInput) ([]*entity.Upload, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: ningún archivo recibido", domain.ErrInvalidInput)
	}

	out := make([]*entity.Upload, 0, len(files))
	for _, f := range files {
		fileType := entity.FileTypeFromName(f.Name)
		if fileType == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, f.Name)
		}
		if len(f.Content) == 0 {
			return nil, fmt.Errorf("%w: archivo vacío %s", domain.ErrInvalidInput, f.Name)
		}
		out = append(out, &entity.Upload{
			ID:        uuid.NewString(),
			FileName:  f.Name,
			FileType:  fileType,
			Size:      int64(len(f.Content)),
			Content:   f.Content,
			Status:    entity.UploadStatusPending,
			CreatedAt: s.now(),
		})
	}

	for _, u := range out {
		if err := s.uploads.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("registrar upload %s: %w", u.FileName, err)
		}
	}
	s.log.Info().Int("files", len(out)).Msg("uploads registrados")
	return out, nil
}

// List devuelve los uploads registrados.
func (s *Service) List(ctx context.Context) ([]*entity.Upload, error) {
	return s.uploads.List(ctx)
}

// Delete elimina un upload. Las notas ya importadas se conservan.
func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.uploads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return s.uploads.Delete(ctx, id)
}

// Clear elimina todos los uploads.
func (s *Service) Clear(ctx context.Context) error {
	return s.uploads.DeleteAll(ctx)
}

// parsed resultado del parseo de un upload (uno por upload, sin estado compartido).
type parsed struct {
	upload   *entity.Upload
	invoices []*entity.Invoice
	errs     []string
}

// ProcessPending procesa todos los uploads AGUARDANDO. Un documento inválido marca su upload
// como FALHA NO PROCESSAMENTO sin interrumpir el lote; solo errores de persistencia o
// cancelación del contexto abortan.
func (s *Service) ProcessPending(ctx context.Context) (*Summary, error) {
	pending, err := s.uploads.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar uploads pendientes: %w", err)
	}
	summary := &Summary{}
	if len(pending) == 0 {
		return summary, nil
	}

	results := make([]parsed, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, u := range pending {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.parseUpload(u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if err := s.persist(ctx, r, seen, summary); err != nil {
			return nil, err
		}
		summary.Uploads = append(summary.Uploads, r.upload)
	}

	s.log.Info().
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Int("invoices", summary.Invoices).
		Int("duplicates", summary.Duplicates).
		Int("items_to_review", summary.ItemsToReview).
		Msg("lote procesado")
	return summary, nil
}

func (s *Service) parseUpload(u *entity.Upload) parsed {
	r := parsed{upload: u}
	docs, err := documentsOf(u)
	if err != nil {
		r.errs = append(r.errs, err.Error())
		return r
	}
	for _, doc := range docs {
		inv, err := s.parser.Parse(doc.Content)
		if err != nil {
			s.log.Warn().Str("upload", u.FileName).Str("document", doc.Name).Err(err).Msg("falha ao processar documento")
			r.errs = append(r.errs, fmt.Sprintf("%s: %v", doc.Name, err))
			continue
		}
		inv = s.classifier.ClassifyInvoice(inv)
		inv.UploadID = u.ID
		inv.Fingerprint = xmlcanon.Fingerprint(doc.Content)
		r.invoices = append(r.invoices, inv)
	}
	return r
}

func (s *Service) persist(ctx context.Context, r parsed, seen map[string]bool, summary *Summary) error {
	u := r.upload
	now := s.now()
	u.ProcessedAt = &now
	u.Content = nil

	var created, duplicates, toReview int
	err := s.tx.Run(ctx, func(invoices repository.InvoiceRepository, uploads repository.UploadRepository) error {
		created, duplicates, toReview = 0, 0, 0
		local := make(map[string]bool, len(r.invoices))
		for _, inv := range r.invoices {
			keys := dedupeKeys(inv)
			if anySeen(keys, seen) || anySeen(keys, local) {
				duplicates++
				continue
			}
			for _, k := range keys {
				local[k] = true
			}
			exists, err := invoices.Exists(ctx, inv.Fingerprint, accessKeyOf(inv))
			if err != nil {
				return err
			}
			if exists {
				duplicates++
				continue
			}
			inv.CreatedAt = now
			if err := invoices.Create(ctx, inv); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					duplicates++
					continue
				}
				return err
			}
			created++
			toReview += len(inv.PendingReview())
		}

		u.Status = entity.UploadStatusProcessed
		if len(r.invoices) == 0 {
			u.Status = entity.UploadStatusFailed
		}
		u.ErrorMessage = strings.Join(r.errs, "; ")
		u.InvoiceCount = created
		return uploads.UpdateResult(ctx, u)
	})
	if err != nil {
		return fmt.Errorf("persistir upload %s: %w", u.FileName, err)
	}

	for _, inv := range r.invoices {
		for _, k := range dedupeKeys(inv) {
			seen[k] = true
		}
	}
	if u.Status == entity.UploadStatusFailed {
		summary.Failed++
	} else {
		summary.Processed++
	}
	summary.Invoices += created
	summary.Duplicates += duplicates
	summary.ItemsToReview += toReview
	return nil
}

// dedupeKeys claves que identifican la misma NF-e entre uploads: la huella del XML
// canónico y, si existe, la chave de acesso (el mismo documento reformateado o con
// o sin el sobre nfeProc cambia la huella pero no la chave).
func dedupeKeys(inv *entity.Invoice) []string {
	keys := []string{"fp:" + inv.Fingerprint}
	if inv.HasAccessKey() {
		keys = append(keys, "key:"+inv.AccessKey)
	}
	return keys
}

func anySeen(keys []string, m map[string]bool) bool {
	for _, k := range keys {
		if m[k] {
			return true
		}
	}
	return false
}

func accessKeyOf(inv *entity.Invoice) string {
	if inv.HasAccessKey() {
		return inv.AccessKey
	}
	return ""
}
