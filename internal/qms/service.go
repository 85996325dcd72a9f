package qms

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"time"

	"pharma_qms/internal/config"
	"pharma_qms/internal/records"
	"pharma_qms/internal/retry"

	"github.com/rs/zerolog/log"
)

// RowStore is the spreadsheet seam: read a whole table, append one row.
type RowStore interface {
	ReadTable(ctx context.Context, table string) ([][]string, error)
	AppendRow(ctx context.Context, table string, row []interface{}) error
}

// FileStore is the attachment seam: store a file, get back its URL.
type FileStore interface {
	Upload(ctx context.Context, name string, content io.Reader, mimeType string) (string, error)
}

// Notifier pushes a best-effort message when a record is registered.
type Notifier interface {
	NotifyNewRecord(ctx context.Context, table, id string)
}

// Attachment is an optional file accompanying a submission.
type Attachment struct {
	Filename string
	MimeType string
	Content  io.Reader
}

// Receipt reports a successful submission back to the user.
type Receipt struct {
	ID            string
	AttachmentURL string
}

// TableDump is one table's full contents for the admin view.
type TableDump struct {
	Name string
	Rows [][]string
}

// Service orchestrates submissions and the admin view over explicitly
// constructed store clients. No connection state is kept here.
type Service struct {
	store       RowStore
	files       FileStore
	notifier    Notifier
	adminSecret string
	resilience  config.ResilienceConfig
	now         func() time.Time
}

func NewService(store RowStore, files FileStore, notifier Notifier, adminSecret string) *Service {
	return &Service{
		store:       store,
		files:       files,
		notifier:    notifier,
		adminSecret: adminSecret,
		resilience:  config.DefaultResilienceConfig,
		now:         time.Now,
	}
}

// Submit validates a submission, assigns it the next record ID, uploads the
// optional attachment, and appends the finished row to the type's table.
//
// The table is re-read on every submit; there is no cache. Two overlapping
// submits can read the same last row and derive the same serial. That window
// is inherent to the read-then-append scheme and is deliberately left open.
func (s *Service) Submit(ctx context.Context, def records.Definition, fields map[string]string, att *Attachment) (Receipt, error) {
	if err := records.Validate(def, fields); err != nil {
		return Receipt{}, err
	}

	// Reads are idempotent, so they get the retry budget. The append below
	// runs exactly once.
	rows, err := retry.Do(ctx, s.resilience.TableRead, func(ctx context.Context) ([][]string, error) {
		return s.store.ReadTable(ctx, def.Name)
	})
	if err != nil {
		return Receipt{}, &StoreError{Op: "read", Table: def.Name, Err: err}
	}

	now := s.now()
	id, err := records.NextID(rows, def.Prefix, now)
	if err != nil {
		return Receipt{}, err
	}

	attachmentURL := ""
	if att != nil {
		name := fmt.Sprintf("%s_%s", id, att.Filename)
		attachmentURL, err = s.files.Upload(ctx, name, att.Content, att.MimeType)
		if err != nil {
			return Receipt{}, &UploadError{Filename: name, Err: err}
		}
		log.Debug().Str("file", name).Str("url", attachmentURL).Msg("Uploaded attachment")
	}

	row := records.Row(def, now.Format(records.TimestampLayout), id, fields, attachmentURL)
	if err := s.store.AppendRow(ctx, def.Name, row); err != nil {
		// A successful upload followed by a failed append leaves the file
		// behind; there is no cleanup.
		return Receipt{}, &StoreError{Op: "append", Table: def.Name, Err: err}
	}

	log.Info().
		Str("table", def.Name).
		Str("id", id).
		Bool("attachment", attachmentURL != "").
		Msg("Record registered")

	if s.notifier != nil {
		s.notifier.NotifyNewRecord(ctx, def.Name, id)
	}

	return Receipt{ID: id, AttachmentURL: attachmentURL}, nil
}

// ListAll reads every table for the admin view, in display order.
func (s *Service) ListAll(ctx context.Context) ([]TableDump, error) {
	dumps := make([]TableDump, 0, len(records.All))
	for _, def := range records.All {
		rows, err := retry.Do(ctx, s.resilience.TableRead, func(ctx context.Context) ([][]string, error) {
			return s.store.ReadTable(ctx, def.Name)
		})
		if err != nil {
			return nil, &StoreError{Op: "read", Table: def.Name, Err: err}
		}
		dumps = append(dumps, TableDump{Name: def.Name, Rows: rows})
	}
	return dumps, nil
}

// Authenticate gates the admin view. It is a visibility toggle against a
// shared secret, not a security boundary.
func (s *Service) Authenticate(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminSecret)) == 1
}
