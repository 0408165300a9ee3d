// Package order persists the summary of a checked-out cart.
package order

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abgdnv/shopcart/internal/cart"
	shoperrors "github.com/abgdnv/shopcart/internal/errors"
	"github.com/abgdnv/shopcart/internal/render"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is a snapshot of the cart taken at checkout.
type Summary struct {
	OrderID  uuid.UUID
	Items    []cart.Item
	Total    decimal.Decimal
	Currency string
	PlacedAt time.Time
}

// Writer persists order summaries.
type Writer interface {
	// Write stores the summary. Returns an error wrapping ErrSaveOrder if it cannot be stored.
	Write(ctx context.Context, summary Summary) error
}

// FileWriter writes the summary as a text table to a single file, replacing any previous summary.
type FileWriter struct {
	path string
}

func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write renders the summary and replaces the target file.
// The content is written to a temporary file in the same directory first, so a failed
// write never leaves a truncated summary behind.
func (w *FileWriter) Write(ctx context.Context, summary Summary) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", shoperrors.ErrSaveOrder, err)
	}
	content := render.OrderSummary(summary.Items, summary.Total, summary.Currency)

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %w", shoperrors.ErrSaveOrder, dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", shoperrors.ErrSaveOrder, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", shoperrors.ErrSaveOrder, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", shoperrors.ErrSaveOrder, tmpName, err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", shoperrors.ErrSaveOrder, w.path, err)
	}
	return nil
}
