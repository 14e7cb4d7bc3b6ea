package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/subtitle"
)

// Records returns a copy of records with each caption text translated.
// Timing and numbering are kept; blank captions are not sent.
func Records(
	ctx context.Context,
	t Translator,
	records []subtitle.Record,
) ([]subtitle.Record, error) {
	out := make([]subtitle.Record, len(records))
	copy(out, records)

	var items []Item
	for i, rec := range records {
		if strings.TrimSpace(rec.Text) == "" {
			continue
		}
		items = append(items, Item{Index: i, Text: rec.Text})
	}
	if len(items) == 0 {
		return out, nil
	}

	results, err := t.Translate(ctx, items)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(out) {
			return nil, fmt.Errorf("translation index %d out of range", r.Index)
		}
		out[r.Index].Text = strings.Join(strings.Fields(r.Text), " ")
	}
	return out, nil
}

// Preparer adapts t to the subtitle processor's prepare hook.
func Preparer(t Translator) subtitle.PrepareFunc {
	return func(ctx context.Context, records []subtitle.Record) ([]subtitle.Record, error) {
		translated, err := Records(ctx, t, records)
		if err != nil {
			return nil, fmt.Errorf("translate captions: %w", err)
		}
		return translated, nil
	}
}
