package main

import (
	"github.com/qwerty0zero/book-catalog/internal/adapters/terminal"
	"github.com/qwerty0zero/book-catalog/internal/domain"
)

// deferredView forwards status notifications to the panel but holds back
// the results themselves, which list prints once after the last page.
type deferredView struct {
	panel *terminal.ResultsPanel
}

func (v *deferredView) ShowLoading(continuation bool) { v.panel.ShowLoading(continuation) }

func (v *deferredView) ReplaceResults([]domain.Book) {}

func (v *deferredView) AppendResults([]domain.Book) {}

func (v *deferredView) ShowEmpty(reason domain.EmptyReason) { v.panel.ShowEmpty(reason) }

func (v *deferredView) ShowError(message string, retryable bool) {
	// Nothing to retry in one-shot mode.
	v.panel.ShowError(message, false)
}

func (v *deferredView) SetAuthorFacet([]string) {}

func (v *deferredView) SetVisibility([]bool) {}
