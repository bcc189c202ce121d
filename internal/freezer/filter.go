package freezer

import (
	"context"

	"github.com/twardoch/keynote-freezer/internal/fontset"
	"github.com/twardoch/keynote-freezer/internal/keynote"
	"github.com/twardoch/keynote-freezer/pkg/logger"
)

// isSafeText reports whether the item is editable text in a safe font. Items
// without object text never qualify.
func isSafeText(item keynote.Item, fonts fontset.Set) bool {
	return item.Font() != "" && fonts.Matches(item.Font())
}

// cleanSlide removes items from the slide according to the variant polarity:
// the text variant (keepText=true) keeps only safe text, the vector variant
// keeps everything except safe text. Deletion happens against the live
// document tree and cannot be undone.
//
// Default title and body placeholders cannot be deleted through scripting;
// they are hidden via the slide's showing properties instead. Locked items
// are left alone.
func cleanSlide(ctx context.Context, slide keynote.Slide, fonts fontset.Set, keepText bool) error {
	log := logger.FromContext(ctx)
	items, err := slide.TextItems(ctx)
	if err != nil {
		return NewAutomationError("list slide items", err)
	}
	var toDelete []keynote.Item
	for _, item := range items {
		if isSafeText(item, fonts) == keepText {
			continue
		}
		switch item.Placeholder() {
		case keynote.PlaceholderTitle:
			if err := slide.SetTitleShowing(ctx, false); err != nil {
				return NewAutomationError("hide title placeholder", err)
			}
			continue
		case keynote.PlaceholderBody:
			if err := slide.SetBodyShowing(ctx, false); err != nil {
				return NewAutomationError("hide body placeholder", err)
			}
			continue
		}
		if item.Locked() {
			log.Debug("skipping locked item", "slide", slide.Ordinal(), "class", item.Class())
			continue
		}
		toDelete = append(toDelete, item)
	}
	// Delete back to front so live item indices don't shift under us.
	for i := len(toDelete) - 1; i >= 0; i-- {
		if err := toDelete[i].Delete(ctx); err != nil {
			return NewAutomationError("delete item", err)
		}
	}
	if keepText {
		for _, class := range keynote.BulkClasses {
			if err := slide.DeleteAll(ctx, class); err != nil {
				return NewAutomationError("delete "+string(class)+"s", err)
			}
		}
	}
	return nil
}
