package recon

import (
	"fmt"
	"math"

	"github.com/joseph-ayodele/invoice-reconciler/internal/entity"
)

// compareItems runs the two line-item passes. Forward: every invoice
// item looks for its counterpart among the PO items and compares
// quantity and unit price. Reverse: every PO item checks that something
// on the invoice covers it. A PO item may satisfy more than one invoice
// item; there is no consumption after a match.
func (e *Engine) compareItems(invItems, poItems []entity.LineItem) []string {
	issues := make([]string, 0)

	poKeys := make([]string, len(poItems))
	for i, it := range poItems {
		poKeys[i] = NormalizeDescription(it.Description)
	}
	invKeys := make([]string, len(invItems))
	for i, it := range invItems {
		invKeys[i] = NormalizeDescription(it.Description)
	}

	// Forward pass: invoice -> PO.
	for idx, inv := range invItems {
		if len(poItems) == 0 {
			issues = append(issues, "No PO items found to match against.")
			continue
		}

		best, ok := ExtractOne(invKeys[idx], poKeys, PartialRatio)
		if !ok {
			issues = append(issues, fmt.Sprintf("Could not find a match for '%s' in PO.", inv.Description))
			continue
		}
		if best.Score < e.opts.ItemThreshold {
			issues = append(issues, fmt.Sprintf("Item '%s' not found in PO (best match score %d).", inv.Description, best.Score))
			continue
		}

		// First PO item whose normalized key equals the matched
		// candidate; collisions resolve to the earliest item.
		po, found := itemByKey(poItems, poKeys, best.Value)
		if !found {
			issues = append(issues, fmt.Sprintf("Best match '%s' not found in PO items list.", best.Value))
			continue
		}

		if inv.Quantity != po.Quantity {
			issues = append(issues, fmt.Sprintf("Quantity mismatch for '%s': PO=%v, Invoice=%v.", inv.Description, po.Quantity, inv.Quantity))
		}
		if math.Abs(inv.UnitPrice-po.UnitPrice) > e.opts.AmountTolerance {
			issues = append(issues, fmt.Sprintf("Price mismatch for '%s': PO=%v, Invoice=%v.", inv.Description, po.UnitPrice, inv.UnitPrice))
		}
	}

	// Reverse pass: PO -> invoice.
	for _, key := range poKeys {
		best, ok := ExtractOne(key, invKeys, PartialRatio)
		if !ok || best.Score < e.opts.ItemThreshold {
			issues = append(issues, fmt.Sprintf("Item '%s' missing in invoice.", key))
		}
	}

	return issues
}

func itemByKey(items []entity.LineItem, keys []string, key string) (entity.LineItem, bool) {
	for i := range items {
		if keys[i] == key {
			return items[i], true
		}
	}
	return entity.LineItem{}, false
}
