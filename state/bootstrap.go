// ABOUTME: Startup reconciliation producing the initial AppState
// ABOUTME: Safe-parses persisted slots, migrates legacy formats, seeds defaults
package state

import (
	"encoding/json"
	"log"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/store"
)

// Bootstrap builds one consistent initial state from whatever partial or
// legacy data the store holds. It never fails: a corrupt slot degrades to
// its fallback and is logged, and corruption in one slot never blocks the
// others. darkPreferred is the platform's dark-appearance report, probed by
// the caller so tests stay terminal-independent.
func Bootstrap(st Store, darkPreferred bool) models.AppState {
	s := models.AppState{
		Step:       models.StepScan,
		Signatures: loadSignatures(st),
		Categories: loadCategories(st),
		Templates:  loadTemplates(st),
		IsDarkMode: darkPreferred,
	}

	// History entries are replayed through the same upsert rule as a live
	// save, which tolerates odd shapes and deduplicates by id. The stored
	// list is newest-first and saves prepend, so replay runs oldest-first
	// to reconstruct the stored order.
	var stored []models.Contact
	if loadSlot(st, store.SlotHistory, &stored) {
		for i := len(stored) - 1; i >= 0; i-- {
			c := stored[i]
			if c.Socials == nil {
				c.Socials = map[string]string{}
			}
			s = Reduce(s, SaveContact{Contact: c})
		}
	}

	return s
}

// loadSlot parses one slot into v. Absence and corruption both return
// false; corruption is logged and otherwise swallowed.
func loadSlot(st Store, slot string, v interface{}) bool {
	data, ok, err := st.GetSlot(slot)
	if err != nil {
		log.Printf("failed to read %s slot: %v", slot, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("failed to parse %s slot: %v", slot, err)
		return false
	}
	return true
}

func loadSignatures(st Store) []models.UserSignature {
	var sigs []models.UserSignature
	loadSlot(st, store.SlotSignatures, &sigs)
	if len(sigs) == 0 {
		return []models.UserSignature{models.DefaultSignature()}
	}
	return sigs
}

// loadCategories resolves in order: a non-empty new-format list wins
// verbatim; otherwise a non-empty legacy custom list is merged after the
// built-in defaults with duplicates removed; otherwise the defaults.
func loadCategories(st Store) []string {
	var cats []string
	if loadSlot(st, store.SlotCategories, &cats) && len(cats) > 0 {
		return cats
	}

	var legacy []string
	loadSlot(st, store.SlotLegacyCategories, &legacy)
	if len(legacy) == 0 {
		return models.DefaultCategories()
	}

	merged := models.DefaultCategories()
	seen := make(map[string]bool, len(merged))
	for _, c := range merged {
		seen[c] = true
	}
	for _, c := range legacy {
		if !seen[c] {
			seen[c] = true
			merged = append(merged, c)
		}
	}
	return merged
}

// loadTemplates prefers the unified new-format list, which is the single
// source of truth once it exists. Before that, defaults are concatenated
// with any legacy custom templates, defaults first.
func loadTemplates(st Store) []models.EmailTemplate {
	var tmpls []models.EmailTemplate
	if loadSlot(st, store.SlotTemplates, &tmpls) && len(tmpls) > 0 {
		return tmpls
	}

	merged := models.DefaultTemplates()
	var legacy []models.EmailTemplate
	loadSlot(st, store.SlotLegacyTemplates, &legacy)
	return append(merged, legacy...)
}
