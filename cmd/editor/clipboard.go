package main

import (
	"fmt"
	"log"

	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/milkweed-games/waypath/level"
	"github.com/milkweed-games/waypath/path"
)

// copySelection puts the selected nodes of the entity path on the clipboard
// as YAML node records.
func copySelection(e *level.Entity) {
	if e == nil || e.Path == nil {
		return
	}

	selected := e.Path.SelectedNodes()
	if selected == nil {
		return
	}

	all := e.Path.Records()
	records := make([]path.NodeRecord, 0, len(selected))
	for _, i := range selected {
		records = append(records, all[i])
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
}

// pasteNodes reads node records from the clipboard. When the entity has no
// path the records become one; otherwise their positions are appended to
// the existing loop.
func pasteNodes(e *level.Entity) error {
	if e == nil {
		return nil
	}

	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return nil
	}

	var records []path.NodeRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	if e.Path == nil {
		p, err := path.FromRecords(records)
		if err != nil {
			return fmt.Errorf("paste: %w", err)
		}
		e.Path = p
		return nil
	}

	for _, r := range records {
		world := e.Center.Add(cpVector(r.X, r.Y))
		if !e.Path.TryInsertNodeAtIndex(world, e.Path.Len(), e.Center) {
			return fmt.Errorf("paste: node at (%g,%g) overlaps its neighbors", r.X, r.Y)
		}
	}
	return nil
}
