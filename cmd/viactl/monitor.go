package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viawatch/viawatch/internal/layoutcfg"
	"github.com/viawatch/viawatch/pkg/layers"
	"github.com/viawatch/viawatch/pkg/matrix"
	"github.com/viawatch/viawatch/pkg/via"
)

const matrixPollInterval = 20 * time.Millisecond

// monitorMatrix prints raw press/release events until interrupted.
func monitorMatrix(ctx context.Context, client *via.Client, rows, cols int) error {
	ticker := time.NewTicker(matrixPollInterval)
	defer ticker.Stop()

	var prev matrix.Grid
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		raw, err := client.SwitchMatrixState(ctx, rows, cols)
		if err != nil {
			if errors.Is(err, via.ErrDeviceLost) || errors.Is(err, context.Canceled) {
				return err
			}
			continue
		}
		grid := matrix.Decode(raw, rows, cols)
		for _, ev := range grid.Diff(prev) {
			state := "release"
			if ev.Pressed {
				state = "press"
			}
			fmt.Printf("(%d,%d) %s\n", ev.Row, ev.Col, state)
		}
		prev = grid
	}
}

// monitorLayers runs the layer tracker against live matrix polling and prints
// each transition with its configured layer name.
func monitorLayers(ctx context.Context, client *via.Client, s *via.Session, cfg *layoutcfg.Config, rows, cols int) error {
	table, err := loadKeymap(ctx, client, s, rows, cols, false)
	if err != nil {
		return fmt.Errorf("load keymap: %w", err)
	}

	tracker := layers.NewTracker(table, 0)
	monitor := layers.NewMonitor(client, tracker, rows, cols)

	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	fmt.Printf("layer: %s\n", cfg.LayerName(tracker.Current()))
	for change := range monitor.Changes() {
		holds := ""
		for layer, kind := range change.Stack {
			holds += fmt.Sprintf(" %s(%d)", kind, layer)
		}
		fmt.Printf("layer: %s%s\n", cfg.LayerName(change.Layer), holds)
	}

	err = <-done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
