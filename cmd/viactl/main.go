// viactl talks to VIA-capable QMK keyboards over raw HID: device discovery,
// capability probing, keymap and macro dumps, RGB control and live matrix or
// layer monitoring.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/viawatch/viawatch/internal/hid"
	"github.com/viawatch/viawatch/internal/layoutcfg"
	"github.com/viawatch/viawatch/pkg/keycode"
	"github.com/viawatch/viawatch/pkg/keymap"
	"github.com/viawatch/viawatch/pkg/macro"
	"github.com/viawatch/viawatch/pkg/via"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	list := flag.Bool("list", false, "list VIA keyboards and exit")
	keyboard := flag.String("keyboard", "0", "keyboard to open: list index or VID:PID")
	backend := flag.String("backend", "auto", "HID backend: auto, rawusb or usbhid (usbhid needs -keyboard VID:PID)")
	rows := flag.Int("rows", 0, "matrix row count (required for keymap and matrix operations)")
	cols := flag.Int("cols", 0, "matrix column count (required for keymap and matrix operations)")

	dump := flag.Bool("dump", false, "dump the keymap via the bulk buffer read")
	dumpSlow := flag.Bool("dump-slow", false, "dump the keymap one keycode query at a time")
	dumpCompare := flag.Bool("dump-compare", false, "dump the keymap both ways and report differences")
	macros := flag.Bool("macros", false, "dump the macro buffer")
	watchMatrix := flag.Bool("matrix", false, "monitor switch matrix events")
	watchLayers := flag.Bool("monitor-layers", false, "monitor active layer changes")

	brightness := flag.Int("brightness", -1, "set RGB brightness (0-255)")
	color := flag.String("color", "", "set RGB color as hue,saturation (0-255 each)")
	effect := flag.Int("effect", -1, "set RGB effect index")
	effectSpeed := flag.Int("effect-speed", -1, "set RGB effect speed (0-255)")
	save := flag.Bool("save", false, "persist lighting changes to EEPROM")
	blink := flag.Int("blink", 0, "blink the device indication LEDs n times")

	configPath := flag.String("config", "", "config file path (default: XDG config dir)")
	notify := flag.Bool("notify", false, "send systemd readiness and watchdog notifications")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	mgr, raw, err := newManager(*backend)
	if err != nil {
		return fmt.Errorf("init hid: %w", err)
	}

	// The report-based backend cannot see usage pages, so its listing is
	// the whole enumeration rather than just VIA raw interfaces.
	keyboards, err := mgr.List()
	if err != nil {
		return fmt.Errorf("enumerate: %w", err)
	}
	if raw {
		keyboards = viaKeyboards(keyboards)
	}

	if *list {
		if len(keyboards) == 0 {
			fmt.Println("no VIA keyboards found")
			return nil
		}
		for i, info := range keyboards {
			fmt.Printf("%d: %04x:%04x %s %s\n",
				i, info.VendorID, info.ProductID, info.Manufacturer, info.Product)
		}
		return nil
	}

	dev, err := openKeyboard(mgr, keyboards, *keyboard, raw)
	if err != nil {
		return err
	}

	client := via.NewClient(ctx, dev)
	defer client.Close()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath, err = layoutcfg.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := layoutcfg.Load(cfgPath)
	if err != nil {
		return err
	}

	if *notify {
		go func() {
			if err := systemdNotifyLoop(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("systemd notify", slog.Any("error", err))
			}
		}()
	}

	session, err := client.Probe(ctx)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	printSession(session)

	if *brightness >= 0 {
		if err := client.SetRGBBrightness(ctx, byte(*brightness), *save); err != nil {
			return fmt.Errorf("set brightness: %w", err)
		}
	}
	if *color != "" {
		hue, sat, err := parseColor(*color)
		if err != nil {
			return err
		}
		if err := client.SetRGBColor(ctx, hue, sat, *save); err != nil {
			return fmt.Errorf("set color: %w", err)
		}
	}
	if *effect >= 0 {
		if err := client.SetRGBEffect(ctx, byte(*effect), *save); err != nil {
			return fmt.Errorf("set effect: %w", err)
		}
	}
	if *effectSpeed >= 0 {
		if err := client.SetRGBEffectSpeed(ctx, byte(*effectSpeed), *save); err != nil {
			return fmt.Errorf("set effect speed: %w", err)
		}
	}
	if *blink > 0 {
		if err := client.Blink(ctx, *blink); err != nil {
			return fmt.Errorf("blink: %w", err)
		}
	}

	if *macros {
		if err := dumpMacros(ctx, client, session, cfg.MacroLayout); err != nil {
			return err
		}
	}

	needsMatrix := *dump || *dumpSlow || *dumpCompare || *watchMatrix || *watchLayers
	if !needsMatrix {
		return nil
	}
	if *rows <= 0 || *cols <= 0 {
		return fmt.Errorf("matrix dimensions required: pass -rows and -cols")
	}

	switch {
	case *dumpCompare:
		return dumpKeymapCompare(ctx, client, session, *rows, *cols)
	case *dump || *dumpSlow:
		table, err := loadKeymap(ctx, client, session, *rows, *cols, *dumpSlow)
		if err != nil {
			return err
		}
		printKeymap(table, cfg)
		return nil
	case *watchMatrix:
		return monitorMatrix(ctx, client, *rows, *cols)
	case *watchLayers:
		return monitorLayers(ctx, client, session, cfg, *rows, *cols)
	}
	return nil
}

// newManager picks the HID backend. The raw one can filter on the VIA usage
// page; auto falls back to the report-based backend on platforms where raw
// usb access is unsupported.
func newManager(backend string) (hid.Manager, bool, error) {
	switch backend {
	case "rawusb":
		mgr, err := hid.NewRawManager()
		return mgr, true, err
	case "usbhid":
		mgr, err := hid.NewManager()
		return mgr, false, err
	case "auto":
		if mgr, err := hid.NewRawManager(); err == nil {
			return mgr, true, nil
		}
		slog.Debug("raw usb unsupported, using report-based backend")
		mgr, err := hid.NewManager()
		return mgr, false, err
	}
	return nil, false, fmt.Errorf("unknown backend %q (want auto, rawusb or usbhid)", backend)
}

// viaKeyboards filters an enumeration down to raw VIA interfaces.
func viaKeyboards(infos []hid.Info) []hid.Info {
	var out []hid.Info
	for _, info := range infos {
		if info.UsagePage == via.UsagePage && info.Usage == via.Usage {
			out = append(out, info)
		}
	}
	return out
}

func openKeyboard(mgr hid.Manager, keyboards []hid.Info, sel string, raw bool) (hid.Device, error) {
	if strings.Contains(sel, ":") {
		vidStr, pidStr, _ := strings.Cut(sel, ":")
		vid, err := strconv.ParseUint(vidStr, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("bad vendor id %q: %w", vidStr, err)
		}
		pid, err := strconv.ParseUint(pidStr, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("bad product id %q: %w", pidStr, err)
		}
		if !raw {
			return mgr.OpenVIDPID(uint16(vid), uint16(pid))
		}
		for _, info := range keyboards {
			if info.VendorID == uint16(vid) && info.ProductID == uint16(pid) {
				return mgr.Open(info)
			}
		}
		return nil, fmt.Errorf("no VIA keyboard %04x:%04x", vid, pid)
	}

	if !raw {
		return nil, fmt.Errorf("the usbhid backend cannot identify VIA interfaces by index; pass -keyboard VID:PID")
	}
	idx, err := strconv.Atoi(sel)
	if err != nil {
		return nil, fmt.Errorf("bad keyboard selector %q: %w", sel, err)
	}
	if idx < 0 || idx >= len(keyboards) {
		return nil, fmt.Errorf("keyboard index %d out of range (%d found)", idx, len(keyboards))
	}
	return mgr.Open(keyboards[idx])
}

func parseColor(s string) (hue, saturation byte, err error) {
	hStr, sStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("color must be hue,saturation: %q", s)
	}
	h, err := strconv.ParseUint(strings.TrimSpace(hStr), 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("bad hue %q: %w", hStr, err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(sStr), 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("bad saturation %q: %w", sStr, err)
	}
	return byte(h), byte(v), nil
}

func printSession(s *via.Session) {
	fmt.Printf("protocol version:  %d\n", s.ProtocolVersion)
	fmt.Printf("firmware version:  0x%08x\n", s.FirmwareVersion)
	fmt.Printf("uptime:            %s\n", s.Uptime)
	fmt.Printf("layout options:    0x%08x\n", s.LayoutOptions)
	fmt.Printf("layers:            %d\n", s.LayerCount)
	fmt.Printf("macros:            %d (buffer %d bytes)\n", s.MacroCount, s.MacroBufferSize)
}

func loadKeymap(ctx context.Context, client *via.Client, s *via.Session, rows, cols int, slow bool) (*keymap.Table, error) {
	layerCount := int(s.LayerCount)
	if layerCount == 0 {
		return nil, fmt.Errorf("keyboard reports no layers")
	}
	if slow {
		return keymap.LoadSlow(ctx, client, layerCount, rows, cols)
	}
	return keymap.Load(ctx, client, layerCount, rows, cols)
}

func printKeymap(t *keymap.Table, cfg *layoutcfg.Config) {
	for layer := 0; layer < t.Layers; layer++ {
		fmt.Printf("\n[%d] %s\n", layer, cfg.LayerName(uint8(layer)))
		for _, row := range t.Describe(layer) {
			names := make([]string, len(row))
			for i, d := range row {
				names[i] = d.Name
			}
			fmt.Println("  " + strings.Join(names, " "))
		}
	}
}

func dumpKeymapCompare(ctx context.Context, client *via.Client, s *via.Session, rows, cols int) error {
	fast, err := loadKeymap(ctx, client, s, rows, cols, false)
	if err != nil {
		return fmt.Errorf("bulk read: %w", err)
	}
	slow, err := loadKeymap(ctx, client, s, rows, cols, true)
	if err != nil {
		return fmt.Errorf("per-key read: %w", err)
	}

	diffs := 0
	for layer := 0; layer < fast.Layers; layer++ {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				f, sl := fast.At(layer, row, col), slow.At(layer, row, col)
				if f == sl {
					continue
				}
				diffs++
				fmt.Printf("layer %d (%d,%d): buffer %s, keycode query %s\n",
					layer, row, col, keycode.Decode(f).Name, keycode.Decode(sl).Name)
			}
		}
	}
	if diffs == 0 {
		fmt.Println("keymap buffer and per-key queries agree")
	} else {
		fmt.Printf("%d mismatches\n", diffs)
	}
	return nil
}

func dumpMacros(ctx context.Context, client *via.Client, s *via.Session, layout macro.Layout) error {
	if s.MacroBufferSize == 0 {
		fmt.Println("no macro buffer")
		return nil
	}
	buf, err := client.ReadMacroBuffer(ctx, int(s.MacroBufferSize))
	if err != nil {
		return fmt.Errorf("read macro buffer: %w", err)
	}
	for _, m := range macro.SplitBuffer(buf, int(s.MacroCount), layout) {
		if len(m.Raw) == 0 {
			continue
		}
		suffix := ""
		if m.Incomplete {
			suffix = " (unterminated)"
		}
		fmt.Printf("M%d: %s%s\n", m.Index, macro.Render(m.Tokens), suffix)
	}
	return nil
}

func systemdNotifyLoop(ctx context.Context) error {
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	if interval == 0 {
		return nil
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog); err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}
