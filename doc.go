// Package ansiconsole makes ANSI escape sequences behave sensibly on any
// console a program writes to.
//
// Programs emit colored and positioned text with ANSI sequences. Modern
// terminals understand them natively; legacy consoles print them as garbage;
// redirected output should usually not carry them at all. This package sits
// between the program and its standard streams and picks one of four modes
// per stream:
//
//   - [NativeANSI]: bytes are forwarded unchanged
//   - [LegacyTranslated]: sequences are executed through a native [Console] API
//   - [PassThroughDisabled]: not a terminal, bytes are forwarded unchanged
//   - [StripOnly]: sequences are removed, text is kept
//
// # Quick Start
//
// Install the adapter around os.Stdout and os.Stderr for the life of main:
//
//	if err := ansiconsole.Install(); err != nil {
//	    log.Fatal(err)
//	}
//	defer ansiconsole.Uninstall()
//
//	fmt.Fprint(os.Stdout, "\x1b[31mHello\x1b[0m World\n")
//
// Install and Uninstall are reference counted: only the first Install wraps
// the streams and only the matching last Uninstall restores them.
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Scanner]: an incremental state machine splitting bytes into text and [ControlSequence]
//   - [Writer]: an io.Writer that scans and renders according to a [TerminalMode]
//   - [Installer]: the ref-counted wrapper around the standard streams
//   - [Console]: the native control API used in legacy mode
//   - [ScreenConsole]: an in-memory Console for tests and emulation
//
// # Detection
//
// [Detect] is a pure function of [Config] and [Capabilities]:
//
//	cfg := ansiconsole.LoadConfig()
//	mode := ansiconsole.Detect(cfg, ansiconsole.ProbeCapabilities(os.Stdout, cfg))
//
// [LoadConfig] reads ANSICONSOLE_FORCE, ANSICONSOLE_STRIP,
// ANSICONSOLE_PASSTHROUGH, ANSICONSOLE_OS and NO_COLOR.
//
// # Writer
//
// A Writer can be used without installing anything:
//
//	w, err := ansiconsole.NewWriter(os.Stdout, ansiconsole.StripOnly)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	fmt.Fprint(w, "\x1b[1mbold\x1b[0m") // writes "bold"
//
// Sequences may be split across writes; incomplete sequences are emitted as
// text by [Writer.Flush] and [Writer.Close].
//
// # Emulation
//
// [ScreenConsole] renders LegacyTranslated output in memory. It can be
// inspected cell by cell, captured with [ScreenConsole.Snapshot] or rendered
// with [ScreenConsole.Screenshot]:
//
//	screen := ansiconsole.NewScreenConsole(ansiconsole.WithScreenSize(10, 40))
//	w, _ := ansiconsole.NewWriter(io.Discard, ansiconsole.LegacyTranslated,
//	    ansiconsole.WithConsole(screen))
//	w.Write([]byte("\x1b[2J\x1b[3;5H\x1b[32mok"))
//	fmt.Println(screen.LineContent(2)) // "    ok"
//
// # Thread Safety
//
// Writer, Installer and ScreenConsole are safe for concurrent use.
// A Scanner is not.
package ansiconsole
