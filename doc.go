// Package quotecard exports styled quote cards as images and as
// self-contained HTML bundles.
//
// # Quick Start
//
// Create a session holding the card, a controller bound to it, and
// trigger exports:
//
//	session := quotecard.NewDefaultSession()
//	session.SetBody("愿意放弃自由来换取保障的人，\n他最终既得不到自由，也得不到保障。")
//	if err := session.SetTheme(quotecard.ThemeGreen); err != nil {
//	    log.Fatal(err)
//	}
//
//	fonts, err := quotecard.NewDirFontSource("./font")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctrl, err := quotecard.NewController(session,
//	    quotecard.WithFontSource(fonts),
//	    quotecard.WithDownloader(quotecard.DirDownloader{Dir: "out"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctrl.Close()
//
//	outcome, _ := ctrl.Export(ctx, quotecard.ChannelBundle) // out/quote-card.zip
//
// # Channels
//
// The image channel renders the card in headless Chrome (go-rod) and
// captures the card element as PNG (or JPEG/WebP). The bundle channel
// writes a zip holding index.html and the three font files, so the card
// opens in any browser without network access. Each channel runs at
// most one export at a time; triggering a busy channel does nothing.
//
// Exports read a snapshot of the card taken when they are triggered.
// Edits made while an export runs apply to the next one.
//
// # Themes
//
// Four themes form a closed catalog (blue, green, purple, orange). The
// live view and the bundle render from the same catalog entry, so both
// artifacts show identical colors.
//
// # Browser Requirements
//
// Image export requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package quotecard
