// Package sticker is the transform and gesture engine behind a watermark
// editor: one positionable image (the sticker) over a background canvas.
//
// The engine keeps the sticker's geometry, an undo/redo history per canvas
// orientation (portrait, landscape, square), and a gesture state machine that
// turns pointer and touch input into drag, resize, rotate, and pinch edits.
// Rendering is delegated to a [Surface]; the ebiten implementation lives in
// the game subpackage.
//
// # Quick start
//
//	eng, err := sticker.NewEngine(surface, sticker.DefaultSettings())
//	if err != nil {
//		log.Fatal(err)
//	}
//	eng.SetCanvasSize(300, 450)
//	eng.SetScale(sticker.ScaleFit)
//	eng.SetPosition(sticker.MiddleCenter)
//	eng.AttachSticker(sticker.Content{Key: "logo", Width: 512, Height: 512})
//
// Feed input from the event loop with [Engine.PointerDown],
// [Engine.PointerMove], [Engine.PointerUp] and the Touch* methods, and call
// [Engine.Update] once per frame.
//
// # Scale modes and anchors
//
// In [ScaleCustom] the user drags, resizes, and rotates the sticker directly.
// [ScaleFit] and [ScaleFill] derive the size from the canvas and place the
// sticker at one of nine [AnchorPosition] values ([ScaleFill] always
// centers). The geometry is available as pure functions: [PositionFor],
// [ScaleFor], and [Layout].
//
// # History
//
// Each orientation has its own [HistoryTrack]. Gestures commit once, on
// release; committing after an undo discards the redo branch.
//
// # Events
//
// Register callbacks with [Engine.OnEvent], or bridge events into an ECS
// world with [Engine.SetEventStore] (see the ecs module).
package sticker
