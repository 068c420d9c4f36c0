// Package game runs a sticker.Engine inside an ebiten window: it implements
// sticker.Surface on an offscreen image, feeds mouse, touch, and keyboard
// input to the engine, and writes queued snapshots to disk.
package game
