// Package game implements the sound concentration rules: a grid of cards,
// each bound to one of a set of sounds used exactly twice, a player revealing
// two cards at a time, and a timer-gated lock while a revealed pair plays.
//
// All mutation happens on one logical thread. Delayed work is handed to a
// Scheduler which must invoke callbacks on that same thread; the Bubble Tea
// adapter in internal/app does this by routing timer ticks through Update.
//
// A round is the period between two calls to Board.Reset. Callbacks
// scheduled in one round are ignored if they fire in a later one.
package game
