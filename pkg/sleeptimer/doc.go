// Package sleeptimer implements the countdown service behind the sleep
// timer plugin: a single background worker that waits out a deadline
// expressed in whole minutes and invokes an exit callback when the
// deadline elapses without being superseded.
//
// The timer operates independent of the media state. A timer can be armed
// while nothing is playing, keeps running when playback ends, and is never
// restarted or cancelled by playback changes. Only one timer runs at a
// time; arming while a timer is running replaces it.
package sleeptimer
