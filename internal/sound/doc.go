// Package sound detects a cast member's sound encoding by magic bytes and
// transcodes the legacy Mac SND format to a playable WAV container.
package sound
