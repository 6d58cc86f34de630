// Package fbhost plays the monkey garden on a Linux framebuffer console.
//
// The scene is painted at the capture cadence, composed above a status
// strip and scaled onto the framebuffer with nearest-neighbour sampling.
// There is no pointer: sending SIGUSR1 to the process toggles recording,
// and a session script can drive it unattended.
package fbhost
