// Package shell implements the page chrome behaviour: the mobile menu state
// machine, smooth-scroll target resolution for same-page links, one-shot
// reveal-on-scroll and the floating "back to top" control.
//
// Every type here tolerates a missing element: a nil *Menu, *Reveal or
// *ToTop is a valid value whose methods do nothing.
package shell
