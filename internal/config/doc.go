// Package config manages the zonectl user configuration file.
//
// The configuration lives in an OS-appropriate directory
// (e.g., ~/.config/zonectl/config.yaml on Linux) and stores two things:
// discovery preferences (multicast group, interface, proxy URL, timeout) and
// user metadata for known players keyed by their RINCON identifier
// (nicknames, last seen address). Discovery results themselves are never
// persisted; every run rediscovers the network.
//
// Loading is lazy and cached; Save performs an atomic write so a crash
// cannot leave a half-written file behind.
package config
