// Package connectivity tracks whether the portal is online, turns environment
// signals into typed events, and gates lesson playback on the pair
// (downloaded, online). The state is an owned object created at process start;
// only the Gate mutates it, and only in response to dispatched events.
package connectivity
