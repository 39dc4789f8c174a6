// Package wizard implements the three-stage role authoring workflow:
// Details -> Permissions -> Review. Transitions are strictly adjacent, the
// Details guard is re-checked on every forward transition, and nothing is
// persisted until Save is called from the Review stage.
package wizard
