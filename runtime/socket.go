package runtime

import (
	"chat-sim/domain/event"
)

// Socket is the client side handle returned by Connect.
type Socket struct {
	sim *Simulator
	id  string
}

// On subscribes handler to the events called name.
func (c *Socket) On(name string, handler event.Handler) {
	c.sim.registry.On(name, handler)
}

// Off unsubscribes every handler of name, not a single one.
func (c *Socket) Off(name string) {
	c.sim.registry.Off(name)
}

// Emit hands an action to the simulated server. It does not check the
// connection state; unknown actions are ignored.
func (c *Socket) Emit(action string, payload any) {
	c.sim.log.Debug("Socket emit", "action", action, "payload", payload)
	c.sim.dispatch(action, payload)
}

// Disconnect removes every roster entry of the socket's participant and
// notifies the disconnect subscribers synchronously. Calling it twice only
// repeats the notification. Must not be called from inside an event handler.
func (c *Socket) Disconnect() {
	c.sim.disconnect(c.id)
}

func (c *Socket) Connected() bool {
	return c.sim.Connected()
}

func (c *Socket) ID() string { return c.id }
