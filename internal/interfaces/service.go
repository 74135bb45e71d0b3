package interfaces

// Service is the lifecycle of the interfaces exposed by the daemon. Start
// must not block.
type Service interface {
	Start() error
	Stop()
}
