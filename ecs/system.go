package ecs

// System is a unit of per-frame behavior. Systems are plain structs: any
// Query or Singleton field is bound to the scheduler's storage when the
// system is registered, and other fields keep their values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
