package authstate

// Navigator moves the host surface to another route. Navigation is an
// external collaborator: the controller requests it and never observes
// whether it happened.
type Navigator interface {
	NavigateTo(path string)
}
