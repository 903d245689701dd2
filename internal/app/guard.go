package app

// routeFor is the navigation guard: any target other than Login requires an
// identity, otherwise the transition is forced to Login. Pure function of
// (target, identity), evaluated on every transition.
func routeFor(target Screen, identity string) Screen {
	if target == ScreenLogin {
		return ScreenLogin
	}
	if identity == "" {
		return ScreenLogin
	}
	return target
}
