package app

import "galaxyview/hal"

// Session builds an App when a host starts it and releases the App when the
// host returns, however the run ended.
//
//	s := &app.Session{Config: cfg}
//	defer s.Close()
//	err := hal.RunHeadless(ctx, s.Start, hcfg)
type Session struct {
	Config Config

	app *App
}

// Start matches the host runners' newApp hook.
func (s *Session) Start(h hal.HAL) func() error {
	a, err := Build(h, s.Config)
	if err != nil {
		return func() error { return err }
	}
	s.app = a
	return a.Step
}

// App returns the running App, or nil before Start or after a failed build.
func (s *Session) App() *App { return s.app }

// Close releases the App. It is safe to call when Start never ran.
func (s *Session) Close() error {
	if s.app == nil {
		return nil
	}
	return s.app.Close()
}
